// Package service holds the application core: authentication with lockout,
// token lifecycle, the menu catalog with its tree invariants, the
// group-to-menu authorization projection, and the audit sink.
package service

import (
	"github.com/avolkov/core-admin/internal/config"
	"github.com/avolkov/core-admin/internal/crypto"
	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/store"
)

// Services bundles every application service behind its interface.
type Services struct {
	Token  TokenService
	Auth   AuthService
	Menu   MenuService
	Access AccessService
	Audit  AuditSink
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, log *logger.Logger) *Services {
	audit := NewAuditSink(storages.AuditRepository, log)
	tokens := NewTokenService(cfg.Auth, log)
	hasher := crypto.NewPasswordHasher()

	return &Services{
		Token:  tokens,
		Auth:   NewAuthService(storages.UserRepository, hasher, tokens, audit, cfg.Auth, log),
		Menu:   NewMenuService(storages.MenuRepository, audit, cfg.Menu, log),
		Access: NewAccessService(storages.MenuRepository, storages.GrantRepository, audit, cfg.Auth, log),
		Audit:  audit,
	}
}
