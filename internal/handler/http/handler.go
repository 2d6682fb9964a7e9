package http

import (
	"time"

	"github.com/avolkov/core-admin/internal/config"
	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/service"
)

type Handler struct {
	services *service.Services

	adminGroupID   string
	requestTimeout time.Duration
	logger         *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		adminGroupID:   cfg.Auth.AdminGroupID,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
