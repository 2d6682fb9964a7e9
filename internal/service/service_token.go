package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkov/core-admin/internal/config"
	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/utils"
	"github.com/avolkov/core-admin/models"
)

type tokenService struct {
	cfg config.Auth
	log *logger.Logger
}

func NewTokenService(cfg config.Auth, log *logger.Logger) TokenService {
	return &tokenService{cfg: cfg, log: log}
}

func (t *tokenService) MintPair(ctx context.Context, user models.User) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	access, err := utils.GenerateJWTToken(
		t.cfg.TokenIssuer, user, models.TokenTypeAccess, t.cfg.Algorithm, t.cfg.AccessTTL(), t.cfg.SecretKey,
	)
	if err != nil {
		log.Err(err).Str("user_id", user.UserID).Msg("error generating access token")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh, err := utils.GenerateJWTToken(
		t.cfg.TokenIssuer, user, models.TokenTypeRefresh, t.cfg.Algorithm, t.cfg.RefreshTTL(), t.cfg.SecretKey,
	)
	if err != nil {
		log.Err(err).Str("user_id", user.UserID).Msg("error generating refresh token")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(t.cfg.AccessTTL().Seconds()),
	}, nil
}

func (t *tokenService) Validate(ctx context.Context, tokenString, expectedType string) (*models.TokenClaims, error) {
	claims, err := utils.ValidateAndParseJWTToken(tokenString, t.cfg.SecretKey, t.cfg.TokenIssuer, expectedType)
	if err != nil {
		// all verification failures collapse to one error so callers cannot
		// distinguish a forged token from an expired one
		return nil, errors.Join(ErrTokenIsExpiredOrInvalid, err)
	}
	return claims, nil
}

func (t *tokenService) DecodeUnsafe(tokenString string) (*models.TokenClaims, error) {
	claims, err := utils.DecodeJWTTokenUnsafe(tokenString)
	if err != nil {
		return nil, errors.Join(ErrTokenIsExpiredOrInvalid, err)
	}
	return claims, nil
}
