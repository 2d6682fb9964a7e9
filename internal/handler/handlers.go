// Package handler gathers the transport handlers of the application.
// The admin API is served over HTTP only.
package handler

import (
	"github.com/avolkov/core-admin/internal/config"
	"github.com/avolkov/core-admin/internal/handler/http"
	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
