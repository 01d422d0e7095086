package handler

import (
	"github.com/cpwcao/recipe-app-api/internal/config"
	"github.com/cpwcao/recipe-app-api/internal/handler/http"
	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/service"
)

// Handlers aggregates the transport-level handlers of the application.
// HTTP is the only transport; the struct keeps the wiring point explicit.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the transport handlers for the configured listeners.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
