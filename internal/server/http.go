package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cpwcao/recipe-app-api/internal/config"
	"github.com/cpwcao/recipe-app-api/internal/logger"
)

type httpServer struct {
	server *http.Server
}

func newHTTPServer(router http.Handler, cfg config.Server, log *logger.Logger) *httpServer {
	log.Info().Str("address", cfg.HTTPAddress).Msg("creating HTTP server")

	if cfg.RequestTimeout > 0 {
		router = http.TimeoutHandler(router, cfg.RequestTimeout, "request timed out")
	}

	return &httpServer{
		server: &http.Server{
			Addr:    cfg.HTTPAddress,
			Handler: router,
		},
	}
}

func (h *httpServer) RunServer() {
	if err := h.server.ListenAndServe(); err != nil {
		fmt.Printf("HTTP server ListenAndServe: %v\n", err)
	}
}

func (h *httpServer) Shutdown() {
	if err := h.server.Shutdown(context.Background()); h.server != nil && err != nil {
		fmt.Printf("HTTP server Shutdown: %v\n", err)
	}
}
