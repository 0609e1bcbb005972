package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/belovedly/backend/internal/config"
	"github.com/gin-gonic/gin"
)

// Server wraps the HTTP server carrying the feed, match and comment APIs.
type Server struct {
	httpServer *http.Server
}

func NewServer(cfg *config.ServerConfig, router *gin.Engine) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:        router,
			ReadTimeout:    cfg.ReadTimeout,
			WriteTimeout:   cfg.WriteTimeout,
			MaxHeaderBytes: 1 << 20,
		},
	}
}

// Start blocks serving requests until the listener closes.
func (s *Server) Start() error {
	fmt.Printf("Listening on %s\n", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown drains in-flight requests; the caller bounds the wait through ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	fmt.Println("Shutting down server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
