package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sample1/member-api/internal/config"
)

// Server represents the HTTP server (lifecycle management only)
type Server struct {
	cfg    *config.Config
	server *http.Server
}

// New creates a new server instance with the provided handler
func New(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		cfg: cfg,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.App.Port),
			Handler:           handler,
			ReadTimeout:       cfg.Server.ReadTimeout,
			ReadHeaderTimeout: cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			IdleTimeout:       cfg.Server.IdleTimeout,
			MaxHeaderBytes:    1 << 20, // 1 MB
		},
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start serves until Shutdown is called; a clean shutdown returns nil
func (s *Server) Start() error {
	slog.Info("서버 시작 중",
		"addr", s.server.Addr,
		"env", s.cfg.App.Env,
		"db_driver", s.cfg.Database.Driver,
		"metrics", s.cfg.Metrics.Enabled,
		"request_timeout", s.cfg.Server.RequestTimeout,
		"write_timeout", s.cfg.Server.WriteTimeout,
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	slog.Info("서버 종료 중...", "addr", s.server.Addr)
	return s.server.Shutdown(ctx)
}
