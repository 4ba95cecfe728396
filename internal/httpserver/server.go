// Package httpserver exposes the operator-facing metrics, health, and drain
// endpoints.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/caesar-terminal/arbiter/internal/healthprobe"
)

// Server wraps the operator HTTP surface: /metrics, /health, /ready, /drain.
type Server struct {
	server *http.Server
	logger *zap.Logger
}

// Config holds server construction parameters.
type Config struct {
	Port    string
	Logger  *zap.Logger
	Checker *healthprobe.HealthChecker
}

// New builds a Server. It does not start listening until Start is called.
func New(cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/health", cfg.Checker.Health())
	r.Get("/ready", cfg.Checker.Ready())
	r.Post("/drain", cfg.Checker.Drain())

	return &Server{
		logger: cfg.Logger,
		server: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start blocks serving HTTP until Shutdown is called or the listener errors.
func (s *Server) Start() error {
	if s.logger != nil {
		s.logger.Info("httpserver: starting", zap.String("addr", s.server.Addr))
	}
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("httpserver: listen and serve: %w", err)
	}
	return nil
}

// Shutdown gracefully drains in-flight requests, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("httpserver: shutting down")
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("httpserver: shutdown: %w", err)
	}
	return nil
}
