// Package api exposes the analysis pipeline over HTTP. Every route
// except health and metrics operates on a session created through
// POST /api/sessions.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Rigvedsarougi/Project-A/internal/app"
	"github.com/Rigvedsarougi/Project-A/internal/config"
	"github.com/Rigvedsarougi/Project-A/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server hosts the session API.
type Server struct {
	httpServer *http.Server
	app        *app.App
	cfg        *config.Config
	metrics    *metrics.Registry
	logger     *zap.Logger
}

// NewServer wires the routes and returns a server ready to start.
func NewServer(cfg *config.Config, application *app.App, reg *metrics.Registry, logger *zap.Logger) *Server {
	s := &Server{
		app:     application,
		cfg:     cfg,
		metrics: reg,
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /api/sessions/{id}/fetch", s.handleFetch)
	mux.HandleFunc("POST /api/sessions/{id}/indicators", s.handleIndicators)
	mux.HandleFunc("POST /api/sessions/{id}/backtest", s.handleBacktest)
	mux.HandleFunc("POST /api/sessions/{id}/simulate", s.handleSimulate)
	mux.HandleFunc("GET /api/sessions/{id}/data", s.handleGetData)
	mux.HandleFunc("GET /api/sessions/{id}/describe", s.handleDescribe)
	mux.HandleFunc("GET /api/sessions/{id}/backtest", s.handleGetBacktest)
	mux.HandleFunc("GET /api/sessions/{id}/account", s.handleGetAccount)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	var handler http.Handler = mux
	if reg != nil && cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path,
			promhttp.HandlerFor(reg.Registry, promhttp.HandlerOpts{}))
		handler = metrics.HTTPMiddleware(reg)(mux)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving and blocks until shutdown or failure.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
