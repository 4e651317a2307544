// Package webserver provides the HTTP server that exposes the analysis
// REST API.
package webserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/consilium-ai/consilium/internal/orchestration"
	"github.com/consilium-ai/consilium/internal/webapi"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port    int
	RunsDir string
	// AllowedOrigins enables CORS for the listed origins; empty means
	// same-origin only.
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg    Config
	srv    *http.Server
	store  *webapi.FileStore
	logger *slog.Logger
}

// New creates a new HTTP server over the given orchestrator.
func New(orch *orchestration.Orchestrator, cfg Config) (*Server, error) {
	if orch == nil {
		return nil, fmt.Errorf("webserver needs an orchestrator")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	store := webapi.NewFileStore(cfg.RunsDir)

	mux := http.NewServeMux()
	webapi.RegisterRoutes(mux, orch, store)

	var handler http.Handler = mux
	if len(cfg.AllowedOrigins) > 0 {
		handler = webapi.CORSMiddleware(mux, cfg.AllowedOrigins...)
	}

	return &Server{
		cfg:    cfg,
		store:  store,
		logger: cfg.Logger,
		srv: &http.Server{
			Addr:              fmt.Sprintf("127.0.0.1:%d", cfg.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// ListenAndServe starts the HTTP server and blocks until ctx is canceled
// or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("HTTP server starting", "address", s.srv.Addr, "runs_dir", s.cfg.RunsDir)

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "error", err)
		}
	}()

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Handler returns the underlying http.Handler (useful for testing).
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Store returns the server's run store.
func (s *Server) Store() *webapi.FileStore {
	return s.store
}
