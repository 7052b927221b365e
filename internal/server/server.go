// Package server provides the HTTP surface of the coaching backend: the
// completion proxy that keeps the provider API key server-side, plus the job
// listing lookup and a health check.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/brillia/career-coach/internal/jobs"
	"github.com/brillia/career-coach/internal/llm"
	"github.com/brillia/career-coach/internal/server/ratelimit"
)

// Server is the HTTP server.
type Server struct {
	httpServer *http.Server
	client     llm.Client
	jobs       *jobs.Client
	apiKey     string
	limiter    *ratelimit.Limiter
	log        zerolog.Logger
}

// Config holds server configuration.
type Config struct {
	Port       int
	APIKey     string
	Model      string
	JobsAPIURL string
	Logger     zerolog.Logger
}

// New creates a server. A missing API key is not fatal here; the server still
// starts so the diagnostic ping can report the misconfiguration, and generate
// requests fail with a configuration error.
func New(cfg Config) (*Server, error) {
	s := &Server{
		apiKey:  cfg.APIKey,
		jobs:    jobs.NewClient(cfg.JobsAPIURL),
		limiter: ratelimit.NewLimiter(nil),
		log:     cfg.Logger,
	}

	if cfg.APIKey != "" {
		client, err := llm.NewGeminiClient(context.Background(), cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create completion client: %w", err)
		}
		s.client = client
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// routes builds the handler chain.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/jobs", s.handleJobs)
	mux.HandleFunc("GET /health", s.handleHealth)
	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening and blocks until an interrupt, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.limiter.Stop()
	if s.client != nil {
		s.client.Close()
	}
	s.log.Info().Msg("server stopped")
	return nil
}

// extractClientID identifies a client by IP for rate limiting.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
