// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package server exposes the simulator over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// DefaultMaxBodyBytes bounds the size of a simulation request body.
const DefaultMaxBodyBytes = 1 << 20

// DefaultMaxJobs bounds the number of jobs in one simulation request.
const DefaultMaxJobs = 10000

// DefaultMaxChunks bounds the total number of chunks, summed over all jobs,
// in one simulation request.
const DefaultMaxChunks = 1 << 22

// Server is the simulator's HTTP API.
type Server struct {
	router       chi.Router
	logger       *zap.Logger
	startTime    time.Time
	maxBodyBytes int64
	maxJobs      int
	maxChunks    int
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	if n <= 0 {
		panic("max body bytes must be positive")
	}
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// WithMaxJobs overrides DefaultMaxJobs.
func WithMaxJobs(n int) Option {
	if n <= 0 {
		panic("max jobs must be positive")
	}
	return func(s *Server) {
		s.maxJobs = n
	}
}

// WithMaxChunks overrides DefaultMaxChunks.
func WithMaxChunks(n int) Option {
	if n <= 0 {
		panic("max chunks must be positive")
	}
	return func(s *Server) {
		s.maxChunks = n
	}
}

// New creates a Server with all routes registered. A nil logger is replaced
// with zap.NewNop().
func New(logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		router:       chi.NewRouter(),
		logger:       logger.With(zap.String("component", "server")),
		startTime:    time.Now(),
		maxBodyBytes: DefaultMaxBodyBytes,
		maxJobs:      DefaultMaxJobs,
		maxChunks:    DefaultMaxChunks,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Post("/simulate", s.handleSimulate)
	r.Get("/workloads/random", s.handleRandomWorkload)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully, waiting up to shutdownTimeout for in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.logger.Error("Server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}
