// Package server exposes the analyses over HTTP.
//
// Every /api endpoint reads the cached master table from the dataset
// service, so repeated requests within the cache TTL never refetch. The
// /metrics endpoint exports the logger's metrics tracker to Prometheus.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pfrederiksen/xoso-stats/internal/analysis"
	"github.com/pfrederiksen/xoso-stats/internal/draw"
	"github.com/pfrederiksen/xoso-stats/internal/logger"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 60 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

// Defaults used when Options leaves a field unset.
const (
	DefaultAddr     = ":8080"
	DefaultDays     = 60
	DefaultShowDays = 20
)

// Service provides master tables.
type Service interface {
	Table(ctx context.Context, days int) (*draw.Table, error)
	Refresh(ctx context.Context, days int) (*draw.Table, error)
}

// Options configures a Server.
type Options struct {
	Addr string
	// Days is the fetch depth used when a request does not set one.
	Days     int
	ShowDays int
	// Tracking holds the default selectors of /api/track.
	Tracking analysis.TrackOptions
	// Metrics defaults to logger.DefaultMetrics().
	Metrics *logger.Metrics
}

// Server serves the HTTP API.
type Server struct {
	svc     Service
	opts    Options
	metrics *logger.Metrics
	http    *http.Server
}

// New creates a Server.
func New(svc Service, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Days <= 0 {
		opts.Days = DefaultDays
	}
	if opts.ShowDays <= 0 {
		opts.ShowDays = DefaultShowDays
	}
	if opts.Metrics == nil {
		opts.Metrics = logger.DefaultMetrics()
	}

	s := &Server{
		svc:     svc,
		opts:    opts,
		metrics: opts.Metrics,
	}
	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.opts.Addr
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return loggingMiddleware(s.metrics, s.routes())
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", logger.Fields{"addr": s.opts.Addr})
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http: %w", err)
	}
	logger.Info("shutdown complete", nil)
	return nil
}
