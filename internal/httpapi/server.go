/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package httpapi exposes the implication checker over HTTP.
//
// Routes:
//
//	GET  /healthz     liveness probe
//	POST /v1/implies  {"premise": "...", "conclusion": "..."}
//	POST /v1/fits     {"premise": "...", "conclusion": "..."}
//	POST /v1/domain   {"predicate": "...", "argument": "x"}
//	POST /v1/batch    a check suite, as JSON or YAML
//
// Every response body is JSON. Failures use {"error": "..."} and, for
// predicate syntax errors, the byte offset of the offending token.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"dirpx.dev/dxpred/dxcore/check"
	"dirpx.dev/dxpred/dxcore/model/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultMaxBodyBytes bounds request bodies.
	DefaultMaxBodyBytes = 1 << 20

	// DefaultMaxBatches bounds the number of suites evaluated at once.
	DefaultMaxBatches = 4

	shutdownTimeout = 10 * time.Second
)

// Option configures a Server.
type Option func(*settings)

type settings struct {
	maxBodyBytes int64
	maxBatches   int64
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithMaxBatches overrides DefaultMaxBatches. Batch requests arriving while
// the limit is reached are answered with 429 Too Many Requests.
func WithMaxBatches(n int64) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxBatches = n
		}
	}
}

// Server serves the implication checker for predicates over T.
type Server[T domain.Scalar] struct {
	router       *chi.Mux
	runner       *check.Runner[T]
	logger       *slog.Logger
	batches      *semaphore.Weighted
	maxBodyBytes int64
}

// New builds a Server around runner. The runner's depth limit and worker
// count apply to every request.
func New[T domain.Scalar](runner *check.Runner[T], logger *slog.Logger, opts ...Option) *Server[T] {
	cfg := settings{
		maxBodyBytes: DefaultMaxBodyBytes,
		maxBatches:   DefaultMaxBatches,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server[T]{
		router:       chi.NewRouter(),
		runner:       runner,
		logger:       logger,
		batches:      semaphore.NewWeighted(cfg.maxBatches),
		maxBodyBytes: cfg.maxBodyBytes,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server[T]) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server[T]) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/implies", s.handleImplies)
		r.Post("/fits", s.handleFits)
		r.Post("/domain", s.handleDomain)
		r.Post("/batch", s.handleBatch)
	})
}

// Handler returns the routed handler, for tests and for embedding.
func (s *Server[T]) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server[T]) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server[T]) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
