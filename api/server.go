// Package api - Thin HTTP layer over the fee calculators.
// The API is ONLY responsible for: input decoding, calculator lookup, output
// serialization. It never computes a fee itself.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"cloud-fee/core/compare"
)

const maxRequestBodyBytes int64 = 1 << 20 // 1 MiB

// Options configure a Server
type Options struct {
	Version string

	// Logger defaults to a no-op logger
	Logger *zap.Logger

	// Metrics defaults to a fresh registry
	Metrics *Metrics

	// DefaultSample applies to compare requests without a sample
	DefaultSample compare.SampleFactor

	// MaxSamplePoints caps sample count; 0 disables the cap
	MaxSamplePoints int
}

// Server is the API server
type Server struct {
	r       chi.Router
	log     *zap.Logger
	metrics *Metrics
	opts    Options
}

// NewServer creates a new API server
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(nil)
	}

	s := &Server{
		r:       chi.NewRouter(),
		log:     opts.Logger,
		metrics: opts.Metrics,
		opts:    opts,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.r.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.r.Use(middleware.RequestID)
	s.r.Use(middleware.Recoverer)
	s.r.Use(s.observe)

	s.r.Get("/health", s.handleHealth)
	s.r.Get("/version", s.handleVersion)
	s.r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.r.Route("/v1", func(r chi.Router) {
		r.Get("/providers", s.handleListProviders)
		r.Post("/fees/{category}", s.handleFee)
		r.Post("/compare/{category}", s.handleCompare)
	})
}

// observe logs and counts every request by its route pattern
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		s.metrics.RecordRequest(r.Method, route, status, elapsed)
		s.log.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
		)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
