// Package server exposes the export pipeline as an HTTP service.
//
// Routes:
//
//	POST /v1/render   render request JSON -> image/png (complete or error)
//	GET  /v1/styles   registered style keys and labels
//	GET  /v1/formats  registered formats with dimensions
//	GET  /healthz     liveness probe
//
// A render either succeeds with a full graphic or fails with a JSON error;
// partial images are never written to the response.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/soundpress/gigcard/pkg/pipeline"
)

// Server serves graphic exports over HTTP.
type Server struct {
	Runner *pipeline.Runner
	Logger *log.Logger
	Listen string
}

// New creates a server around an export runner.
func New(runner *pipeline.Runner, logger *log.Logger, listen string) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if listen == "" {
		listen = ":8480"
	}
	return &Server{Runner: runner, Logger: logger, Listen: listen}
}

// Router assembles the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Get("/styles", s.handleStyles)
		r.Get("/formats", s.handleFormats)
	})
	return r
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Listen,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("export service listening", "addr", s.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
