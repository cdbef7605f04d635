// Package server exposes the pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz    build information
//	POST /v1/sort    sort a scene, answer with the draw order and graph
//	POST /v1/graph   sort a scene, answer with the rendered dependency graph
//
// Both POST routes take the same body:
//
//	{
//	  "scene":   {"name": "demo", "objects": [...]},
//	  "options": {"frames": 60, "step": 0.016, "format": "svg"}
//	}
//
// Instead of "scene", a client may send "source" with the scene file text
// and "source_format" (toml, json, yaml or hcl).
//
// Errors are answered as {"error": {"code": ..., "message": ...}} with the
// status from [errors.HTTPStatus].
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/isosort/pkg/buildinfo"
	"github.com/matzehuels/isosort/pkg/pipeline"
)

const (
	// MaxBodyBytes bounds a request body.
	MaxBodyBytes = 4 << 20

	// RequestTimeout bounds the work done for one request.
	RequestTimeout = 30 * time.Second

	shutdownTimeout = 5 * time.Second
)

// Server answers sort and graph requests with a shared pipeline Runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil logger uses log.Default().
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.Timeout(RequestTimeout))
	r.Use(serverHeader)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/sort", s.handleSort)
		r.Post("/graph", s.handleGraph)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

func serverHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", buildinfo.UserAgent())
		next.ServeHTTP(w, r)
	})
}
