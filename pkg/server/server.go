// Package server exposes a parsed catalogue over a read-only HTTP API.
//
// Routes:
//
//	GET /healthz                     liveness
//	GET /concepts                    every concept (id, label), sorted
//	GET /concepts/{id}               one concept with parents and children
//	GET /concepts/{id}/descendants   descendant ids and count
//	GET /hierarchy                   nested-list HTML page
//	GET /network                     interactive network HTML page
//	GET /render/{id}.{format}        node-link diagram of the subgraph at id
//
// The HTML pages and renders go through the [pipeline.Runner], so they
// share its cache with the CLI. Errors are JSON objects {code, message}
// with the status taken from [demerr.HTTPStatus].
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/pipeline"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

// Options configures the server.
type Options struct {
	Runner *pipeline.Runner // nil: an uncached runner
	Logger *log.Logger      // nil: log.Default()

	// Render holds the defaults for /render requests; the format always
	// comes from the URL.
	Render pipeline.RenderOptions

	// RootID is the well-known root of the /hierarchy page.
	RootID string
}

// Server serves one catalogue.
type Server struct {
	src    *pipeline.Source
	runner *pipeline.Runner
	logger *log.Logger
	render pipeline.RenderOptions
	rootID string

	children map[string][]string
	router   chi.Router
}

// New builds the HTTP handler for src.
func New(src *pipeline.Source, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	s := &Server{
		src:      src,
		runner:   opts.Runner,
		logger:   opts.Logger,
		render:   opts.Render,
		rootID:   opts.RootID,
		children: taxonomy.ChildrenMap(src.Concepts()),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/concepts", func(r chi.Router) {
		r.Get("/", s.handleConcepts)
		r.Get("/{id}", s.handleConcept)
		r.Get("/{id}/descendants", s.handleDescendants)
	})
	r.Get("/hierarchy", s.handlePage(pipeline.PageHierarchy))
	r.Get("/network", s.handlePage(pipeline.PageNetwork))
	r.Get("/render/{file}", s.handleRender)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, apiError{Code: "NOT_FOUND", Message: "no route for " + r.URL.Path})
	})
	return r
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "concepts", len(s.src.Concepts()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
