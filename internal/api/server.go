// Package api exposes the ingestion and query pipeline over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"simplegpt/internal/ingest"
	"simplegpt/internal/prompt"
	"simplegpt/internal/rag"
)

// CollectionStore is the collection management slice of the vector store.
type CollectionStore interface {
	ListCollections() []string
	DeleteCollection(name string) error
	Count(collection string) int
}

// Server wires the HTTP routes to the pipeline, the query service and the
// collection store.
type Server struct {
	addr     string
	pipeline *ingest.Pipeline
	service  *rag.Service
	store    CollectionStore
	prompts  *prompt.Registry
	log      zerolog.Logger
}

func NewServer(addr string, pipeline *ingest.Pipeline, service *rag.Service, store CollectionStore, prompts *prompt.Registry, log zerolog.Logger) *Server {
	return &Server{
		addr:     addr,
		pipeline: pipeline,
		service:  service,
		store:    store,
		prompts:  prompts,
		log:      log,
	}
}

// Router builds the route tree. Exposed separately so tests can drive the
// handlers without a listener.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/collections", s.handleListCollections)
		r.Delete("/collections/{name}", s.handleDeleteCollection)
		r.Post("/collections/{name}/documents", s.handleUpload)
		r.Get("/prompts", s.handleListPrompts)
		r.Post("/query", s.handleQuery)
	})
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
