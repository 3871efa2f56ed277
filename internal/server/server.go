// Package server exposes the dashboard API over HTTP: dataset listings,
// choropleth style documents, and region view states.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/regionviz/regionviz/internal/boundary"
	"github.com/regionviz/regionviz/internal/dataset"
	"github.com/regionviz/regionviz/internal/format"
	"github.com/regionviz/regionviz/internal/store"
)

// Server wires the API handlers to their collaborators. Boundaries may be
// nil; view requests then fall back to the national default.
type Server struct {
	store      store.Store
	catalog    *dataset.Catalog
	formatter  *format.Formatter
	boundaries *boundary.Index
	log        *zap.Logger
}

// Options configures a Server.
type Options struct {
	Store          store.Store
	Catalog        *dataset.Catalog
	Formatter      *format.Formatter
	Boundaries     *boundary.Index
	AllowedOrigins []string
}

// New creates a Server and its router.
func New(opts Options) (*Server, http.Handler) {
	s := &Server{
		store:      opts.Store,
		catalog:    opts.Catalog,
		formatter:  opts.Formatter,
		boundaries: opts.Boundaries,
		log:        zap.L().With(zap.String("component", "server")),
	}
	if s.formatter == nil {
		s.formatter = format.New(format.Options{})
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/datasets", s.handleListDatasets)
		r.Get("/datasets/{id}/style", s.handleStyle)
		r.Get("/regions/{id}/view", s.handleView)
		r.Get("/boundaries", s.handleListBoundaries)
		r.Get("/boundaries/{name}", s.handleGetBoundaries)
	})

	return s, r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
