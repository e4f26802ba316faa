package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/neoscope/pkg/loader"
	"github.com/matzehuels/neoscope/pkg/neo"
)

// Refresher triggers an immediate load. Implemented by [loader.Scheduler].
type Refresher interface {
	RunNow(ctx context.Context) (*loader.Result, error)
}

// Server exposes a [neo.Store] over HTTP.
type Server struct {
	store     *neo.Store
	refresher Refresher
	logger    *log.Logger
	router    chi.Router
}

// New builds the router. A nil refresher disables POST /api/v1/refresh.
func New(store *neo.Store, refresher Refresher, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{store: store, refresher: refresher, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.requireDataset)
			r.Get("/dataset", s.handleDataset)
			r.Get("/observations/by-date", s.handleByDate)
			r.Get("/observations/size-categories", s.handleSizeCategories)
			r.Get("/observations/top", s.handleTop)
			r.Get("/stats/{metric}", s.handleStats)
			r.Get("/daily", s.handleDaily)
			r.Get("/views/{id}", s.handleView)
		})
		r.Get("/views", s.handleCatalog)
		r.Post("/refresh", s.handleRefresh)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errNotFound(r.URL.Path))
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// HTTPServer wraps the handler in an http.Server with conservative timeouts.
// The write timeout leaves room for a refresh, which waits on the upstream.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// probePath reports whether path is a health probe, logged at debug level.
func probePath(path string) bool {
	return path == "/healthz"
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		level := log.InfoLevel
		if probePath(r.URL.Path) {
			level = log.DebugLevel
		}
		s.logger.Log(level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
