package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/gymmate/internal/metrics"
	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
	"github.com/claude/gymmate/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options holds the HTTP-facing settings.
type Options struct {
	// APIKey guards the mutating routes; empty leaves them open.
	APIKey      string
	CORSOrigins []string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	reg     *registry.Registry
	prof    *profile.Store
	db      *storage.DB
	metrics *metrics.Manager
	log     *slog.Logger
	opts    Options
	router  chi.Router
	now     func() time.Time
}

// New creates a new Server with all routes configured.
func New(reg *registry.Registry, prof *profile.Store, db *storage.DB, m *metrics.Manager, opts Options, log *slog.Logger) *Server {
	s := &Server{
		reg:     reg,
		prof:    prof,
		db:      db,
		metrics: m,
		log:     log,
		opts:    opts,
		router:  chi.NewRouter(),
		now:     time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(middleware.RealIP)
	s.router.Use(RequestLogging(s.log))
	if s.metrics != nil {
		s.router.Use(RequestMetrics(s.metrics))
	}
	s.router.Use(CORS(s.opts.CORSOrigins))
	s.router.Use(middleware.Recoverer)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Reads
		r.Get("/programs", s.handleListPrograms)
		r.Get("/programs/{id}", s.handleGetProgram)
		r.Get("/profile", s.handleGetProfile)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/tracker", s.handleTracker)
		r.Get("/schedule", s.handleSchedule)
		r.Get("/activity", s.handleActivity)
		r.Get("/events", s.handleEvents)

		// Mutations (API key required when configured)
		r.Group(func(r chi.Router) {
			r.Use(s.protect)
			r.Post("/programs", s.handleAddProgram)
			r.Put("/programs/{id}", s.handleUpdateProgram)
			r.Delete("/programs/{id}", s.handleDeleteProgram)
			r.Put("/programs/{id}/progress", s.handleSetProgress)
			r.Post("/profile", s.handleRegisterProfile)
			r.Patch("/profile", s.handleUpdateProfile)
		})
	})
}

// MountMetrics serves h at /metrics.
func (s *Server) MountMetrics(h http.Handler) {
	s.router.Handle("/metrics", h)
}

// MountMCP serves the MCP streamable HTTP transport at /mcp, behind the API
// key when one is configured since its tools mutate state.
func (s *Server) MountMCP(h http.Handler) {
	s.router.With(s.protect).Handle("/mcp", h)
}

func (s *Server) protect(next http.Handler) http.Handler {
	if s.opts.APIKey == "" {
		return next
	}
	return APIKeyAuth(s.opts.APIKey)(next)
}
