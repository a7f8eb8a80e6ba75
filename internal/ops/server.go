package ops

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"gohoras/internal"
)

// Server is the operational sidecar: health checks and pprof on a
// separate port so they never share a listener with the public API.
type Server struct {
	router *chi.Mux
	db     *sqlx.DB
	log    *internal.Logger
	port   string
}

// NewServer creates the ops server
func NewServer(port string, db *sqlx.DB) *Server {
	s := &Server{
		router: chi.NewRouter(),
		db:     db,
		log:    internal.DefaultLogger,
		port:   port,
	}

	s.router.Use(middleware.Recoverer)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Get("/debug/pprof/", pprof.Index)
	s.router.Get("/debug/pprof/cmdline", pprof.Cmdline)
	s.router.Get("/debug/pprof/profile", pprof.Profile)
	s.router.Get("/debug/pprof/symbol", pprof.Symbol)
	s.router.Get("/debug/pprof/trace", pprof.Trace)
	s.router.Get("/debug/pprof/{name}", func(w http.ResponseWriter, r *http.Request) {
		pprof.Handler(chi.URLParam(r, "name")).ServeHTTP(w, r)
	})
}

// handleHealth pings the database and reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	if err := s.db.PingContext(ctx); err != nil {
		s.log.Warn("health check database ping failed: %v", err)
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status}) //nolint:errcheck
}

// Run starts the ops listener and blocks
func (s *Server) Run() error {
	s.log.Info("ops server listening on :%s", s.port)
	return http.ListenAndServe(":"+s.port, s.router)
}
