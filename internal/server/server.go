// Package server is a fixture-backed stand-in for the workout plan backend.
// It serves the two read-only endpoints the planview client consumes.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	fixtures *Fixtures
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(fixtures *Fixtures, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		fixtures: fixtures,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Get("/trainers/{trainerID}/workoutplans", s.handleListPlans)
		r.Get("/workoutplans/{planID}", s.handleGetPlan)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
}
