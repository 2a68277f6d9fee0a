package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := pathParam(w, r, "trainerID")
	if !ok {
		return
	}

	plans := s.fixtures.Plans(trainerID)
	s.log.Debug("serving workout plans", "trainer_id", trainerID, "count", len(plans))
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := pathParam(w, r, "planID")
	if !ok {
		return
	}

	detail, found := s.fixtures.Detail(planID)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout plan not found: " + planID})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// pathParam returns the unescaped chi URL parameter, writing a 400 on bad escapes.
// chi routes on RawPath when it is set, so only then is the value still escaped.
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v, true
	}
	v, err := url.PathUnescape(v)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + name + ": " + err.Error()})
		return "", false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
