package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/gymmate/internal/display"
	"github.com/claude/gymmate/internal/models"
)

type nameAgeRequest struct {
	Name string `json:"name"`
	Age  string `json:"age"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.prof.Get())
}

func (s *Server) handleRegisterProfile(w http.ResponseWriter, r *http.Request) {
	var req models.Profile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	p, err := s.prof.Register(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req nameAgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	p, err := s.prof.UpdateNameAge(req.Name, req.Age)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, display.Dashboard(s.prof.Get(), s.reg.List(), s.now()))
}

func (s *Server) handleTracker(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, display.Tracker(s.reg.List()))
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, display.Schedule(s.reg.List()))
}
