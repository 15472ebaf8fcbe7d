package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/scholarship-tracker/internal/db"
	"github.com/jonathan/scholarship-tracker/internal/eligibility"
)

// ---------------------------------------------------------------------
// Scholarship Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListScholarships(w http.ResponseWriter, r *http.Request) {
	opts := db.ListScholarshipsOptions{
		Status:   r.URL.Query().Get("status"),
		Provider: r.URL.Query().Get("provider"),
		Limit:    queryInt(r, "limit", 20),
		Offset:   queryInt(r, "offset", 0),
	}

	scholarships, total, err := s.db.ListScholarships(r.Context(), opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"scholarships": scholarships,
		"total":        total,
		"limit":        opts.Limit,
		"offset":       opts.Offset,
	})
}

func (s *Server) handleGetScholarship(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid scholarship ID")
		return
	}

	scholarship, err := s.db.GetScholarship(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if scholarship == nil {
		s.errorResponse(w, http.StatusNotFound, "Scholarship not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, scholarship)
}

// handleCheckEligibility evaluates the caller's profile and transcript against
// a scholarship's criteria and returns the verdict with reasons.
func (s *Server) handleCheckEligibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid scholarship ID")
		return
	}

	scholarship, err := s.db.GetScholarship(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if scholarship == nil {
		s.errorResponse(w, http.StatusNotFound, "Scholarship not found")
		return
	}

	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	transcript, err := s.db.GetTranscriptByUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	result := eligibility.Check(profile, transcript, scholarship)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleCreateScholarship creates a scholarship from a JSON body (admin only).
func (s *Server) handleCreateScholarship(w http.ResponseWriter, r *http.Request) {
	var input db.ScholarshipInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if input.Title == "" || input.Provider == "" {
		s.errorResponse(w, http.StatusBadRequest, "title and provider are required")
		return
	}
	if input.Status == "" {
		input.Status = db.ScholarshipStatusOpen
	}

	id, err := s.db.CreateScholarship(r.Context(), input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}
