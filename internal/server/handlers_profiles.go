package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/scholarship-tracker/internal/db"
	"github.com/jonathan/scholarship-tracker/internal/types"
)

// ---------------------------------------------------------------------
// Profile Handlers
// ---------------------------------------------------------------------

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	// Merge with the stored profile so partial updates do not blank fields
	existing, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	input := db.ProfileInput{UserID: userID}
	if existing != nil {
		input.Citizenship = existing.Citizenship
		input.IncomeBracket = existing.IncomeBracket
		input.Interests = existing.Interests
		input.Goals = existing.Goals
		input.GPA = existing.GPA
		input.OnboardingComplete = existing.OnboardingComplete
	}
	if req.Citizenship != nil {
		input.Citizenship = req.Citizenship
	}
	if req.IncomeBracket != nil {
		input.IncomeBracket = req.IncomeBracket
	}
	if req.Interests != nil {
		input.Interests = req.Interests
	}
	if req.Goals != nil {
		input.Goals = req.Goals
	}
	if req.GPA != nil {
		input.GPA = req.GPA
	}
	if req.OnboardingComplete != nil {
		input.OnboardingComplete = *req.OnboardingComplete
	}

	profile, err := s.db.UpsertProfile(r.Context(), input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// ---------------------------------------------------------------------
// Transcript Handlers
// ---------------------------------------------------------------------

func (s *Server) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	transcript, err := s.db.GetTranscriptByUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if transcript == nil {
		s.errorResponse(w, http.StatusNotFound, "Transcript not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, transcript)
}

func (s *Server) handlePutTranscript(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	var req types.PutTranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	subjects := make([]db.SubjectGrade, len(req.Subjects))
	for i, entry := range req.Subjects {
		subjects[i] = db.SubjectGrade{Subject: entry.Subject, Grade: entry.Grade}
	}

	transcript, err := s.db.UpsertTranscript(r.Context(), db.TranscriptInput{
		UserID:         userID,
		Subjects:       subjects,
		GPA:            req.GPA,
		GraduationYear: req.GraduationYear,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, transcript)
}
