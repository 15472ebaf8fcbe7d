package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/scholarship-tracker/internal/db"
	"github.com/jonathan/scholarship-tracker/internal/types"
)

// ---------------------------------------------------------------------
// Admin Review Handlers
// ---------------------------------------------------------------------

// handleAdminListApplications lists applications across all users with
// optional status and scholarship filters.
func (s *Server) handleAdminListApplications(w http.ResponseWriter, r *http.Request) {
	opts := db.ListApplicationsOptions{
		Status: r.URL.Query().Get("status"),
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	if raw := r.URL.Query().Get("scholarship_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid scholarship_id")
			return
		}
		opts.ScholarshipID = id
	}

	apps, err := s.db.ListApplications(r.Context(), opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": apps})
}

// reviewFunc is the shape shared by the three per-stage review methods.
type reviewFunc func(r *http.Request, id uuid.UUID, passed bool, notes string) (*db.Application, error)

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request, review reviewFunc) {
	id, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := review(r, id, req.Passed, req.Notes)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleReviewEssay(w http.ResponseWriter, r *http.Request) {
	s.handleReview(w, r, func(r *http.Request, id uuid.UUID, passed bool, notes string) (*db.Application, error) {
		return s.applications.ReviewEssay(r.Context(), id, passed, notes)
	})
}

func (s *Server) handleReviewGroup(w http.ResponseWriter, r *http.Request) {
	s.handleReview(w, r, func(r *http.Request, id uuid.UUID, passed bool, notes string) (*db.Application, error) {
		return s.applications.ReviewGroupStage(r.Context(), id, passed, notes)
	})
}

func (s *Server) handleReviewInterview(w http.ResponseWriter, r *http.Request) {
	s.handleReview(w, r, func(r *http.Request, id uuid.UUID, passed bool, notes string) (*db.Application, error) {
		return s.applications.ReviewInterviewStage(r.Context(), id, passed, notes)
	})
}

func (s *Server) handleMarkCompleted(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	app, err := s.applications.MarkCompleted(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}
