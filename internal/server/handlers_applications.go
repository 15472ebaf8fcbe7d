package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/scholarship-tracker/internal/application"
	"github.com/jonathan/scholarship-tracker/internal/db"
	"github.com/jonathan/scholarship-tracker/internal/types"
)

// ---------------------------------------------------------------------
// Application Handlers
// ---------------------------------------------------------------------

func (s *Server) handleStartApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	var req types.StartApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	app, err := s.applications.Start(r.Context(), userID, req.ScholarshipID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, app)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	apps, err := s.applications.ListForUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": apps})
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	app, err := s.applications.Get(r.Context(), userID, id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleSaveEssayDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.EssayDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := s.applications.SaveEssayDraft(r.Context(), userID, id, req.Draft)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleSubmitEssay(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	// Body is optional; an empty draft falls back to the stored one
	var req types.EssayDraftRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	app, err := s.applications.SubmitEssay(r.Context(), userID, id, req.Draft)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.ScheduleInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	var interviewer *db.InterviewerProfile
	if req.InterviewerName != "" {
		interviewer = &db.InterviewerProfile{
			Name:  req.InterviewerName,
			Title: req.InterviewerTitle,
			Bio:   req.InterviewerBio,
		}
	}

	app, err := s.applications.ScheduleInterview(r.Context(), userID, id, req.ScheduledAt, interviewer)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleSaveReflection(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.ReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	app, err := s.applications.SaveInterviewReflection(r.Context(), userID, id, req.Notes)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

// ---------------------------------------------------------------------
// AI Assistance Handlers
// ---------------------------------------------------------------------

// assistanceFunc is the shape shared by the three per-stage assistance methods.
type assistanceFunc func(r *http.Request, req application.AssistRequest) (string, error)

func (s *Server) handleAssistance(w http.ResponseWriter, r *http.Request, generate assistanceFunc) {
	var req types.AssistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	text, err := generate(r, application.AssistRequest{
		ScholarshipID: req.ScholarshipID,
		ApplicationID: req.ApplicationID,
		Draft:         req.Draft,
		Context:       req.Context,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"guidance": text})
}

func (s *Server) handleEssayAssistance(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}
	s.handleAssistance(w, r, func(r *http.Request, req application.AssistRequest) (string, error) {
		return s.applications.EssayAssistance(r.Context(), userID, req)
	})
}

func (s *Server) handleGroupAssistance(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}
	s.handleAssistance(w, r, func(r *http.Request, req application.AssistRequest) (string, error) {
		return s.applications.GroupAssistance(r.Context(), userID, req)
	})
}

func (s *Server) handleInterviewAssistance(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}
	s.handleAssistance(w, r, func(r *http.Request, req application.AssistRequest) (string, error) {
		return s.applications.InterviewAssistance(r.Context(), userID, req)
	})
}
