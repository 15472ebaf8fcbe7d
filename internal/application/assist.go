package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/scholarship-tracker/internal/db"
	"github.com/jonathan/scholarship-tracker/internal/llm"
	"github.com/jonathan/scholarship-tracker/internal/prompts"
)

const assistanceFile = "assistance.json"

// AI history entry types
const (
	HistoryTypeEssayFeedback    = "essay_feedback"
	HistoryTypeGroupPreparation = "group_preparation"
	HistoryTypeInterviewPrep    = "interview_preparation"
)

// AssistRequest carries the inputs for an AI-assistance call. ApplicationID
// is optional: when present, ownership is verified and the invocation is
// recorded on the relevant stage's history.
type AssistRequest struct {
	ScholarshipID uuid.UUID
	ApplicationID *uuid.UUID
	Draft         string
	Context       string
}

// EssayAssistance generates feedback on the student's essay draft. When the
// request names an application, the caller must own it and the invocation is
// appended to the essay stage's AI history.
func (s *Service) EssayAssistance(ctx context.Context, userID uuid.UUID, req AssistRequest) (string, error) {
	sch, err := s.loadScholarship(ctx, req.ScholarshipID)
	if err != nil {
		return "", err
	}

	draft := req.Draft
	if strings.TrimSpace(draft) == "" && req.ApplicationID != nil {
		if app, err := s.Get(ctx, userID, *req.ApplicationID); err == nil {
			draft = app.Stages.Essay.Draft
		}
	}
	if strings.TrimSpace(draft) == "" {
		draft = "(no draft yet)"
	}

	prompt := prompts.Format(prompts.MustGet(assistanceFile, "essay_feedback"), map[string]string{
		"Title":         sch.Title,
		"Provider":      sch.Provider,
		"EssayQuestion": sch.EssayQuestion,
		"Draft":         draft,
	})

	text, err := s.llm.GenerateWithSystem(ctx, prompt, prompts.MustGet(assistanceFile, "essay_system"), llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("failed to generate essay assistance: %w", err)
	}

	if req.ApplicationID != nil {
		entry := newHistoryEntry(HistoryTypeEssayFeedback, "Essay feedback", text)
		if _, err := s.mutateOwned(ctx, userID, *req.ApplicationID, func(app *db.Application) error {
			app.Stages.Essay.AIUsed = true
			app.Stages.Essay.AIHistory = append(app.Stages.Essay.AIHistory, entry)
			return nil
		}); err != nil {
			return "", err
		}
	}
	return text, nil
}

// GroupAssistance generates preparation guidance for the group case study
func (s *Service) GroupAssistance(ctx context.Context, userID uuid.UUID, req AssistRequest) (string, error) {
	sch, err := s.loadScholarship(ctx, req.ScholarshipID)
	if err != nil {
		return "", err
	}

	prompt := prompts.Format(prompts.MustGet(assistanceFile, "group_preparation"), map[string]string{
		"Title":     sch.Title,
		"Provider":  sch.Provider,
		"GroupTask": sch.GroupTaskDescription,
		"Context":   req.Context,
	})

	text, err := s.llm.GenerateWithSystem(ctx, prompt, prompts.MustGet(assistanceFile, "group_system"), llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("failed to generate group assistance: %w", err)
	}

	if req.ApplicationID != nil {
		entry := newHistoryEntry(HistoryTypeGroupPreparation, "Group case study preparation", text)
		if _, err := s.mutateOwned(ctx, userID, *req.ApplicationID, func(app *db.Application) error {
			app.Stages.Group.AIPreparationUsed = true
			app.Stages.Group.AIHistory = append(app.Stages.Group.AIHistory, entry)
			return nil
		}); err != nil {
			return "", err
		}
	}
	return text, nil
}

// InterviewAssistance generates preparation guidance for the interview
func (s *Service) InterviewAssistance(ctx context.Context, userID uuid.UUID, req AssistRequest) (string, error) {
	sch, err := s.loadScholarship(ctx, req.ScholarshipID)
	if err != nil {
		return "", err
	}

	focus := strings.Join(sch.InterviewFocusAreas, "\n- ")
	if focus != "" {
		focus = "- " + focus
	}

	prompt := prompts.Format(prompts.MustGet(assistanceFile, "interview_preparation"), map[string]string{
		"Title":      sch.Title,
		"Provider":   sch.Provider,
		"FocusAreas": focus,
		"Context":    req.Context,
	})

	text, err := s.llm.GenerateWithSystem(ctx, prompt, prompts.MustGet(assistanceFile, "interview_system"), llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("failed to generate interview assistance: %w", err)
	}

	if req.ApplicationID != nil {
		entry := newHistoryEntry(HistoryTypeInterviewPrep, "Interview preparation", text)
		if _, err := s.mutateOwned(ctx, userID, *req.ApplicationID, func(app *db.Application) error {
			app.Stages.Interview.AIPreparationGenerated = true
			app.Stages.Interview.AIHistory = append(app.Stages.Interview.AIHistory, entry)
			return nil
		}); err != nil {
			return "", err
		}
	}
	return text, nil
}

func (s *Service) loadScholarship(ctx context.Context, scholarshipID uuid.UUID) (*db.Scholarship, error) {
	sch, err := s.store.GetScholarship(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scholarship: %w", err)
	}
	if sch == nil {
		return nil, &ErrScholarshipNotFound{ID: scholarshipID}
	}
	return sch, nil
}

func newHistoryEntry(entryType, title, response string) db.AIHistoryEntry {
	return db.AIHistoryEntry{
		ID:        uuid.New(),
		Type:      entryType,
		Title:     title,
		Response:  response,
		CreatedAt: time.Now().UTC(),
	}
}
