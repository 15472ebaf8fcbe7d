// Package application implements the three-stage scholarship application
// pipeline: essay, group case study, interview. Stage transitions are linear
// and admin-gated; rejection at any stage is terminal.
package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/scholarship-tracker/internal/db"
	"github.com/jonathan/scholarship-tracker/internal/llm"
)

// Store is the subset of database operations the pipeline needs.
type Store interface {
	GetScholarship(ctx context.Context, scholarshipID uuid.UUID) (*db.Scholarship, error)
	GetApplication(ctx context.Context, applicationID uuid.UUID) (*db.Application, error)
	GetApplicationByPair(ctx context.Context, userID, scholarshipID uuid.UUID) (*db.Application, error)
	CreateApplication(ctx context.Context, userID, scholarshipID uuid.UUID) (*db.Application, error)
	ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]db.Application, error)
	// UpdateApplication applies mutate under a per-application lock. A nil
	// application with nil error means the record does not exist; an error
	// returned by mutate aborts the write and propagates unchanged.
	UpdateApplication(ctx context.Context, applicationID uuid.UUID, mutate func(*db.Application) error) (*db.Application, error)
}

// Service provides the application pipeline business logic
type Service struct {
	store Store
	llm   llm.Client
}

// NewService creates a new application Service
func NewService(store Store, llmClient llm.Client) *Service {
	return &Service{store: store, llm: llmClient}
}

// Start creates an application for (user, scholarship). The scholarship must
// be open, the current time must fall inside its date window, and no prior
// application may exist for the pair.
func (s *Service) Start(ctx context.Context, userID, scholarshipID uuid.UUID) (*db.Application, error) {
	sch, err := s.store.GetScholarship(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scholarship: %w", err)
	}
	if sch == nil {
		return nil, &ErrScholarshipNotFound{ID: scholarshipID}
	}

	if sch.Status != db.ScholarshipStatusOpen {
		return nil, &ErrScholarshipClosed{ID: scholarshipID, Reason: "status is " + sch.Status}
	}
	now := time.Now()
	if now.Before(sch.OpeningDate) || now.After(sch.ClosingDate) {
		return nil, &ErrScholarshipClosed{ID: scholarshipID, Reason: "outside the application window"}
	}

	existing, err := s.store.GetApplicationByPair(ctx, userID, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing application: %w", err)
	}
	if existing != nil {
		return nil, &ErrDuplicateApplication{ScholarshipID: scholarshipID}
	}

	app, err := s.store.CreateApplication(ctx, userID, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// Get retrieves an application, enforcing ownership
func (s *Service) Get(ctx context.Context, userID, applicationID uuid.UUID) (*db.Application, error) {
	app, err := s.store.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	if app == nil {
		return nil, &ErrApplicationNotFound{ID: applicationID}
	}
	if app.UserID != userID {
		return nil, &ErrNotOwner{ApplicationID: applicationID}
	}
	return app, nil
}

// ListForUser lists all applications belonging to a user
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]db.Application, error) {
	return s.store.ListApplicationsByUser(ctx, userID)
}

// SaveEssayDraft overwrites the essay draft. Last write wins; the draft locks
// once a reviewer has checked the essay.
func (s *Service) SaveEssayDraft(ctx context.Context, userID, applicationID uuid.UUID, draft string) (*db.Application, error) {
	return s.mutateOwned(ctx, userID, applicationID, func(app *db.Application) error {
		if err := requireActiveStage(app, db.StageEssay); err != nil {
			return err
		}
		if app.Stages.Essay.Checked {
			return &ErrInvalidTransition{Message: "essay has been reviewed and can no longer be edited"}
		}
		app.Stages.Essay.Draft = draft
		return nil
	})
}

// SubmitEssay marks the essay as submitted. The resolved draft (request body
// draft, falling back to the stored draft) must be non-empty after trimming.
// Submission does not lock the draft; only the reviewer's check does.
func (s *Service) SubmitEssay(ctx context.Context, userID, applicationID uuid.UUID, draft string) (*db.Application, error) {
	return s.mutateOwned(ctx, userID, applicationID, func(app *db.Application) error {
		if err := requireActiveStage(app, db.StageEssay); err != nil {
			return err
		}
		if app.Stages.Essay.Submitted {
			return &ErrInvalidTransition{Message: "essay has already been submitted"}
		}
		resolved := draft
		if strings.TrimSpace(resolved) == "" {
			resolved = app.Stages.Essay.Draft
		}
		if strings.TrimSpace(resolved) == "" {
			return &ErrInvalidTransition{Message: "essay draft is empty"}
		}
		app.Stages.Essay.Draft = resolved
		app.Stages.Essay.Submitted = true
		return nil
	})
}

// ReviewEssay records a reviewer verdict on the essay stage. Pass advances
// the pipeline to the group stage; fail terminates the application.
// Authorization (admin role) is enforced at the transport boundary.
func (s *Service) ReviewEssay(ctx context.Context, applicationID uuid.UUID, passed bool, notes string) (*db.Application, error) {
	return s.mutate(ctx, applicationID, func(app *db.Application) error {
		if err := requireActiveStage(app, db.StageEssay); err != nil {
			return err
		}
		if app.Stages.Essay.Checked {
			return &ErrInvalidTransition{Message: "essay has already been reviewed"}
		}
		app.Stages.Essay.Checked = true
		app.Stages.Essay.Passed = passed
		app.Stages.Essay.ReviewerNotes = notes
		if passed {
			app.Status = db.ApplicationStatusEssayPassed
			app.CurrentStage = db.StageGroup
		} else {
			app.Status = db.ApplicationStatusRejected
		}
		return nil
	})
}

// ReviewGroupStage records a reviewer verdict on the group case study stage
func (s *Service) ReviewGroupStage(ctx context.Context, applicationID uuid.UUID, passed bool, notes string) (*db.Application, error) {
	return s.mutate(ctx, applicationID, func(app *db.Application) error {
		if err := requireActiveStage(app, db.StageGroup); err != nil {
			return err
		}
		if app.Stages.Group.Checked {
			return &ErrInvalidTransition{Message: "group stage has already been reviewed"}
		}
		app.Stages.Group.Checked = true
		app.Stages.Group.Passed = passed
		app.Stages.Group.ReviewerNotes = notes
		if passed {
			app.Status = db.ApplicationStatusGroupPassed
			app.CurrentStage = db.StageInterview
		} else {
			app.Status = db.ApplicationStatusRejected
		}
		return nil
	})
}

// ReviewInterviewStage records a reviewer verdict on the interview stage.
// Pass accepts the application; fail rejects it.
func (s *Service) ReviewInterviewStage(ctx context.Context, applicationID uuid.UUID, passed bool, notes string) (*db.Application, error) {
	return s.mutate(ctx, applicationID, func(app *db.Application) error {
		if err := requireActiveStage(app, db.StageInterview); err != nil {
			return err
		}
		if app.Stages.Interview.Checked {
			return &ErrInvalidTransition{Message: "interview stage has already been reviewed"}
		}
		app.Stages.Interview.Checked = true
		app.Stages.Interview.Passed = passed
		app.Stages.Interview.ReviewerNotes = notes
		app.Stages.Interview.Status = db.InterviewStatusCompleted
		if passed {
			app.Status = db.ApplicationStatusAccepted
		} else {
			app.Status = db.ApplicationStatusRejected
		}
		return nil
	})
}

// MarkCompleted marks an accepted application as completed. Terminal marker
// set by admins once onboarding with the provider has finished.
func (s *Service) MarkCompleted(ctx context.Context, applicationID uuid.UUID) (*db.Application, error) {
	return s.mutate(ctx, applicationID, func(app *db.Application) error {
		if app.Status != db.ApplicationStatusAccepted {
			return &ErrInvalidTransition{Message: "only accepted applications can be marked completed"}
		}
		app.Status = db.ApplicationStatusCompleted
		return nil
	})
}

// ScheduleInterview records the interview slot and, optionally, the assigned
// interviewer on an application that has reached the interview stage.
func (s *Service) ScheduleInterview(ctx context.Context, userID, applicationID uuid.UUID, scheduledAt time.Time, interviewer *db.InterviewerProfile) (*db.Application, error) {
	return s.mutateOwned(ctx, userID, applicationID, func(app *db.Application) error {
		if err := requireActiveStage(app, db.StageInterview); err != nil {
			return err
		}
		if app.Stages.Interview.Checked {
			return &ErrInvalidTransition{Message: "interview stage has already been reviewed"}
		}
		app.Stages.Interview.Status = db.InterviewStatusScheduled
		app.Stages.Interview.ScheduledAt = &scheduledAt
		if interviewer != nil {
			app.Stages.Interview.Interviewer = interviewer
		}
		return nil
	})
}

// SaveInterviewReflection stores the student's post-interview reflection notes
func (s *Service) SaveInterviewReflection(ctx context.Context, userID, applicationID uuid.UUID, notes string) (*db.Application, error) {
	return s.mutateOwned(ctx, userID, applicationID, func(app *db.Application) error {
		if app.CurrentStage != db.StageInterview {
			return &ErrInvalidTransition{Message: "application has not reached the interview stage"}
		}
		app.Stages.Interview.ReflectionNotes = notes
		return nil
	})
}

// requireActiveStage checks that the application is still live and that the
// named stage is the one currently active. Rejected applications accept no
// further stage actions.
func requireActiveStage(app *db.Application, stage string) error {
	if app.Status == db.ApplicationStatusRejected {
		return &ErrInvalidTransition{Message: "application has been rejected"}
	}
	if app.Status == db.ApplicationStatusCompleted {
		return &ErrInvalidTransition{Message: "application has been completed"}
	}
	if app.CurrentStage != stage {
		return &ErrInvalidTransition{Message: fmt.Sprintf("the %s stage is not currently active", stage)}
	}
	return nil
}

// mutate runs a guarded mutation without an ownership check (reviewer path)
func (s *Service) mutate(ctx context.Context, applicationID uuid.UUID, fn func(*db.Application) error) (*db.Application, error) {
	app, err := s.store.UpdateApplication(ctx, applicationID, fn)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, &ErrApplicationNotFound{ID: applicationID}
	}
	return app, nil
}

// mutateOwned runs a guarded mutation after verifying the caller owns the
// application. The ownership check happens inside the row lock.
func (s *Service) mutateOwned(ctx context.Context, userID, applicationID uuid.UUID, fn func(*db.Application) error) (*db.Application, error) {
	return s.mutate(ctx, applicationID, func(app *db.Application) error {
		if app.UserID != userID {
			return &ErrNotOwner{ApplicationID: applicationID}
		}
		return fn(app)
	})
}
