package db

import (
	"time"

	"github.com/google/uuid"
)

// Application status constants
const (
	ApplicationStatusInProgress  = "in_progress"
	ApplicationStatusEssayPassed = "essay_passed"
	ApplicationStatusGroupPassed = "group_passed"
	ApplicationStatusAccepted    = "accepted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusCompleted   = "completed"
)

// Stage name constants
const (
	StageEssay     = "essay"
	StageGroup     = "group"
	StageInterview = "interview"
)

// Interview sub-status constants
const (
	InterviewStatusPending   = "pending"
	InterviewStatusScheduled = "scheduled"
	InterviewStatusCompleted = "completed"
)

// AIHistoryEntry records one AI-assistance invocation against a stage.
// Entries are append-only; they are never edited or removed.
type AIHistoryEntry struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// EssayStage holds the state of the essay stage
type EssayStage struct {
	Draft         string           `json:"draft"`
	Submitted     bool             `json:"submitted"`
	Checked       bool             `json:"checked"`
	Passed        bool             `json:"passed"`
	ReviewerNotes string           `json:"reviewer_notes,omitempty"`
	AIUsed        bool             `json:"ai_used"`
	AIHistory     []AIHistoryEntry `json:"ai_history,omitempty"`
}

// GroupStage holds the state of the group case study stage
type GroupStage struct {
	Checked           bool             `json:"checked"`
	Passed            bool             `json:"passed"`
	ReviewerNotes     string           `json:"reviewer_notes,omitempty"`
	AIPreparationUsed bool             `json:"ai_preparation_used"`
	AIHistory         []AIHistoryEntry `json:"ai_history,omitempty"`
}

// InterviewerProfile describes the assigned interviewer, if any
type InterviewerProfile struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

// InterviewStage holds the state of the interview stage
type InterviewStage struct {
	Status                 string              `json:"status"`
	Checked                bool                `json:"checked"`
	Passed                 bool                `json:"passed"`
	ReviewerNotes          string              `json:"reviewer_notes,omitempty"`
	AIPreparationGenerated bool                `json:"ai_preparation_generated"`
	AIHistory              []AIHistoryEntry    `json:"ai_history,omitempty"`
	Interviewer            *InterviewerProfile `json:"interviewer,omitempty"`
	ScheduledAt            *time.Time          `json:"scheduled_at,omitempty"`
	ReflectionNotes        string              `json:"reflection_notes,omitempty"`
}

// Stages is the closed set of per-stage sub-records on an application
type Stages struct {
	Essay     EssayStage     `json:"essay"`
	Group     GroupStage     `json:"group"`
	Interview InterviewStage `json:"interview"`
}

// NewStages returns the zeroed stage set for a freshly started application
func NewStages() Stages {
	return Stages{
		Interview: InterviewStage{Status: InterviewStatusPending},
	}
}

// Application tracks one student's progress through a scholarship's
// three-stage pipeline. At most one row exists per (user, scholarship) pair.
type Application struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	ScholarshipID uuid.UUID `json:"scholarship_id"`
	Status        string    `json:"status"`
	CurrentStage  string    `json:"current_stage"`
	Stages        Stages    `json:"stages"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListApplicationsOptions holds optional filters for the admin listing
type ListApplicationsOptions struct {
	Status        string
	ScholarshipID uuid.UUID
	Limit         int
	Offset        int
}
