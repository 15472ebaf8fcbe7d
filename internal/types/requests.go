package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UpdateProfileRequest represents an onboarding profile update. All fields are
// optional; absent fields leave the stored value untouched.
type UpdateProfileRequest struct {
	Citizenship        *string  `json:"citizenship,omitempty"`
	IncomeBracket      *string  `json:"income_bracket,omitempty" validate:"omitempty,oneof=low medium high"`
	Interests          []string `json:"interests,omitempty"`
	Goals              *string  `json:"goals,omitempty"`
	GPA                *float64 `json:"gpa,omitempty" validate:"omitempty,gte=0,lte=5"`
	OnboardingComplete *bool    `json:"onboarding_complete,omitempty"`
}

// SubjectGradeEntry is one subject row in a transcript request.
type SubjectGradeEntry struct {
	Subject string `json:"subject" validate:"required,min=1"`
	Grade   string `json:"grade" validate:"required,min=1"`
}

// PutTranscriptRequest replaces the caller's transcript.
type PutTranscriptRequest struct {
	Subjects       []SubjectGradeEntry `json:"subjects" validate:"required,min=1,dive"`
	GPA            *float64            `json:"gpa,omitempty" validate:"omitempty,gte=0,lte=5"`
	GraduationYear *int                `json:"graduation_year,omitempty" validate:"omitempty,gte=1900,lte=2200"`
}

// StartApplicationRequest represents the request to start an application.
type StartApplicationRequest struct {
	ScholarshipID uuid.UUID `json:"scholarship_id" validate:"required"`
}

// EssayDraftRequest represents a draft save or submission. The draft may be
// empty on submission, in which case the stored draft is used.
type EssayDraftRequest struct {
	Draft string `json:"draft"`
}

// AssistanceRequest represents a request for AI guidance on a pipeline stage.
// ApplicationID is optional; when present the invocation is recorded on the
// application's stage history.
type AssistanceRequest struct {
	ScholarshipID uuid.UUID  `json:"scholarship_id" validate:"required"`
	ApplicationID *uuid.UUID `json:"application_id,omitempty"`
	Draft         string     `json:"draft,omitempty"`
	Context       string     `json:"context,omitempty"`
}

// ReviewRequest represents an admin verdict on the active stage.
type ReviewRequest struct {
	Passed bool   `json:"passed"`
	Notes  string `json:"notes,omitempty"`
}

// ScheduleInterviewRequest represents an interview scheduling request.
type ScheduleInterviewRequest struct {
	ScheduledAt      time.Time `json:"scheduled_at" validate:"required"`
	InterviewerName  string    `json:"interviewer_name,omitempty"`
	InterviewerTitle string    `json:"interviewer_title,omitempty"`
	InterviewerBio   string    `json:"interviewer_bio,omitempty"`
}

// ReflectionRequest represents the student's post-interview reflection notes.
type ReflectionRequest struct {
	Notes string `json:"notes" validate:"required,min=1"`
}

// Validate validates the UpdateProfileRequest using the validator.
func (r *UpdateProfileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the PutTranscriptRequest using the validator.
func (r *PutTranscriptRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the StartApplicationRequest using the validator.
func (r *StartApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AssistanceRequest using the validator.
func (r *AssistanceRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ScheduleInterviewRequest using the validator.
func (r *ScheduleInterviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ReflectionRequest using the validator.
func (r *ReflectionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
