package db

import (
	"time"

	"github.com/google/uuid"
)

// Income bracket constants, ordered low < medium < high
const (
	IncomeBracketLow    = "low"
	IncomeBracketMedium = "medium"
	IncomeBracketHigh   = "high"
)

// Profile holds the declared attributes a student provides during onboarding.
// Citizenship and income bracket feed the eligibility engine.
type Profile struct {
	UserID             uuid.UUID `json:"user_id"`
	Citizenship        *string   `json:"citizenship,omitempty"`
	IncomeBracket      *string   `json:"income_bracket,omitempty"`
	Interests          []string  `json:"interests,omitempty"`
	Goals              *string   `json:"goals,omitempty"`
	GPA                *float64  `json:"gpa,omitempty"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	DocumentsUploaded  bool      `json:"documents_uploaded"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProfileInput is used when creating or updating a profile
type ProfileInput struct {
	UserID             uuid.UUID
	Citizenship        *string
	IncomeBracket      *string
	Interests          []string
	Goals              *string
	GPA                *float64
	OnboardingComplete bool
}
