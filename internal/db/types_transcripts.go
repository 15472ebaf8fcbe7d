package db

import (
	"time"

	"github.com/google/uuid"
)

// SubjectGrade is one (subject, grade) pair on a transcript. Grades may be
// letter grades ("A+".."F") or numeric strings ("87").
type SubjectGrade struct {
	Subject string `json:"subject"`
	Grade   string `json:"grade"`
}

// Transcript represents a student's uploaded or declared transcript
type Transcript struct {
	ID             uuid.UUID      `json:"id"`
	UserID         uuid.UUID      `json:"user_id"`
	Subjects       []SubjectGrade `json:"subjects"`
	GPA            *float64       `json:"gpa,omitempty"`
	GraduationYear *int           `json:"graduation_year,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TranscriptInput is used when creating or replacing a transcript
type TranscriptInput struct {
	UserID         uuid.UUID
	Subjects       []SubjectGrade
	GPA            *float64
	GraduationYear *int
}
