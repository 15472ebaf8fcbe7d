package db

import (
	"time"

	"github.com/google/uuid"
)

// Scholarship status constants
const (
	ScholarshipStatusOpen   = "open"
	ScholarshipStatusClosed = "closed"
)

// Scholarship represents a scholarship listing. Read-only from the
// application's perspective; rows are created by the seed or scrape tooling.
type Scholarship struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Provider    string    `json:"provider"`
	Description string    `json:"description"`
	Benefits    []string  `json:"benefits,omitempty"`
	Status      string    `json:"status"`
	OpeningDate time.Time `json:"opening_date"`
	ClosingDate time.Time `json:"closing_date"`

	// Eligibility constraints
	Citizenship []string           `json:"citizenship,omitempty"` // allow-list; empty means unrestricted
	IncomeCap   *int               `json:"income_cap,omitempty"`  // ordinal scale: low=1, medium=2, high=3
	MinGrades   map[string]float64 `json:"min_grades,omitempty"`  // subject -> minimum numeric grade

	// Stage content
	EssayQuestion        string   `json:"essay_question"`
	GroupTaskDescription string   `json:"group_task_description"`
	InterviewFocusAreas  []string `json:"interview_focus_areas,omitempty"`

	SourceURL *string   `json:"source_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScholarshipInput is used when creating a scholarship (seeding or scraping)
type ScholarshipInput struct {
	Title                string             `json:"title"`
	Provider             string             `json:"provider"`
	Description          string             `json:"description"`
	Benefits             []string           `json:"benefits"`
	Status               string             `json:"status"`
	OpeningDate          time.Time          `json:"opening_date"`
	ClosingDate          time.Time          `json:"closing_date"`
	Citizenship          []string           `json:"citizenship"`
	IncomeCap            *int               `json:"income_cap"`
	MinGrades            map[string]float64 `json:"min_grades"`
	EssayQuestion        string             `json:"essay_question"`
	GroupTaskDescription string             `json:"group_task_description"`
	InterviewFocusAreas  []string           `json:"interview_focus_areas"`
	SourceURL            *string            `json:"source_url"`
}

// ListScholarshipsOptions holds optional filters for listing scholarships
type ListScholarshipsOptions struct {
	Status   string
	Provider string
	Limit    int
	Offset   int
}
