package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const scholarshipColumns = `id, title, provider, description, benefits, status,
	opening_date, closing_date, citizenship, income_cap, min_grades,
	essay_question, group_task_description, interview_focus_areas,
	source_url, created_at, updated_at`

func scanScholarship(row pgx.Row) (*Scholarship, error) {
	var s Scholarship
	var minGradesJSON []byte
	err := row.Scan(&s.ID, &s.Title, &s.Provider, &s.Description, &s.Benefits, &s.Status,
		&s.OpeningDate, &s.ClosingDate, &s.Citizenship, &s.IncomeCap, &minGradesJSON,
		&s.EssayQuestion, &s.GroupTaskDescription, &s.InterviewFocusAreas,
		&s.SourceURL, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(minGradesJSON) > 0 {
		if err := json.Unmarshal(minGradesJSON, &s.MinGrades); err != nil {
			return nil, fmt.Errorf("failed to parse min_grades: %w", err)
		}
	}
	return &s, nil
}

// CreateScholarship inserts a scholarship and returns its ID
func (db *DB) CreateScholarship(ctx context.Context, input ScholarshipInput) (uuid.UUID, error) {
	if input.Status == "" {
		input.Status = ScholarshipStatusOpen
	}
	if input.Benefits == nil {
		input.Benefits = []string{}
	}
	if input.Citizenship == nil {
		input.Citizenship = []string{}
	}
	if input.InterviewFocusAreas == nil {
		input.InterviewFocusAreas = []string{}
	}
	minGradesJSON, err := json.Marshal(input.MinGrades)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal min_grades: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO scholarships (title, provider, description, benefits, status,
		   opening_date, closing_date, citizenship, income_cap, min_grades,
		   essay_question, group_task_description, interview_focus_areas, source_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id`,
		input.Title, input.Provider, input.Description, input.Benefits, input.Status,
		input.OpeningDate, input.ClosingDate, input.Citizenship, input.IncomeCap, minGradesJSON,
		input.EssayQuestion, input.GroupTaskDescription, input.InterviewFocusAreas, input.SourceURL,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create scholarship: %w", err)
	}
	return id, nil
}

// GetScholarship retrieves a scholarship by ID
func (db *DB) GetScholarship(ctx context.Context, scholarshipID uuid.UUID) (*Scholarship, error) {
	s, err := scanScholarship(db.pool.QueryRow(ctx,
		`SELECT `+scholarshipColumns+` FROM scholarships WHERE id = $1`,
		scholarshipID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}
	return s, nil
}

// ListScholarships retrieves scholarships with optional filters and pagination.
// Returns the page of results and the total match count.
func (db *DB) ListScholarships(ctx context.Context, opts ListScholarshipsOptions) ([]Scholarship, int, error) {
	if opts.Limit == 0 {
		opts.Limit = 50
	}

	where := ` WHERE 1=1`
	args := []any{}
	argNum := 1

	if opts.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, opts.Status)
		argNum++
	}
	if opts.Provider != "" {
		where += fmt.Sprintf(" AND provider ILIKE $%d", argNum)
		args = append(args, "%"+opts.Provider+"%")
		argNum++
	}

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM scholarships`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count scholarships: %w", err)
	}

	query := `SELECT ` + scholarshipColumns + ` FROM scholarships` + where +
		fmt.Sprintf(" ORDER BY closing_date ASC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list scholarships: %w", err)
	}
	defer rows.Close()

	var scholarships []Scholarship
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan scholarship: %w", err)
		}
		scholarships = append(scholarships, *s)
	}
	return scholarships, total, nil
}
