package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetTranscriptByUser retrieves a user's transcript, or nil if none exists
func (db *DB) GetTranscriptByUser(ctx context.Context, userID uuid.UUID) (*Transcript, error) {
	var t Transcript
	var subjectsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, subjects, gpa, graduation_year, created_at, updated_at
		 FROM transcripts WHERE user_id = $1`,
		userID,
	).Scan(&t.ID, &t.UserID, &subjectsJSON, &t.GPA, &t.GraduationYear, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transcript: %w", err)
	}
	if err := json.Unmarshal(subjectsJSON, &t.Subjects); err != nil {
		return nil, fmt.Errorf("failed to parse transcript subjects: %w", err)
	}
	return &t, nil
}

// UpsertTranscript creates or replaces a user's transcript and returns the stored row
func (db *DB) UpsertTranscript(ctx context.Context, input TranscriptInput) (*Transcript, error) {
	if input.Subjects == nil {
		input.Subjects = []SubjectGrade{}
	}
	subjectsJSON, err := json.Marshal(input.Subjects)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transcript subjects: %w", err)
	}

	var t Transcript
	var storedJSON []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO transcripts (user_id, subjects, gpa, graduation_year)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET
		   subjects = $2, gpa = $3, graduation_year = $4, updated_at = NOW()
		 RETURNING id, user_id, subjects, gpa, graduation_year, created_at, updated_at`,
		input.UserID, subjectsJSON, input.GPA, input.GraduationYear,
	).Scan(&t.ID, &t.UserID, &storedJSON, &t.GPA, &t.GraduationYear, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert transcript: %w", err)
	}
	if err := json.Unmarshal(storedJSON, &t.Subjects); err != nil {
		return nil, fmt.Errorf("failed to parse transcript subjects: %w", err)
	}
	return &t, nil
}
