package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetProfile retrieves a user's profile, or nil if none exists yet
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, citizenship, income_bracket, interests, goals, gpa,
		        onboarding_complete, documents_uploaded, created_at, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Citizenship, &p.IncomeBracket, &p.Interests, &p.Goals, &p.GPA,
		&p.OnboardingComplete, &p.DocumentsUploaded, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// UpsertProfile creates or replaces a user's profile and returns the stored row
func (db *DB) UpsertProfile(ctx context.Context, input ProfileInput) (*Profile, error) {
	if input.Interests == nil {
		input.Interests = []string{}
	}
	var p Profile
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id, citizenship, income_bracket, interests, goals, gpa, onboarding_complete)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE SET
		   citizenship = $2, income_bracket = $3, interests = $4, goals = $5,
		   gpa = $6, onboarding_complete = $7, updated_at = NOW()
		 RETURNING user_id, citizenship, income_bracket, interests, goals, gpa,
		           onboarding_complete, documents_uploaded, created_at, updated_at`,
		input.UserID, input.Citizenship, input.IncomeBracket, input.Interests,
		input.Goals, input.GPA, input.OnboardingComplete,
	).Scan(&p.UserID, &p.Citizenship, &p.IncomeBracket, &p.Interests, &p.Goals, &p.GPA,
		&p.OnboardingComplete, &p.DocumentsUploaded, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return &p, nil
}

// MarkDocumentsUploaded flips the documents_uploaded onboarding flag.
// Creates a stub profile if the user has not filled one in yet.
func (db *DB) MarkDocumentsUploaded(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, documents_uploaded)
		 VALUES ($1, TRUE)
		 ON CONFLICT (user_id) DO UPDATE SET documents_uploaded = TRUE, updated_at = NOW()`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark documents uploaded: %w", err)
	}
	return nil
}
