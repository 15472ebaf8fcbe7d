package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, user_id, scholarship_id, status, current_stage, stages, created_at, updated_at`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	var stagesJSON []byte
	err := row.Scan(&a.ID, &a.UserID, &a.ScholarshipID, &a.Status, &a.CurrentStage,
		&stagesJSON, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(stagesJSON, &a.Stages); err != nil {
		return nil, fmt.Errorf("failed to parse application stages: %w", err)
	}
	return &a, nil
}

// CreateApplication inserts a fresh application with zeroed stage records.
// The unique (user_id, scholarship_id) constraint backs up the service-level
// duplicate pre-check.
func (db *DB) CreateApplication(ctx context.Context, userID, scholarshipID uuid.UUID) (*Application, error) {
	stagesJSON, err := json.Marshal(NewStages())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stages: %w", err)
	}

	a, err := scanApplication(db.pool.QueryRow(ctx,
		`INSERT INTO applications (user_id, scholarship_id, status, current_stage, stages)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+applicationColumns,
		userID, scholarshipID, ApplicationStatusInProgress, StageEssay, stagesJSON,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return a, nil
}

// GetApplication retrieves an application by ID
func (db *DB) GetApplication(ctx context.Context, applicationID uuid.UUID) (*Application, error) {
	a, err := scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`,
		applicationID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

// GetApplicationByPair retrieves the application for a (user, scholarship) pair
func (db *DB) GetApplicationByPair(ctx context.Context, userID, scholarshipID uuid.UUID) (*Application, error) {
	a, err := scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE user_id = $1 AND scholarship_id = $2`,
		userID, scholarshipID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application by pair: %w", err)
	}
	return a, nil
}

// ListApplicationsByUser retrieves all applications belonging to a user
func (db *DB) ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *a)
	}
	return apps, nil
}

// ListApplications retrieves applications with optional filters (admin listing)
func (db *DB) ListApplications(ctx context.Context, opts ListApplicationsOptions) ([]Application, error) {
	if opts.Limit == 0 {
		opts.Limit = 50
	}

	query := `SELECT ` + applicationColumns + ` FROM applications WHERE 1=1`
	args := []any{}
	argNum := 1

	if opts.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, opts.Status)
		argNum++
	}
	if opts.ScholarshipID != uuid.Nil {
		query += fmt.Sprintf(" AND scholarship_id = $%d", argNum)
		args = append(args, opts.ScholarshipID)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *a)
	}
	return apps, nil
}

// UpdateApplication applies mutate to an application inside a transaction,
// holding a row lock for the duration. This serializes concurrent stage-flag
// flips and aiHistory appends so a racing write cannot drop the other's
// changes. Returns (nil, nil) if the application does not exist; a non-nil
// error from mutate aborts the transaction and is returned unchanged.
func (db *DB) UpdateApplication(ctx context.Context, applicationID uuid.UUID, mutate func(*Application) error) (*Application, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	a, err := scanApplication(tx.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1 FOR UPDATE`,
		applicationID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock application: %w", err)
	}

	if err := mutate(a); err != nil {
		return nil, err
	}

	stagesJSON, err := json.Marshal(a.Stages)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stages: %w", err)
	}

	err = tx.QueryRow(ctx,
		`UPDATE applications
		 SET status = $1, current_stage = $2, stages = $3, updated_at = NOW()
		 WHERE id = $4
		 RETURNING updated_at`,
		a.Status, a.CurrentStage, stagesJSON, applicationID,
	).Scan(&a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit application update: %w", err)
	}
	return a, nil
}
