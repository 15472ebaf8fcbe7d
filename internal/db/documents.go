package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateDocument stores an uploaded file and returns its ID
func (db *DB) CreateDocument(ctx context.Context, input DocumentInput) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO documents (user_id, kind, filename, content_type, size_bytes, content)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		input.UserID, input.Kind, input.Filename, input.ContentType, int64(len(input.Content)), input.Content,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create document: %w", err)
	}
	return id, nil
}

// GetDocument retrieves a document including its content
func (db *DB) GetDocument(ctx context.Context, documentID uuid.UUID) (*Document, error) {
	var d Document
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, kind, filename, content_type, size_bytes, content, uploaded_at
		 FROM documents WHERE id = $1`,
		documentID,
	).Scan(&d.ID, &d.UserID, &d.Kind, &d.Filename, &d.ContentType, &d.SizeBytes, &d.Content, &d.UploadedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &d, nil
}

// ListDocumentsByUser lists a user's documents without their content
func (db *DB) ListDocumentsByUser(ctx context.Context, userID uuid.UUID) ([]Document, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, kind, filename, content_type, size_bytes, uploaded_at
		 FROM documents WHERE user_id = $1 ORDER BY uploaded_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.UserID, &d.Kind, &d.Filename, &d.ContentType, &d.SizeBytes, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}
