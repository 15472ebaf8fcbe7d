package db

import (
	"time"

	"github.com/google/uuid"
)

// Document kind constants
const (
	DocumentKindTranscript  = "transcript"
	DocumentKindCertificate = "certificate"
)

// Document represents an uploaded file (transcript scan, certificate).
// Content is only populated when fetching a single document for download.
type Document struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Kind        string    `json:"kind"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Content     []byte    `json:"-"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// DocumentInput is used when storing an uploaded file
type DocumentInput struct {
	UserID      uuid.UUID
	Kind        string
	Filename    string
	ContentType string
	Content     []byte
}
