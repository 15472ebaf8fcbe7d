package db

import (
	"time"

	"github.com/google/uuid"
)

// Role constants for users
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a registered user
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	PasswordSet  bool      `json:"password_set"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
