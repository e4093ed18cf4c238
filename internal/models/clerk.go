package models

import (
	"time"

	"github.com/google/uuid"
)

// Clerk represents a registered till operator.
type Clerk struct {
	// ID is the unique identifier for the clerk (UUID format).
	ID string

	// Name is the clerk's display name.
	Name string

	// Email is the clerk's email address (unique). Used for login.
	Email string

	// PasswordHash is the bcrypt hash of the clerk's password.
	// Never serialized.
	PasswordHash string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewClerk creates a clerk with a fresh ID and timestamps.
func NewClerk(email, name, passwordHash string) *Clerk {
	now := time.Now().Unix()
	return &Clerk{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
