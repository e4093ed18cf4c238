package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ritwikm/bookbill/internal/models"
	"github.com/ritwikm/bookbill/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
)

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	clerks storage.ClerkStore
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(clerks storage.ClerkStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{clerks: clerks}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new clerk account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, name, credential string) (*models.Clerk, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	existing, err := a.clerks.GetClerkByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	clerk := models.NewClerk(email, name, string(hashed))
	if err := a.clerks.CreateClerk(ctx, clerk); err != nil {
		return nil, fmt.Errorf("failed to create clerk: %w", err)
	}
	return clerk, nil
}

// Authenticate verifies the email and password, returning the clerk if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.Clerk, error) {
	clerk, err := a.clerks.GetClerkByEmail(ctx, email)
	if err != nil || clerk == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(clerk.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return clerk, nil
}
