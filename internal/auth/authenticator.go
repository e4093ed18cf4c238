package auth

import (
	"context"

	"github.com/ritwikm/bookbill/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods
// (password, OAuth, etc.) without changing the service layer code.
type Authenticator interface {
	// Register creates a new clerk account with the given email and
	// credential. Returns the created clerk or an error if registration
	// fails.
	Register(ctx context.Context, email, name, credential string) (*models.Clerk, error)

	// Authenticate verifies the clerk's credentials and returns the
	// clerk if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.Clerk, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}
