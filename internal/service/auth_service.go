package service

import (
	"context"
	"log/slog"

	"github.com/ritwikm/bookbill/internal/auth"
)

// Session is the result of a successful registration or login.
type Session struct {
	Token   string `json:"token"`
	ClerkID string `json:"clerkId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// AuthService handles clerk registration and login.
type AuthService struct {
	authenticator auth.Authenticator
	jwt           *auth.JWTManager
}

// NewAuthService creates an auth service.
func NewAuthService(authenticator auth.Authenticator, jwt *auth.JWTManager) *AuthService {
	return &AuthService{authenticator: authenticator, jwt: jwt}
}

// Register creates a clerk account and returns a signed session.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*Session, error) {
	clerk, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.Generate(clerk)
	if err != nil {
		return nil, err
	}

	slog.Info("Clerk registered", "clerk_id", clerk.ID, "email", clerk.Email)
	return &Session{Token: token, ClerkID: clerk.ID, Name: clerk.Name, Email: clerk.Email}, nil
}

// Login verifies credentials and returns a signed session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	clerk, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.Generate(clerk)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ClerkID: clerk.ID, Name: clerk.Name, Email: clerk.Email}, nil
}
