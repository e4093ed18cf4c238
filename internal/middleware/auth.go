package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ritwikm/bookbill/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// ClerkIDKey is the context key for storing the authenticated clerk ID.
	ClerkIDKey contextKey = "clerk_id"
	// EmailKey is the context key for storing the authenticated clerk's email.
	EmailKey contextKey = "email"
)

// GetClerkID extracts the clerk ID from the context.
// Returns empty string if not found.
func GetClerkID(ctx context.Context) string {
	clerkID, _ := ctx.Value(ClerkIDKey).(string)
	return clerkID
}

// GetEmail extracts the clerk email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// RequireAuth returns a middleware that validates Bearer JWT tokens.
// It extracts the token from the Authorization header, validates it, and
// adds the clerk ID and email to the request context.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, auth.ErrMissingToken)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, auth.ErrInvalidToken)
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				unauthorized(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ClerkIDKey, claims.ClerkID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
