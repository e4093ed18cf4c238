package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ritwikm/bookbill/internal/models"
)

// CreateClerk inserts a new clerk account into the database.
func (s *SQLiteStore) CreateClerk(ctx context.Context, clerk *models.Clerk) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO clerks (id, email, name, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		clerk.ID, clerk.Email, clerk.Name, clerk.PasswordHash, clerk.CreatedAt, clerk.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clerk: %w", err)
	}
	return nil
}

// GetClerkByEmail retrieves a clerk by email address.
func (s *SQLiteStore) GetClerkByEmail(ctx context.Context, email string) (*models.Clerk, error) {
	clerk := &models.Clerk{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, name, password_hash, created_at, updated_at FROM clerks WHERE email = ?",
		email,
	).Scan(&clerk.ID, &clerk.Email, &clerk.Name, &clerk.PasswordHash, &clerk.CreatedAt, &clerk.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Clerk not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clerk by email: %w", err)
	}
	return clerk, nil
}

// GetClerkByID retrieves a clerk by ID.
func (s *SQLiteStore) GetClerkByID(ctx context.Context, id string) (*models.Clerk, error) {
	clerk := &models.Clerk{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, name, password_hash, created_at, updated_at FROM clerks WHERE id = ?",
		id,
	).Scan(&clerk.ID, &clerk.Email, &clerk.Name, &clerk.PasswordHash, &clerk.CreatedAt, &clerk.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Clerk not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clerk by id: %w", err)
	}
	return clerk, nil
}
