// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/ritwikm/bookbill/internal/models"
)

// ErrDuplicateBill is returned when archiving a bill whose number is
// already stored. Bill numbers are timestamp-derived; a collision under
// rapid commits surfaces here instead of silently overwriting.
var ErrDuplicateBill = errors.New("bill number already archived")

// ErrBillNotFound is returned when the requested bill number is not in
// the archive.
var ErrBillNotFound = errors.New("bill not found")

// BillArchive stores committed bills. Bills are immutable: the archive
// only ever inserts and reads, never updates.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type BillArchive interface {
	// SaveBill persists a committed bill under its bill number.
	SaveBill(ctx context.Context, bill *models.CommittedBill) error

	// GetBill retrieves an archived bill by number.
	GetBill(ctx context.Context, number string) (*models.CommittedBill, error)

	// ListBills returns summaries of all archived bills, newest first.
	ListBills(ctx context.Context) ([]models.BillSummary, error)
}

// ClerkStore persists till-operator accounts for authentication.
type ClerkStore interface {
	// CreateClerk inserts a new clerk account.
	CreateClerk(ctx context.Context, clerk *models.Clerk) error

	// GetClerkByEmail retrieves a clerk by email. Returns (nil, nil)
	// when no such clerk exists.
	GetClerkByEmail(ctx context.Context, email string) (*models.Clerk, error)

	// GetClerkByID retrieves a clerk by ID. Returns (nil, nil) when no
	// such clerk exists.
	GetClerkByID(ctx context.Context, id string) (*models.Clerk, error)
}
