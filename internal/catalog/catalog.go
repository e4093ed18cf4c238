// Package catalog defines the contract the billing core requires from the
// authoritative book catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/ritwikm/bookbill/internal/models"
)

// ErrNotFound is returned when a referenced book ID is unknown to the
// catalog during an update or delete.
var ErrNotFound = errors.New("book not found")

// TransportError wraps a network or I/O failure talking to a remote
// catalog. The in-memory view is left stale until the next successful
// fetch; retrying is the caller's decision.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Store is the catalog collaborator contract.
// This abstraction allows swapping catalog backends (embedded SQLite, a
// remote inventory API, etc.) without changing the billing core.
type Store interface {
	// ListAll returns every book record.
	ListAll(ctx context.Context) ([]models.Book, error)

	// Create stores a new book and assigns its ID. The book.ID field
	// will be populated by the store.
	Create(ctx context.Context, book *models.Book) error

	// Update replaces all editable fields of the book with the given ID.
	// Returns ErrNotFound if the ID is unknown.
	Update(ctx context.Context, id string, book models.Book) error

	// Delete removes the book with the given ID.
	Delete(ctx context.Context, id string) error

	// DecrementStock sets quantity = max(quantity - delta, 0) for the
	// book with the given ID. An unknown ID is silently skipped, never
	// an error: a line item whose book was deleted mid-session is
	// dropped, not fatal.
	DecrementStock(ctx context.Context, id string, delta int) error
}
