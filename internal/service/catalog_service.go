package service

import (
	"context"
	"log/slog"

	"github.com/ritwikm/bookbill/internal/catalog"
	"github.com/ritwikm/bookbill/internal/models"
)

// CatalogService fronts the catalog store for the HTTP layer. Catalog
// errors are not caught or retried here; they propagate to the caller,
// which surfaces them to the user and may retry.
type CatalogService struct {
	store catalog.Store
}

// NewCatalogService creates a catalog service over the given store.
func NewCatalogService(store catalog.Store) *CatalogService {
	return &CatalogService{store: store}
}

// List returns the full catalog.
func (s *CatalogService) List(ctx context.Context) ([]models.Book, error) {
	return s.store.ListAll(ctx)
}

// Add creates a book; the store assigns the ID.
func (s *CatalogService) Add(ctx context.Context, book *models.Book) error {
	if err := s.store.Create(ctx, book); err != nil {
		return err
	}
	slog.Info("Book added", "id", book.ID, "name", book.BookName)
	return nil
}

// Update replaces all editable fields of the book with the given ID.
func (s *CatalogService) Update(ctx context.Context, id string, book models.Book) error {
	return s.store.Update(ctx, id, book)
}

// Delete removes a book from the catalog. Open billing sessions keep
// their snapshots; reconciliation drops decrements for deleted books.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// DecrementStock applies a single clamped stock decrement. Exposed so
// the inventory API mirrors the original PATCH surface.
func (s *CatalogService) DecrementStock(ctx context.Context, id string, delta int) error {
	return s.store.DecrementStock(ctx, id, delta)
}
