package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/ritwikm/bookbill/internal/catalog"
	"github.com/ritwikm/bookbill/internal/models"
)

// stubCatalog records decrement calls and fails for configured IDs.
type stubCatalog struct {
	decrements []models.StockDecrement
	failIDs    map[string]bool
}

var errBackend = errors.New("backend unavailable")

func (s *stubCatalog) ListAll(ctx context.Context) ([]models.Book, error)         { return nil, nil }
func (s *stubCatalog) Create(ctx context.Context, book *models.Book) error        { return nil }
func (s *stubCatalog) Update(ctx context.Context, id string, b models.Book) error { return nil }
func (s *stubCatalog) Delete(ctx context.Context, id string) error                { return nil }

func (s *stubCatalog) DecrementStock(ctx context.Context, id string, delta int) error {
	if s.failIDs[id] {
		return &catalog.TransportError{Op: "decrement", Err: errBackend}
	}
	s.decrements = append(s.decrements, models.StockDecrement{BookID: id, Quantity: delta})
	return nil
}

func TestReconcilerApply(t *testing.T) {
	ctx := context.Background()

	t.Run("applies every pair independently", func(t *testing.T) {
		cat := &stubCatalog{}
		r := NewReconciler(cat)

		err := r.Apply(ctx, []models.StockDecrement{
			{BookID: "A", Quantity: 3},
			{BookID: "B", Quantity: 1},
		})
		if err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		if len(cat.decrements) != 2 {
			t.Fatalf("decrements = %v, want 2 entries", cat.decrements)
		}
	})

	t.Run("a failure does not stop the remaining pairs", func(t *testing.T) {
		cat := &stubCatalog{failIDs: map[string]bool{"B": true}}
		r := NewReconciler(cat)

		err := r.Apply(ctx, []models.StockDecrement{
			{BookID: "A", Quantity: 3},
			{BookID: "B", Quantity: 1},
			{BookID: "C", Quantity: 2},
		})
		if err == nil {
			t.Fatal("expected joined error for the failed pair")
		}
		if !errors.Is(err, errBackend) {
			t.Errorf("err = %v, want wrapped backend error", err)
		}

		// A and C must both have been attempted despite B failing.
		want := []models.StockDecrement{{BookID: "A", Quantity: 3}, {BookID: "C", Quantity: 2}}
		if len(cat.decrements) != len(want) {
			t.Fatalf("decrements = %v, want %v", cat.decrements, want)
		}
		for i := range want {
			if cat.decrements[i] != want[i] {
				t.Errorf("decrement[%d] = %v, want %v", i, cat.decrements[i], want[i])
			}
		}
	})

	t.Run("no pairs is a no-op", func(t *testing.T) {
		cat := &stubCatalog{}
		if err := NewReconciler(cat).Apply(ctx, nil); err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		if len(cat.decrements) != 0 {
			t.Errorf("decrements = %v, want none", cat.decrements)
		}
	})
}
