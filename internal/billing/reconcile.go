package billing

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ritwikm/bookbill/internal/catalog"
	"github.com/ritwikm/bookbill/internal/metrics"
	"github.com/ritwikm/bookbill/internal/models"
)

// Reconciler applies a committed bill's quantities back against catalog
// stock. Each decrement is an independent operation: there is no
// cross-item transaction, no lock between calls and no rollback, so a
// partial failure leaves the catalog in a mixed state. The bill is
// considered committed regardless of how many decrements succeed.
type Reconciler struct {
	store catalog.Store
}

// NewReconciler creates a reconciler backed by the given catalog.
func NewReconciler(store catalog.Store) *Reconciler {
	return &Reconciler{store: store}
}

// Apply issues every stock decrement, in order, attempting all of them
// even when some fail. The returned error joins the individual failures;
// a nil return means every pair was applied or silently skipped (a book
// deleted mid-session is dropped by the store, not treated as fatal).
func (r *Reconciler) Apply(ctx context.Context, decrements []models.StockDecrement) error {
	var errs []error
	for _, d := range decrements {
		if err := r.store.DecrementStock(ctx, d.BookID, d.Quantity); err != nil {
			slog.Error("stock decrement failed",
				"book_id", d.BookID,
				"quantity", d.Quantity,
				"error", err,
			)
			metrics.StockDecrements.WithLabelValues("failed").Inc()
			errs = append(errs, err)
			continue
		}
		metrics.StockDecrements.WithLabelValues("applied").Inc()
	}
	return errors.Join(errs...)
}
