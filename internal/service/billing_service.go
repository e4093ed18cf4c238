package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ritwikm/bookbill/internal/billing"
	"github.com/ritwikm/bookbill/internal/catalog"
	"github.com/ritwikm/bookbill/internal/metrics"
	"github.com/ritwikm/bookbill/internal/models"
	"github.com/ritwikm/bookbill/internal/storage"
)

// ErrSessionNotFound is returned when a billing session ID is unknown
// (never opened, expired with a restart, or already committed).
var ErrSessionNotFound = errors.New("billing session not found")

// SessionState is the externally visible view of one billing session.
type SessionState struct {
	ID     string            `json:"id"`
	Items  []models.LineItem `json:"items"`
	Totals models.Totals     `json:"totals"`
}

// BillingService owns the in-memory billing sessions and drives the
// commit flow: finalize the bill, archive it, reconcile stock.
//
// The session map is shared across requests and guarded by a mutex;
// each individual session is still driven by a single actor.
type BillingService struct {
	mu       sync.Mutex
	sessions map[string]*billing.Composer

	catalog    catalog.Store
	archive    storage.BillArchive
	reconciler *billing.Reconciler
}

// NewBillingService creates a billing service over the given catalog and
// bill archive.
func NewBillingService(cat catalog.Store, archive storage.BillArchive) *BillingService {
	return &BillingService{
		sessions:   make(map[string]*billing.Composer),
		catalog:    cat,
		archive:    archive,
		reconciler: billing.NewReconciler(cat),
	}
}

// OpenSession starts a new empty billing session and returns its ID.
func (s *BillingService) OpenSession() string {
	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = billing.NewComposer()
	s.mu.Unlock()
	slog.Debug("Billing session opened", "session_id", id)
	return id
}

// AbandonSession discards a session without committing. Unknown IDs are
// a no-op: abandoning is just forgetting.
func (s *BillingService) AbandonSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *BillingService) session(id string) (*billing.Composer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return c, nil
}

// SelectBook adds the catalog book to the session with quantity 1.
// Re-selecting a book already on the bill is a silent no-op.
func (s *BillingService) SelectBook(ctx context.Context, sessionID, bookID string) error {
	c, err := s.session(sessionID)
	if err != nil {
		return err
	}

	// Selection always goes through a fresh catalog fetch, the same
	// way the UI picks from the re-fetched inventory list.
	books, err := s.catalog.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	for _, book := range books {
		if book.ID == bookID {
			c.SelectBook(book)
			return nil
		}
	}
	return catalog.ErrNotFound
}

// SetQuantity updates a line item's quantity. Non-positive quantities
// are rejected silently and the prior value retained.
func (s *BillingService) SetQuantity(sessionID, bookID string, quantity int) error {
	c, err := s.session(sessionID)
	if err != nil {
		return err
	}
	c.SetQuantity(bookID, quantity)
	return nil
}

// RemoveItem deletes a line item from the session; no-op if absent.
func (s *BillingService) RemoveItem(sessionID, bookID string) error {
	c, err := s.session(sessionID)
	if err != nil {
		return err
	}
	c.RemoveItem(bookID)
	return nil
}

// SetDiscount toggles the session discount. Disabling resets the
// percent to zero; enabling clamps it to [0,100].
func (s *BillingService) SetDiscount(sessionID string, enabled bool, percent float64) error {
	c, err := s.session(sessionID)
	if err != nil {
		return err
	}
	c.SetDiscount(enabled, percent)
	return nil
}

// Snapshot returns the session's line items and derived totals.
func (s *BillingService) Snapshot(sessionID string) (*SessionState, error) {
	c, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionState{
		ID:     sessionID,
		Items:  c.Items(),
		Totals: c.Totals(),
	}, nil
}

// Commit finalizes the session: generate the immutable bill, archive it,
// then issue the stock decrements. An empty session fails with
// billing.ErrEmptyBill and has no side effects. Once the bill is
// generated it counts as committed: decrement failures are logged, not
// rolled back, and do not fail the commit.
func (s *BillingService) Commit(ctx context.Context, sessionID string) (*models.CommittedBill, error) {
	c, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	bill, decrements, err := c.Commit(time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.archive.SaveBill(ctx, bill); err != nil {
		if errors.Is(err, storage.ErrDuplicateBill) {
			// Timestamp collision under rapid commits; surface it
			// rather than silently overwriting the earlier bill.
			return nil, err
		}
		// Archival is a convenience on top of the core contract;
		// the sale still happened.
		slog.Error("failed to archive bill", "number", bill.Number, "error", err)
	}

	if err := s.reconciler.Apply(ctx, decrements); err != nil {
		slog.Error("stock reconciliation incomplete", "number", bill.Number, "error", err)
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	metrics.BillsCommitted.Inc()
	slog.Info("Bill committed",
		"number", bill.Number,
		"items", len(bill.Items),
		"total", bill.Total,
	)
	return bill, nil
}
