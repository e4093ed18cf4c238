// Package billing implements the bill-composition state machine and the
// stock reconciliation that follows a committed bill.
package billing

import (
	"errors"
	"strconv"
	"time"

	"github.com/ritwikm/bookbill/internal/models"
)

var (
	// ErrEmptyBill is returned when commit is attempted with zero line
	// items. The caller blocks the action; nothing is generated and no
	// stock is touched.
	ErrEmptyBill = errors.New("bill has no items")

	// ErrSessionClosed is returned when a composer is used after a
	// successful commit. A committed session is done; the caller opens
	// a new one.
	ErrSessionClosed = errors.New("bill session already committed")
)

// Composer accumulates line items for one in-progress sale and computes
// derived totals. It is not safe for concurrent use; one session belongs
// to one actor.
//
// State machine: Empty -> Composing (>=1 item) -> Committed. Removing
// the last item returns to Empty. Commit from Empty fails with
// ErrEmptyBill. Abandoning a session is simply discarding the Composer.
type Composer struct {
	items           []models.LineItem
	applyDiscount   bool
	discountPercent float64
	committed       bool
}

// NewComposer returns an empty bill session.
func NewComposer() *Composer {
	return &Composer{}
}

// SelectBook appends a line item for the book with quantity 1, taking
// name and price snapshots. Selecting a book already on the bill is a
// deliberate silent no-op: quantity and rate stay untouched, and the
// user edits quantity explicitly instead.
func (c *Composer) SelectBook(book models.Book) {
	if c.committed {
		return
	}
	for _, item := range c.items {
		if item.BookID == book.ID {
			return
		}
	}
	c.items = append(c.items, models.LineItem{
		BookID:   book.ID,
		BookName: book.BookName,
		Quantity: 1,
		Rate:     book.Price,
		Amount:   book.Price,
	})
}

// SetQuantity replaces the line item's quantity and recomputes its
// amount. A quantity below 1 is rejected silently and the prior value
// retained. On-hand stock is deliberately not checked here: overselling
// is permitted at composition time and clamped at reconciliation.
func (c *Composer) SetQuantity(bookID string, quantity int) {
	if c.committed || quantity < 1 {
		return
	}
	for i := range c.items {
		if c.items[i].BookID == bookID {
			c.items[i].Quantity = quantity
			c.items[i].Amount = c.items[i].Rate * float64(quantity)
			return
		}
	}
}

// RemoveItem deletes the line item if present; no-op otherwise.
func (c *Composer) RemoveItem(bookID string) {
	if c.committed {
		return
	}
	for i := range c.items {
		if c.items[i].BookID == bookID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetDiscount toggles the discount. Disabling forces percent to zero
// regardless of the value supplied. Percent is clamped to [0,100].
func (c *Composer) SetDiscount(enabled bool, percent float64) {
	if c.committed {
		return
	}
	if !enabled {
		c.applyDiscount = false
		c.discountPercent = 0
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	c.applyDiscount = true
	c.discountPercent = percent
}

// Items returns a copy of the line items in insertion order, which is
// also the display and print order.
func (c *Composer) Items() []models.LineItem {
	out := make([]models.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Empty reports whether the session holds no line items.
func (c *Composer) Empty() bool {
	return len(c.items) == 0
}

// DiscountPercent returns the effective discount percent (zero when the
// discount is disabled).
func (c *Composer) DiscountPercent() float64 {
	if !c.applyDiscount {
		return 0
	}
	return c.discountPercent
}

// Totals computes the derived pricing of the current state. It is a pure
// function of the session; nothing is cached.
func (c *Composer) Totals() models.Totals {
	var subtotal float64
	for _, item := range c.items {
		subtotal += item.Amount
	}
	var discount float64
	if c.applyDiscount {
		discount = subtotal * c.discountPercent / 100
	}
	return models.Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal - discount,
	}
}

// Commit finalizes the session. It fails with ErrEmptyBill when there
// are no line items, producing nothing and touching no stock. On success
// it returns an immutable CommittedBill and the stock-decrement requests
// derived from the line items, and the session accepts no further
// mutations.
func (c *Composer) Commit(now time.Time) (*models.CommittedBill, []models.StockDecrement, error) {
	if c.committed {
		return nil, nil, ErrSessionClosed
	}
	if len(c.items) == 0 {
		return nil, nil, ErrEmptyBill
	}

	totals := c.Totals()
	bill := &models.CommittedBill{
		Number:          BillNumber(now),
		IssuedAt:        now,
		Items:           c.Items(),
		Subtotal:        totals.Subtotal,
		DiscountPercent: c.DiscountPercent(),
		DiscountAmount:  totals.DiscountAmount,
		Total:           totals.Total,
	}

	decrements := make([]models.StockDecrement, len(c.items))
	for i, item := range c.items {
		decrements[i] = models.StockDecrement{BookID: item.BookID, Quantity: item.Quantity}
	}

	c.committed = true
	return bill, decrements, nil
}

// BillNumber derives a bill number from the commit time: "INV-" followed
// by the last 8 digits of the millisecond timestamp, left-padded with
// zeros if shorter. Collisions are theoretically possible under
// high-frequency commits; the archive rejects duplicates so one would
// surface as a commit error rather than a silent overwrite.
func BillNumber(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	for len(ms) < 8 {
		ms = "0" + ms
	}
	return "INV-" + ms
}
