package models

import "time"

// LineItem represents a single book entry on a bill in progress.
// BookName and Rate are snapshots taken when the book is selected;
// they do not change if the catalog entry is edited mid-session.
type LineItem struct {
	// BookID references the catalog entry. At most one line item per
	// BookID exists within a session.
	BookID string `json:"bookId"`

	// BookName is the display name snapshot at selection time.
	BookName string `json:"bookName"`

	// Quantity is the number of copies billed. Always >= 1.
	Quantity int `json:"quantity"`

	// Rate is the unit price snapshot at selection time, immutable for
	// the session.
	Rate float64 `json:"rate"`

	// Amount is always Rate * Quantity.
	Amount float64 `json:"amount"`
}

// Totals holds the derived pricing of a bill session.
type Totals struct {
	// Subtotal is the sum of all line item amounts.
	Subtotal float64 `json:"subtotal"`

	// DiscountAmount is Subtotal * percent/100 when the discount is
	// enabled, zero otherwise.
	DiscountAmount float64 `json:"discountAmount"`

	// Total is Subtotal - DiscountAmount.
	Total float64 `json:"total"`
}

// CommittedBill is the immutable snapshot produced when a bill session is
// finalized. It is the payload handed to the invoice renderer and the
// bill archive; nothing mutates it after creation.
type CommittedBill struct {
	// Number is the generated bill number, e.g. "INV-53098712".
	Number string `json:"number"`

	// IssuedAt is when the bill was committed.
	IssuedAt time.Time `json:"issuedAt"`

	// Items are copies of the session's line items in display order.
	Items []LineItem `json:"items"`

	Subtotal        float64 `json:"subtotal"`
	DiscountPercent float64 `json:"discountPercent"`
	DiscountAmount  float64 `json:"discountAmount"`
	Total           float64 `json:"total"`
}

// BillSummary is the listing form of an archived bill.
type BillSummary struct {
	Number    string    `json:"number"`
	IssuedAt  time.Time `json:"issuedAt"`
	ItemCount int       `json:"itemCount"`
	Total     float64   `json:"total"`
}

// StockDecrement is one stock-reduction request derived from a committed
// bill: reduce the book's on-hand quantity by Quantity, clamped at zero.
type StockDecrement struct {
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
}
