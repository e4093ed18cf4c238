package billing

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/ritwikm/bookbill/internal/models"
)

var (
	bookA = models.Book{ID: "A", BookName: "The Go Programming Language", Price: 100, Quantity: 10}
	bookB = models.Book{ID: "B", BookName: "Clean Architecture", Price: 50, Quantity: 5}
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.0001
}

func TestSelectBook(t *testing.T) {
	tests := []struct {
		name      string
		selects   []models.Book
		wantItems int
		validate  func(t *testing.T, c *Composer)
	}{
		{
			name:      "distinct books produce one line item each",
			selects:   []models.Book{bookA, bookB},
			wantItems: 2,
			validate: func(t *testing.T, c *Composer) {
				for _, item := range c.Items() {
					if !almostEqual(item.Amount, item.Rate*float64(item.Quantity)) {
						t.Errorf("item %s: amount = %v, want rate*quantity = %v", item.BookID, item.Amount, item.Rate*float64(item.Quantity))
					}
					if item.Quantity != 1 {
						t.Errorf("item %s: quantity = %d, want 1", item.BookID, item.Quantity)
					}
				}
			},
		},
		{
			name:      "re-selecting is a silent no-op",
			selects:   []models.Book{bookA, bookA, bookA},
			wantItems: 1,
			validate: func(t *testing.T, c *Composer) {
				item := c.Items()[0]
				if item.Quantity != 1 {
					t.Errorf("quantity = %d, want 1 (re-selection must not increment)", item.Quantity)
				}
				if !almostEqual(item.Rate, bookA.Price) {
					t.Errorf("rate = %v, want %v", item.Rate, bookA.Price)
				}
			},
		},
		{
			name: "rate is a snapshot of the price at selection time",
			selects: []models.Book{
				bookA,
				{ID: "A", BookName: "The Go Programming Language", Price: 999},
			},
			wantItems: 1,
			validate: func(t *testing.T, c *Composer) {
				if got := c.Items()[0].Rate; !almostEqual(got, 100) {
					t.Errorf("rate = %v, want the original snapshot 100", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposer()
			for _, b := range tt.selects {
				c.SelectBook(b)
			}
			if got := len(c.Items()); got != tt.wantItems {
				t.Fatalf("line items = %d, want %d", got, tt.wantItems)
			}
			if tt.validate != nil {
				tt.validate(t, c)
			}
		})
	}
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name       string
		quantity   int
		wantQty    int
		wantAmount float64
	}{
		{name: "positive quantity recomputes amount", quantity: 3, wantQty: 3, wantAmount: 300},
		{name: "zero is rejected and prior state retained", quantity: 0, wantQty: 1, wantAmount: 100},
		{name: "negative is rejected and prior state retained", quantity: -4, wantQty: 1, wantAmount: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposer()
			c.SelectBook(bookA)
			c.SetQuantity("A", tt.quantity)

			item := c.Items()[0]
			if item.Quantity != tt.wantQty {
				t.Errorf("quantity = %d, want %d", item.Quantity, tt.wantQty)
			}
			if !almostEqual(item.Amount, tt.wantAmount) {
				t.Errorf("amount = %v, want %v", item.Amount, tt.wantAmount)
			}
		})
	}

	t.Run("unknown book is a no-op", func(t *testing.T) {
		c := NewComposer()
		c.SelectBook(bookA)
		c.SetQuantity("missing", 5)
		if got := c.Items()[0].Quantity; got != 1 {
			t.Errorf("quantity = %d, want 1", got)
		}
	})

	t.Run("overselling beyond stock is permitted at composition time", func(t *testing.T) {
		c := NewComposer()
		c.SelectBook(bookB) // 5 in stock
		c.SetQuantity("B", 50)
		if got := c.Items()[0].Quantity; got != 50 {
			t.Errorf("quantity = %d, want 50", got)
		}
	})
}

func TestRemoveItem(t *testing.T) {
	c := NewComposer()
	c.SelectBook(bookA)
	c.SelectBook(bookB)

	c.RemoveItem("A")
	items := c.Items()
	if len(items) != 1 || items[0].BookID != "B" {
		t.Fatalf("items = %+v, want only B", items)
	}

	// Removing an absent item is a no-op.
	c.RemoveItem("A")
	if got := len(c.Items()); got != 1 {
		t.Fatalf("items = %d, want 1", got)
	}

	// Removing the last item returns the session to the empty state.
	c.RemoveItem("B")
	if !c.Empty() {
		t.Error("expected empty session after removing the last item")
	}
	if _, _, err := c.Commit(time.Now()); err != ErrEmptyBill {
		t.Errorf("commit after emptying = %v, want ErrEmptyBill", err)
	}
}

func TestTotals(t *testing.T) {
	tests := []struct {
		name            string
		setup           func(c *Composer)
		wantSubtotal    float64
		wantDiscount    float64
		wantTotal       float64
		wantDiscountPct float64
	}{
		{
			name:         "no items",
			setup:        func(c *Composer) {},
			wantSubtotal: 0, wantDiscount: 0, wantTotal: 0,
		},
		{
			name: "subtotal is the sum of amounts",
			setup: func(c *Composer) {
				c.SelectBook(bookA)
				c.SelectBook(bookB)
				c.SetQuantity("A", 3)
			},
			wantSubtotal: 350, wantDiscount: 0, wantTotal: 350,
		},
		{
			name: "discount applies percent of subtotal",
			setup: func(c *Composer) {
				c.SelectBook(bookA)
				c.SelectBook(bookB)
				c.SetQuantity("A", 3)
				c.SetDiscount(true, 10)
			},
			wantSubtotal: 350, wantDiscount: 35, wantTotal: 315,
			wantDiscountPct: 10,
		},
		{
			name: "disabling the discount resets percent to zero",
			setup: func(c *Composer) {
				c.SelectBook(bookA)
				c.SetDiscount(true, 25)
				c.SetDiscount(false, 25)
			},
			wantSubtotal: 100, wantDiscount: 0, wantTotal: 100,
		},
		{
			name: "percent above 100 is clamped",
			setup: func(c *Composer) {
				c.SelectBook(bookA)
				c.SetDiscount(true, 250)
			},
			wantSubtotal: 100, wantDiscount: 100, wantTotal: 0,
			wantDiscountPct: 100,
		},
		{
			name: "negative percent is clamped to zero",
			setup: func(c *Composer) {
				c.SelectBook(bookA)
				c.SetDiscount(true, -5)
			},
			wantSubtotal: 100, wantDiscount: 0, wantTotal: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposer()
			tt.setup(c)

			totals := c.Totals()
			if !almostEqual(totals.Subtotal, tt.wantSubtotal) {
				t.Errorf("subtotal = %v, want %v", totals.Subtotal, tt.wantSubtotal)
			}
			if !almostEqual(totals.DiscountAmount, tt.wantDiscount) {
				t.Errorf("discountAmount = %v, want %v", totals.DiscountAmount, tt.wantDiscount)
			}
			if !almostEqual(totals.Total, tt.wantTotal) {
				t.Errorf("total = %v, want %v", totals.Total, tt.wantTotal)
			}
			if !almostEqual(c.DiscountPercent(), tt.wantDiscountPct) {
				t.Errorf("discountPercent = %v, want %v", c.DiscountPercent(), tt.wantDiscountPct)
			}
			if !almostEqual(totals.Total, totals.Subtotal-totals.DiscountAmount) {
				t.Errorf("total %v != subtotal %v - discount %v", totals.Total, totals.Subtotal, totals.DiscountAmount)
			}
		})
	}
}

func TestCommit(t *testing.T) {
	t.Run("empty session fails and has no side effects", func(t *testing.T) {
		c := NewComposer()
		bill, decrements, err := c.Commit(time.Now())
		if err != ErrEmptyBill {
			t.Fatalf("err = %v, want ErrEmptyBill", err)
		}
		if bill != nil || decrements != nil {
			t.Errorf("bill = %v, decrements = %v, want none", bill, decrements)
		}

		// A failed commit must not close the session.
		c.SelectBook(bookA)
		if _, _, err := c.Commit(time.Now()); err != nil {
			t.Errorf("commit after adding item = %v, want success", err)
		}
	})

	t.Run("commit snapshots the session and derives decrements", func(t *testing.T) {
		c := NewComposer()
		c.SelectBook(bookA)
		c.SelectBook(bookB)
		c.SetQuantity("A", 3)
		c.SetDiscount(true, 10)

		now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
		bill, decrements, err := c.Commit(now)
		if err != nil {
			t.Fatalf("commit failed: %v", err)
		}

		if bill.Number != BillNumber(now) {
			t.Errorf("number = %s, want %s", bill.Number, BillNumber(now))
		}
		if !bill.IssuedAt.Equal(now) {
			t.Errorf("issuedAt = %v, want %v", bill.IssuedAt, now)
		}
		if !almostEqual(bill.Subtotal, 350) || !almostEqual(bill.DiscountAmount, 35) || !almostEqual(bill.Total, 315) {
			t.Errorf("totals = %v/%v/%v, want 350/35/315", bill.Subtotal, bill.DiscountAmount, bill.Total)
		}

		want := []models.StockDecrement{{BookID: "A", Quantity: 3}, {BookID: "B", Quantity: 1}}
		if len(decrements) != len(want) {
			t.Fatalf("decrements = %v, want %v", decrements, want)
		}
		for i := range want {
			if decrements[i] != want[i] {
				t.Errorf("decrement[%d] = %v, want %v", i, decrements[i], want[i])
			}
		}
	})

	t.Run("a committed session accepts nothing further", func(t *testing.T) {
		c := NewComposer()
		c.SelectBook(bookA)
		if _, _, err := c.Commit(time.Now()); err != nil {
			t.Fatalf("commit failed: %v", err)
		}

		if _, _, err := c.Commit(time.Now()); err != ErrSessionClosed {
			t.Errorf("second commit = %v, want ErrSessionClosed", err)
		}
		c.SelectBook(bookB)
		c.SetQuantity("A", 9)
		if got := len(c.Items()); got != 1 {
			t.Errorf("items after committed mutations = %d, want 1", got)
		}
		if got := c.Items()[0].Quantity; got != 1 {
			t.Errorf("quantity after committed mutation = %d, want 1", got)
		}
	})
}

func TestBillNumber(t *testing.T) {
	format := regexp.MustCompile(`^INV-\d{8}$`)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "last eight digits of the millisecond timestamp",
			t:    time.UnixMilli(1787253098712),
			want: "INV-53098712",
		},
		{
			name: "short timestamps are zero-padded",
			t:    time.UnixMilli(42),
			want: "INV-00000042",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BillNumber(tt.t)
			if got != tt.want {
				t.Errorf("BillNumber = %s, want %s", got, tt.want)
			}
			if !format.MatchString(got) {
				t.Errorf("BillNumber %s does not match INV-<8 digits>", got)
			}
		})
	}
}
