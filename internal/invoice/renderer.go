// Package invoice renders a committed bill into a printable document.
package invoice

import (
	"fmt"
	"strings"

	"github.com/ritwikm/bookbill/internal/models"
)

// currencyLabel prefixes every money value. Fixed two decimal places,
// no thousands separators; the same convention the UI uses.
const currencyLabel = "Rs."

const lineWidth = 72

// FormatMoney renders a currency value, e.g. "Rs. 315.00".
func FormatMoney(v float64) string {
	return fmt.Sprintf("%s %.2f", currencyLabel, v)
}

// FormatDate renders an issue date as dd/mm/yyyy.
func FormatDate(bill *models.CommittedBill) string {
	return bill.IssuedAt.Format("02/01/2006")
}

// Filename is the download name for a rendered invoice.
func Filename(bill *models.CommittedBill) string {
	return bill.Number + ".txt"
}

// Renderer produces a printable document from a committed bill.
// Implementations own layout; the bill value is the whole contract.
type Renderer interface {
	Render(bill *models.CommittedBill) ([]byte, error)
}

// TextRenderer renders a fixed-width plain-text invoice with the store
// header, bill number and date, the item table and the totals block.
type TextRenderer struct {
	// HeaderLines are printed centered at the top, e.g. store name,
	// address and phone.
	HeaderLines []string
}

// NewTextRenderer creates a renderer with the given store header.
func NewTextRenderer(headerLines ...string) *TextRenderer {
	return &TextRenderer{HeaderLines: headerLines}
}

// Render lays out the invoice. Line items keep their insertion order,
// which is the print order.
func (r *TextRenderer) Render(bill *models.CommittedBill) ([]byte, error) {
	if bill == nil {
		return nil, fmt.Errorf("nil bill")
	}

	var b strings.Builder
	rule := strings.Repeat("-", lineWidth)

	for _, line := range r.HeaderLines {
		b.WriteString(center(line))
		b.WriteByte('\n')
	}
	b.WriteString(rule)
	b.WriteByte('\n')

	b.WriteString(fmt.Sprintf("%-36s%36s\n",
		"Bill No: "+bill.Number,
		"Date: "+FormatDate(bill),
	))
	b.WriteString(rule)
	b.WriteByte('\n')

	b.WriteString(fmt.Sprintf("%-4s %-34s %5s %12s %13s\n", "No", "Book Name", "Qty", "Rate", "Amount"))
	for i, item := range bill.Items {
		b.WriteString(fmt.Sprintf("%-4d %-34s %5d %12s %13s\n",
			i+1,
			truncate(item.BookName, 34),
			item.Quantity,
			FormatMoney(item.Rate),
			FormatMoney(item.Amount),
		))
	}
	b.WriteString(rule)
	b.WriteByte('\n')

	b.WriteString(fmt.Sprintf("%72s\n", "Subtotal: "+FormatMoney(bill.Subtotal)))
	b.WriteString(fmt.Sprintf("%72s\n", fmt.Sprintf("Discount (%g%%): - %s", bill.DiscountPercent, FormatMoney(bill.DiscountAmount))))
	b.WriteString(fmt.Sprintf("%72s\n", "Net Total: "+FormatMoney(bill.Total)))

	return []byte(b.String()), nil
}

func center(s string) string {
	if len(s) >= lineWidth {
		return s
	}
	pad := (lineWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
