package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ritwikm/bookbill/internal/models"
	"github.com/ritwikm/bookbill/internal/storage"
)

// SaveBill persists a committed bill and its line items in one
// transaction. The bill number is the primary key; a duplicate number
// fails with storage.ErrDuplicateBill.
func (s *SQLiteStore) SaveBill(ctx context.Context, bill *models.CommittedBill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO bills (number, issued_at, subtotal, discount_percent, discount_amount, total) VALUES (?, ?, ?, ?, ?, ?)",
		bill.Number, bill.IssuedAt.Unix(), bill.Subtotal, bill.DiscountPercent, bill.DiscountAmount, bill.Total,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrDuplicateBill
		}
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	for i, item := range bill.Items {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO bill_items (bill_number, position, book_id, book_name, quantity, rate, amount) VALUES (?, ?, ?, ?, ?, ?, ?)",
			bill.Number, i, item.BookID, item.BookName, item.Quantity, item.Rate, item.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetBill retrieves an archived bill by number, including its line items
// in print order.
func (s *SQLiteStore) GetBill(ctx context.Context, number string) (*models.CommittedBill, error) {
	bill := &models.CommittedBill{}
	var issuedAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT number, issued_at, subtotal, discount_percent, discount_amount, total FROM bills WHERE number = ?",
		number,
	).Scan(&bill.Number, &issuedAt, &bill.Subtotal, &bill.DiscountPercent, &bill.DiscountAmount, &bill.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	bill.IssuedAt = time.Unix(issuedAt, 0)

	rows, err := s.db.QueryContext(ctx,
		"SELECT book_id, book_name, quantity, rate, amount FROM bill_items WHERE bill_number = ? ORDER BY position",
		number,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.LineItem
		if err := rows.Scan(&item.BookID, &item.BookName, &item.Quantity, &item.Rate, &item.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan bill item: %w", err)
		}
		bill.Items = append(bill.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill items: %w", err)
	}

	return bill, nil
}

// ListBills returns summaries of all archived bills, newest first.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]models.BillSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.number, b.issued_at, b.total, COUNT(i.book_id)
		FROM bills b LEFT JOIN bill_items i ON i.bill_number = b.number
		GROUP BY b.number
		ORDER BY b.issued_at DESC, b.number DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var summaries []models.BillSummary
	for rows.Next() {
		var sum models.BillSummary
		var issuedAt int64
		if err := rows.Scan(&sum.Number, &issuedAt, &sum.Total, &sum.ItemCount); err != nil {
			return nil, fmt.Errorf("failed to scan bill summary: %w", err)
		}
		sum.IssuedAt = time.Unix(issuedAt, 0)
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return summaries, nil
}
