package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ritwikm/bookbill/internal/catalog"
	"github.com/ritwikm/bookbill/internal/metrics"
	"github.com/ritwikm/bookbill/internal/models"
)

// ListAll returns every book record, oldest first so the inventory
// table renders in insertion order.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]models.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, isbn, book_code, book_name, author, publisher, price, quantity FROM books ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.ISBN, &b.BookCode, &b.BookName, &b.Author, &b.Publisher, &b.Price, &b.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

// Create inserts a new book, assigning its ID.
func (s *SQLiteStore) Create(ctx context.Context, book *models.Book) error {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	if book.Price < 0 {
		return fmt.Errorf("price must not be negative: %v", book.Price)
	}
	if book.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative: %d", book.Quantity)
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO books (id, isbn, book_code, book_name, author, publisher, price, quantity) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		book.ID, book.ISBN, book.BookCode, book.BookName, book.Author, book.Publisher, book.Price, book.Quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

// Update replaces all editable fields of the book with the given ID.
func (s *SQLiteStore) Update(ctx context.Context, id string, book models.Book) error {
	if book.Price < 0 {
		return fmt.Errorf("price must not be negative: %v", book.Price)
	}
	if book.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative: %d", book.Quantity)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE books SET isbn = ?, book_code = ?, book_name = ?, author = ?, publisher = ?, price = ?, quantity = ? WHERE id = ?",
		book.ISBN, book.BookCode, book.BookName, book.Author, book.Publisher, book.Price, book.Quantity, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Delete removes the book with the given ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// DecrementStock sets quantity = max(quantity - delta, 0) for the book
// with the given ID. An unknown ID is a silent no-op. The read and write
// share one transaction so concurrent decrements cannot interleave.
func (s *SQLiteStore) DecrementStock(ctx context.Context, id string, delta int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx, "SELECT quantity FROM books WHERE id = ?", id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		// Book deleted mid-session: drop the decrement, not fatal.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read stock: %w", err)
	}

	next := current - delta
	if next < 0 {
		next = 0
		metrics.OversellClamped.Inc()
	}

	if _, err := tx.ExecContext(ctx, "UPDATE books SET quantity = ? WHERE id = ?", next, id); err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
