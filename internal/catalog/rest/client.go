// Package rest implements catalog.Store against a JSON inventory API
// (GET/POST/PUT/PATCH/DELETE on an /inventory collection), the same
// surface the original frontend consumed.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ritwikm/bookbill/internal/catalog"
	"github.com/ritwikm/bookbill/internal/models"
)

// Ensure Client implements catalog.Store
var _ catalog.Store = (*Client)(nil)

// Client talks to a remote inventory service. It holds no local state:
// every read is a full round-trip, so a stale view only persists until
// the next successful ListAll.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a catalog client for the given base URL, e.g.
// "http://localhost:3001/inventory".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListAll fetches every book record.
func (c *Client) ListAll(ctx context.Context) ([]models.Book, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, &catalog.TransportError{Op: "list", Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &catalog.TransportError{Op: "list", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &catalog.TransportError{Op: "list", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var books []models.Book
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		return nil, &catalog.TransportError{Op: "list", Err: err}
	}
	return books, nil
}

// Create posts a new book. The remote service assigns the ID, which is
// copied back into book.
func (c *Client) Create(ctx context.Context, book *models.Book) error {
	resp, err := c.send(ctx, http.MethodPost, c.baseURL, book)
	if err != nil {
		return &catalog.TransportError{Op: "create", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return &catalog.TransportError{Op: "create", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(book); err != nil {
		return &catalog.TransportError{Op: "create", Err: err}
	}
	return nil
}

// Update replaces all editable fields of the book with the given ID.
func (c *Client) Update(ctx context.Context, id string, book models.Book) error {
	book.ID = id
	resp, err := c.send(ctx, http.MethodPut, c.baseURL+"/"+id, book)
	if err != nil {
		return &catalog.TransportError{Op: "update", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return catalog.ErrNotFound
	default:
		return &catalog.TransportError{Op: "update", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
}

// Delete removes the book with the given ID. A 404 is treated as
// success: the record is gone either way (json-server behavior).
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.send(ctx, http.MethodDelete, c.baseURL+"/"+id, nil)
	if err != nil {
		return &catalog.TransportError{Op: "delete", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return &catalog.TransportError{Op: "delete", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	return nil
}

// DecrementStock reads the current quantity, then PATCHes the clamped
// value. A book deleted since the bill was composed is skipped silently.
// Read-then-write is not atomic across actors; see the concurrency notes
// in the billing package.
func (c *Client) DecrementStock(ctx context.Context, id string, delta int) error {
	resp, err := c.send(ctx, http.MethodGet, c.baseURL+"/"+id, nil)
	if err != nil {
		return &catalog.TransportError{Op: "decrement", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return &catalog.TransportError{Op: "decrement", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var book models.Book
	if err := json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return &catalog.TransportError{Op: "decrement", Err: err}
	}

	next := book.Quantity - delta
	if next < 0 {
		next = 0
	}

	patch, err := c.send(ctx, http.MethodPatch, c.baseURL+"/"+id, map[string]int{"quantity": next})
	if err != nil {
		return &catalog.TransportError{Op: "decrement", Err: err}
	}
	defer patch.Body.Close()

	if patch.StatusCode == http.StatusNotFound {
		return nil
	}
	if patch.StatusCode != http.StatusOK {
		return &catalog.TransportError{Op: "decrement", Err: fmt.Errorf("unexpected status %d", patch.StatusCode)}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, url string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}
