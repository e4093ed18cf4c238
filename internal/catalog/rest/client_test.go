package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ritwikm/bookbill/internal/catalog"
	"github.com/ritwikm/bookbill/internal/models"
)

// fakeInventory is a minimal json-server-like /inventory backend.
type fakeInventory struct {
	mu    sync.Mutex
	books map[string]models.Book
	next  int
}

func newFakeInventory(books ...models.Book) *fakeInventory {
	f := &fakeInventory{books: make(map[string]models.Book)}
	for _, b := range books {
		f.books[b.ID] = b
	}
	return f
}

func (f *fakeInventory) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		id := strings.TrimPrefix(r.URL.Path, "/inventory")
		id = strings.TrimPrefix(id, "/")

		switch {
		case id == "" && r.Method == http.MethodGet:
			out := make([]models.Book, 0, len(f.books))
			for _, b := range f.books {
				out = append(out, b)
			}
			json.NewEncoder(w).Encode(out)

		case id == "" && r.Method == http.MethodPost:
			var b models.Book
			json.NewDecoder(r.Body).Decode(&b)
			f.next++
			b.ID = fmt.Sprintf("book-%d", f.next)
			f.books[b.ID] = b
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(b)

		default:
			b, ok := f.books[id]
			if !ok {
				http.NotFound(w, r)
				return
			}
			switch r.Method {
			case http.MethodGet:
				json.NewEncoder(w).Encode(b)
			case http.MethodPut:
				var in models.Book
				json.NewDecoder(r.Body).Decode(&in)
				in.ID = id
				f.books[id] = in
				json.NewEncoder(w).Encode(in)
			case http.MethodPatch:
				var patch struct {
					Quantity *int `json:"quantity"`
				}
				json.NewDecoder(r.Body).Decode(&patch)
				if patch.Quantity != nil {
					b.Quantity = *patch.Quantity
					f.books[id] = b
				}
				json.NewEncoder(w).Encode(b)
			case http.MethodDelete:
				delete(f.books, id)
				json.NewEncoder(w).Encode(map[string]any{})
			}
		}
	})
}

func newTestClient(t *testing.T, inv *fakeInventory) *Client {
	t.Helper()
	srv := httptest.NewServer(inv.handler())
	t.Cleanup(srv.Close)
	return New(srv.URL + "/inventory")
}

func TestClientListAll(t *testing.T) {
	inv := newFakeInventory(models.Book{ID: "A", BookName: "Dune", Price: 100, Quantity: 10})
	client := newTestClient(t, inv)

	books, err := client.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(books) != 1 || books[0].ID != "A" {
		t.Errorf("books = %+v", books)
	}
}

func TestClientCreateAssignsID(t *testing.T) {
	client := newTestClient(t, newFakeInventory())

	book := &models.Book{BookName: "Hyperion", Price: 60, Quantity: 4}
	if err := client.Create(context.Background(), book); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if book.ID == "" {
		t.Error("expected remote-assigned ID to be copied back")
	}
}

func TestClientUpdate(t *testing.T) {
	inv := newFakeInventory(models.Book{ID: "A", BookName: "Dune", Price: 100, Quantity: 10})
	client := newTestClient(t, inv)
	ctx := context.Background()

	if err := client.Update(ctx, "A", models.Book{BookName: "Dune Messiah", Price: 90, Quantity: 7}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := inv.books["A"]; got.BookName != "Dune Messiah" || got.Quantity != 7 {
		t.Errorf("book = %+v", got)
	}

	if err := client.Update(ctx, "missing", models.Book{BookName: "x"}); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestClientDelete(t *testing.T) {
	inv := newFakeInventory(models.Book{ID: "A", BookName: "Dune"})
	client := newTestClient(t, inv)
	ctx := context.Background()

	if err := client.Delete(ctx, "A"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	// Missing id deletes as a no-op success, like the original backend.
	if err := client.Delete(ctx, "A"); err != nil {
		t.Errorf("second delete = %v, want nil", err)
	}
}

func TestClientDecrementStock(t *testing.T) {
	t.Run("clamps at zero", func(t *testing.T) {
		inv := newFakeInventory(models.Book{ID: "A", BookName: "Dune", Quantity: 3})
		client := newTestClient(t, inv)

		if err := client.DecrementStock(context.Background(), "A", 5); err != nil {
			t.Fatalf("DecrementStock failed: %v", err)
		}
		if got := inv.books["A"].Quantity; got != 0 {
			t.Errorf("quantity = %d, want 0", got)
		}
	})

	t.Run("unknown id is silently skipped", func(t *testing.T) {
		client := newTestClient(t, newFakeInventory())
		if err := client.DecrementStock(context.Background(), "gone", 2); err != nil {
			t.Errorf("err = %v, want nil", err)
		}
	})
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	client := New(srv.URL + "/inventory")

	_, err := client.ListAll(context.Background())
	var transport *catalog.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("err = %v, want TransportError", err)
	}
}
