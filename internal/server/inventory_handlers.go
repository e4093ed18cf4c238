package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ritwikm/bookbill/internal/models"
)

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.catalogSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var book models.Book
	if !decodeBody(w, r, &book) {
		return
	}
	if book.BookName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bookName required"})
		return
	}
	if book.Price < 0 || book.Quantity < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price and quantity must not be negative"})
		return
	}

	book.ID = "" // assigned by the store
	if err := s.catalogSvc.Add(r.Context(), &book); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var book models.Book
	if !decodeBody(w, r, &book) {
		return
	}
	if book.Price < 0 || book.Quantity < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price and quantity must not be negative"})
		return
	}

	if err := s.catalogSvc.Update(r.Context(), id, book); err != nil {
		writeError(w, err)
		return
	}
	book.ID = id
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleDecrementStock(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quantity < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "quantity must not be negative"})
		return
	}

	if err := s.catalogSvc.DecrementStock(r.Context(), id, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.catalogSvc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
