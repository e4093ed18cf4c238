package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ritwikm/bookbill/internal/invoice"
)

func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	id := s.billingSvc.OpenSession()
	state, err := s.billingSvc.Snapshot(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.billingSvc.Snapshot(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	s.billingSvc.AbandonSession(mux.Vars(r)["id"])
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleSelectBook(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		BookID string `json:"bookId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.billingSvc.SelectBook(r.Context(), sessionID, req.BookID); err != nil {
		writeError(w, err)
		return
	}
	s.respondSession(w, sessionID)
}

func (s *Server) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.billingSvc.SetQuantity(vars["id"], vars["bookId"], req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	s.respondSession(w, vars["id"])
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.billingSvc.RemoveItem(vars["id"], vars["bookId"]); err != nil {
		writeError(w, err)
		return
	}
	s.respondSession(w, vars["id"])
}

func (s *Server) handleSetDiscount(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Enabled bool    `json:"enabled"`
		Percent float64 `json:"percent"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.billingSvc.SetDiscount(sessionID, req.Enabled, req.Percent); err != nil {
		writeError(w, err)
		return
	}
	s.respondSession(w, sessionID)
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	bill, err := s.billingSvc.Commit(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bill)
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.archive.ListBills(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	bill, err := s.archive.GetBill(r.Context(), mux.Vars(r)["number"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (s *Server) handleDownloadInvoice(w http.ResponseWriter, r *http.Request) {
	bill, err := s.archive.GetBill(r.Context(), mux.Vars(r)["number"])
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := s.renderer.Render(bill)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.Filename(bill)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

func (s *Server) respondSession(w http.ResponseWriter, sessionID string) {
	state, err := s.billingSvc.Snapshot(sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
