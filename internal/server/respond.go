package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ritwikm/bookbill/internal/auth"
	"github.com/ritwikm/bookbill/internal/billing"
	"github.com/ritwikm/bookbill/internal/catalog"
	"github.com/ritwikm/bookbill/internal/service"
	"github.com/ritwikm/bookbill/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps the domain error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	var transport *catalog.TransportError
	switch {
	case errors.Is(err, billing.ErrEmptyBill):
		return http.StatusUnprocessableEntity
	case errors.Is(err, billing.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, storage.ErrDuplicateBill):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, storage.ErrBillNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrEmailExists):
		return http.StatusBadRequest
	case errors.As(err, &transport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}
