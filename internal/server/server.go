// Package server exposes the HTTP API: catalog CRUD, billing sessions,
// bill archive, auth and metrics.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ritwikm/bookbill/internal/auth"
	"github.com/ritwikm/bookbill/internal/invoice"
	"github.com/ritwikm/bookbill/internal/middleware"
	"github.com/ritwikm/bookbill/internal/service"
	"github.com/ritwikm/bookbill/internal/storage"
)

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	catalogSvc *service.CatalogService
	billingSvc *service.BillingService
	authSvc    *service.AuthService
	archive    storage.BillArchive
	renderer   invoice.Renderer
	jwt        *auth.JWTManager
}

// New creates the server.
func New(
	catalogSvc *service.CatalogService,
	billingSvc *service.BillingService,
	authSvc *service.AuthService,
	archive storage.BillArchive,
	renderer invoice.Renderer,
	jwt *auth.JWTManager,
) *Server {
	return &Server{
		catalogSvc: catalogSvc,
		billingSvc: billingSvc,
		authSvc:    authSvc,
		archive:    archive,
		renderer:   renderer,
		jwt:        jwt,
	}
}

// Router builds the route table. Reads are open; every mutation sits
// behind clerk auth.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	api.HandleFunc("/inventory", s.handleListBooks).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.RequireAuth(s.jwt))

	protected.HandleFunc("/inventory", s.handleAddBook).Methods(http.MethodPost)
	protected.HandleFunc("/inventory/{id}", s.handleUpdateBook).Methods(http.MethodPut)
	protected.HandleFunc("/inventory/{id}", s.handleDecrementStock).Methods(http.MethodPatch)
	protected.HandleFunc("/inventory/{id}", s.handleDeleteBook).Methods(http.MethodDelete)

	protected.HandleFunc("/billing/sessions", s.handleOpenSession).Methods(http.MethodPost)
	protected.HandleFunc("/billing/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	protected.HandleFunc("/billing/sessions/{id}", s.handleAbandonSession).Methods(http.MethodDelete)
	protected.HandleFunc("/billing/sessions/{id}/items", s.handleSelectBook).Methods(http.MethodPost)
	protected.HandleFunc("/billing/sessions/{id}/items/{bookId}", s.handleSetQuantity).Methods(http.MethodPut)
	protected.HandleFunc("/billing/sessions/{id}/items/{bookId}", s.handleRemoveItem).Methods(http.MethodDelete)
	protected.HandleFunc("/billing/sessions/{id}/discount", s.handleSetDiscount).Methods(http.MethodPut)
	protected.HandleFunc("/billing/sessions/{id}/commit", s.handleCommit).Methods(http.MethodPost)

	protected.HandleFunc("/bills", s.handleListBills).Methods(http.MethodGet)
	protected.HandleFunc("/bills/{number}", s.handleGetBill).Methods(http.MethodGet)
	protected.HandleFunc("/bills/{number}/invoice", s.handleDownloadInvoice).Methods(http.MethodGet)

	return r
}
