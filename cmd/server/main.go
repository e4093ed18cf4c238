package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/ritwikm/bookbill/internal/auth"
	"github.com/ritwikm/bookbill/internal/catalog"
	"github.com/ritwikm/bookbill/internal/catalog/rest"
	"github.com/ritwikm/bookbill/internal/config"
	"github.com/ritwikm/bookbill/internal/invoice"
	"github.com/ritwikm/bookbill/internal/server"
	"github.com/ritwikm/bookbill/internal/service"
	"github.com/ritwikm/bookbill/internal/storage/sqlite"
	"github.com/ritwikm/bookbill/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	// The embedded SQLite catalog is the default; a remote inventory
	// API takes over when CATALOG_URL is set.
	var cat catalog.Store = store
	if cfg.CatalogURL != "" {
		cat = rest.New(cfg.CatalogURL)
		slog.Info("Using remote catalog", "url", cfg.CatalogURL)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager)
	catalogSvc := service.NewCatalogService(cat)
	billingSvc := service.NewBillingService(cat, store)
	renderer := invoice.NewTextRenderer(cfg.StoreName, cfg.StoreAddress, cfg.StorePhone)

	srv := server.New(catalogSvc, billingSvc, authSvc, store, renderer, jwtManager)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(srv.Router())

	// HTTP/2 without TLS for local clients
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
