// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings. Every field can be overridden with
// a BOOKBILL_-prefixed environment variable, e.g. BOOKBILL_PORT=9090.
type Config struct {
	// Port is the HTTP listen port.
	Port int `default:"8080"`

	// DBPath is the SQLite database file.
	DBPath string `envconfig:"DB_PATH" default:"./data/bookbill.db"`

	// CatalogURL, when set, points billing at a remote inventory API
	// (e.g. "http://localhost:3001/inventory") instead of the embedded
	// SQLite catalog.
	CatalogURL string `envconfig:"CATALOG_URL"`

	// JWTSecret signs clerk session tokens.
	JWTSecret string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`

	// TokenTTL is how long clerk sessions remain valid.
	TokenTTL time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// Invoice header lines printed at the top of every bill.
	StoreName    string `envconfig:"STORE_NAME" default:"Bookbill Stores"`
	StoreAddress string `envconfig:"STORE_ADDRESS" default:"123 Main Street, City, State - 123456"`
	StorePhone   string `envconfig:"STORE_PHONE" default:"Phone: +91 1234567890"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("bookbill", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
