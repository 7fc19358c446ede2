// Package config loads and validates environment variables at startup.
// Fail-fast: without a usable store credential the process exits.
package config

import (
	"fmt"
	"os"
)

// Config holds all runtime configuration for the tracker.
type Config struct {
	Port    string
	GinMode string

	// Remote mode: the Google spreadsheet to open and the service-account
	// credential to open it with. CredentialsJSON (the raw key) wins over
	// CredentialsFile.
	SpreadsheetID   string
	CredentialsJSON string
	CredentialsFile string

	// Local mode: SQLite file used when no spreadsheet is configured.
	LocalDBPath string
}

// RemoteStore reports whether the Google Sheets backend is configured.
func (c *Config) RemoteStore() bool {
	return c.SpreadsheetID != ""
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            os.Getenv("PORT"),
		GinMode:         os.Getenv("GIN_MODE"),
		SpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
		CredentialsJSON: os.Getenv("GCP_SERVICE_ACCOUNT_JSON"),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		LocalDBPath:     os.Getenv("LOCAL_DB_PATH"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.RemoteStore() {
		if cfg.CredentialsJSON == "" && cfg.CredentialsFile == "" {
			return nil, fmt.Errorf("SHEETS_SPREADSHEET_ID is set but neither GCP_SERVICE_ACCOUNT_JSON nor GOOGLE_APPLICATION_CREDENTIALS is")
		}
		if cfg.CredentialsJSON == "" {
			if _, err := os.Stat(cfg.CredentialsFile); err != nil {
				return nil, fmt.Errorf("credentials file %s not usable: %w", cfg.CredentialsFile, err)
			}
		}
		return cfg, nil
	}

	if cfg.LocalDBPath == "" {
		cfg.LocalDBPath = "istakip.db"
	}
	return cfg, nil
}
