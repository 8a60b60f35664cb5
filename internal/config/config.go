package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the process-level settings resolved from the environment.
type Config struct {
	// DataDir holds the session file and, in demo mode, the JSON
	// collections. Defaults to ~/.cronosheet.
	DataDir string

	// DBPath is the SQLite database location. Ignored in demo mode.
	DBPath string

	// Demo forces the JSON-file store even when a database is reachable.
	Demo bool

	// LogUseCases mirrors service telemetry to stderr.
	LogUseCases bool
}

// Load reads configuration from a .env file (if present) and the
// environment, falling back to defaults for any unset value.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config

	cfg.DataDir = os.Getenv("CRONOSHEET_DATA")
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".cronosheet")
	}

	cfg.DBPath = os.Getenv("CRONOSHEET_DB")
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "cronosheet.db")
	}

	if v := os.Getenv("CRONOSHEET_DEMO"); v != "" {
		cfg.Demo, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CRONOSHEET_LOG"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}

	return cfg, nil
}
