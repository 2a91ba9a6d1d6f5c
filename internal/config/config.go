// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the fuel logbook server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DataDir is the directory of the file-backed store. Defaults to "./data".
	// Ignored when DatabaseURL is set.
	DataDir string

	// DatabaseURL is an optional Postgres connection string. When set, the
	// key-value store uses Postgres instead of the file backend.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// HistoryLimit caps the trip history length. Oldest records are evicted
	// first. Defaults to 100.
	HistoryLimit int

	// StatsWindowDays bounds the daily-cost chart window. Defaults to 30.
	StatsWindowDays int

	// StatsDebounce is the quiet period that coalesces bursts of history
	// changes into one statistics recomputation. Defaults to 250ms.
	StatsDebounce time.Duration

	// DefaultLanguage is the language used before any setting is persisted.
	// Defaults to "pt-BR".
	DefaultLanguage string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error for values that do not parse or are out of range.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "pt-BR"),
	}

	var err error
	if cfg.HistoryLimit, err = getEnvInt("HISTORY_LIMIT", 100); err != nil {
		return Config{}, err
	}
	if cfg.StatsWindowDays, err = getEnvInt("STATS_WINDOW_DAYS", 30); err != nil {
		return Config{}, err
	}
	debounceMs, err := getEnvInt("STATS_DEBOUNCE_MS", 250)
	if err != nil {
		return Config{}, err
	}
	cfg.StatsDebounce = time.Duration(debounceMs) * time.Millisecond

	if cfg.HistoryLimit < 1 {
		return Config{}, fmt.Errorf("HISTORY_LIMIT must be at least 1, got %d", cfg.HistoryLimit)
	}
	if cfg.StatsWindowDays < 1 {
		return Config{}, fmt.Errorf("STATS_WINDOW_DAYS must be at least 1, got %d", cfg.StatsWindowDays)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt parses the named variable as an integer, using fallback when the
// variable is not set.
func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
