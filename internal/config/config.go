// Package config reads app configuration from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/workie-app/workie/internal/store"
	"github.com/workie-app/workie/internal/workie"
)

// Config holds all configuration for the application.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string
	// WeeklyLimit is the weekly hour cap enforced on new logs.
	WeeklyLimit float64
	// Currency is the symbol used for fresh profiles.
	Currency string
}

// Load reads configuration from a .env file (if present) and the
// environment, falling back to defaults.
func Load() (*Config, error) {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	dbPath := os.Getenv("WORKIE_DB")
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve default db path: %w", err)
		}
		dbPath = p
	}

	limit := workie.DefaultWeeklyLimit
	if v := os.Getenv("WORKIE_WEEKLY_LIMIT"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid WORKIE_WEEKLY_LIMIT %q: must be a positive number", v)
		}
		limit = parsed
	}

	currency := getEnv("WORKIE_CURRENCY", "£")

	return &Config{
		DBPath:      dbPath,
		WeeklyLimit: limit,
		Currency:    currency,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
