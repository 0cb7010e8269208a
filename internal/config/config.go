// Package config loads application settings from the environment once, at
// startup. Components receive the parts they need explicitly; nothing reads
// settings ad hoc at call time.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds every tunable the application reads from the environment.
type Settings struct {
	// APIKey authenticates calls to the remote verification service.
	// Optional: without it, cache hits still work and everything else
	// answers ServiceUnavailable.
	APIKey string

	// FreshnessWindow is how long cached verification records are trusted.
	FreshnessWindow time.Duration

	// Per-feature enable flags, consulted by the submission gates before
	// the orchestrator is ever called.
	EnableComments bool
	EnableCheckout bool
	EnableForms    bool

	// DNSServer optionally overrides the system resolver ("host:port").
	DNSServer string

	// ListenAddr is the HTTP server bind address.
	ListenAddr string

	// Persistence backend selection.
	FilePath       string
	DynamoTable    string
	DynamoEndpoint string
	RedisAddr      string
	RedisPassword  string
}

// Load reads settings from the environment. A .env file in the working
// directory is honored when present; real environment variables win.
func Load() (*Settings, error) {
	// Ignore a missing .env file, it is a development convenience.
	_ = godotenv.Load()

	s := &Settings{
		APIKey:          os.Getenv("MAILVET_API_KEY"),
		FreshnessWindow: 30 * 24 * time.Hour,
		EnableComments:  envBool("MAILVET_ENABLE_COMMENTS", true),
		EnableCheckout:  envBool("MAILVET_ENABLE_CHECKOUT", true),
		EnableForms:     envBool("MAILVET_ENABLE_FORMS", true),
		DNSServer:       os.Getenv("MAILVET_DNS_SERVER"),
		ListenAddr:      envOrDefault("MAILVET_LISTEN_ADDR", ":8080"),
		FilePath:        os.Getenv("MAILVET_STORE_FILE"),
		DynamoTable:     os.Getenv("MAILVET_DYNAMO_TABLE"),
		DynamoEndpoint:  os.Getenv("MAILVET_DYNAMO_ENDPOINT"),
		RedisAddr:       os.Getenv("MAILVET_REDIS_ADDR"),
		RedisPassword:   os.Getenv("MAILVET_REDIS_PASSWORD"),
	}

	if windowStr := os.Getenv("MAILVET_FRESHNESS_WINDOW"); windowStr != "" {
		window, err := time.ParseDuration(windowStr)
		if err != nil {
			return nil, fmt.Errorf("invalid MAILVET_FRESHNESS_WINDOW %q: %w", windowStr, err)
		}
		if window <= 0 {
			return nil, fmt.Errorf("MAILVET_FRESHNESS_WINDOW must be positive, got %q", windowStr)
		}
		s.FreshnessWindow = window
	}

	return s, nil
}

// envBool parses a boolean flag, treating "yes"/"true"/"1" as true.
func envBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	switch value {
	case "":
		return defaultValue
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}

// envOrDefault returns environment variable value or default if not set.
func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
