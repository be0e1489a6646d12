package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the musegate client
type Config struct {
	// API backend configuration
	API APIConfig

	// Session storage configuration
	Session SessionConfig

	// Logging Configuration
	Logging LoggingConfig
}

// APIConfig holds the remote backend configuration
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig holds session storage configuration
type SessionConfig struct {
	Backend string // file, keyring
	Path    string // session file path (file backend only, empty = default)
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	baseURL := os.Getenv("MUSEGATE_API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Overall request timeout. The backend treats 10s as a tunable default,
	// not a contract.
	timeout := 10 * time.Second
	if raw := os.Getenv("MUSEGATE_HTTP_TIMEOUT_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid MUSEGATE_HTTP_TIMEOUT_MS value %q", raw)
		}
		timeout = time.Duration(ms) * time.Millisecond
	}

	sessionBackend := os.Getenv("MUSEGATE_SESSION_BACKEND")
	if sessionBackend == "" {
		sessionBackend = "file"
	}
	if sessionBackend != "file" && sessionBackend != "keyring" {
		return nil, fmt.Errorf("invalid MUSEGATE_SESSION_BACKEND value %q (want file or keyring)", sessionBackend)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		API: APIConfig{
			BaseURL: baseURL,
			Timeout: timeout,
		},
		Session: SessionConfig{
			Backend: sessionBackend,
			Path:    os.Getenv("MUSEGATE_SESSION_PATH"),
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
