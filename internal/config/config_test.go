package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("unexpected default base URL: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("unexpected default timeout: %v", cfg.API.Timeout)
	}
	if cfg.Session.Backend != "file" {
		t.Errorf("unexpected default session backend: %s", cfg.Session.Backend)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("unexpected logging defaults: %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MUSEGATE_API_BASE_URL", "https://museum.example.com")
	t.Setenv("MUSEGATE_HTTP_TIMEOUT_MS", "2500")
	t.Setenv("MUSEGATE_SESSION_BACKEND", "keyring")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "https://museum.example.com" {
		t.Errorf("base URL override not applied: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 2500*time.Millisecond {
		t.Errorf("timeout override not applied: %v", cfg.API.Timeout)
	}
	if cfg.Session.Backend != "keyring" {
		t.Errorf("session backend override not applied: %s", cfg.Session.Backend)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("MUSEGATE_HTTP_TIMEOUT_MS", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-numeric timeout")
	}
}

func TestLoad_InvalidSessionBackend(t *testing.T) {
	t.Setenv("MUSEGATE_SESSION_BACKEND", "clay-tablet")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown session backend")
	}
}
