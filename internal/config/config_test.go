package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadFailsWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("expected default session ttl of 24h, got %v", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "token" {
		t.Fatalf("expected default cookie name 'token', got %q", cfg.Session.CookieName)
	}
	if cfg.Database.URL == "" {
		t.Fatalf("expected database URL to be derived from parts")
	}
	if cfg.IsProduction() {
		t.Fatalf("default environment must not be production")
	}
}

func TestLoadDurationFromPlainSeconds(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Context.RequestTimeout != 7*time.Second {
		t.Fatalf("expected 7s request timeout, got %v", cfg.Context.RequestTimeout)
	}
}
