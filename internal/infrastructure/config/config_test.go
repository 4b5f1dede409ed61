package config_test

import (
	"testing"
	"time"

	"github.com/iho/agencyledger/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADVANCE_TOLERANCE", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	tolerance, err := cfg.Tolerance()
	if err != nil || !tolerance.IsZero() {
		t.Fatalf("expected zero tolerance by default, got %s (%v)", tolerance, err)
	}

	if cfg.RunMigrations {
		t.Fatalf("expected migrations to be off by default")
	}

	if cfg.ReportCacheTTL != time.Minute {
		t.Fatalf("expected 1m report cache TTL, got %s", cfg.ReportCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("ADVANCE_TOLERANCE", "0.50")
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("RATE_LIMIT_RPS", "5")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	tolerance, err := cfg.Tolerance()
	if err != nil || tolerance.String() != "0.5" {
		t.Fatalf("expected tolerance 0.5, got %s (%v)", tolerance, err)
	}

	if !cfg.RunMigrations || cfg.RateLimitRPS != 5 {
		t.Fatalf("expected overrides, got migrations=%v rps=%v", cfg.RunMigrations, cfg.RateLimitRPS)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"duration", "HTTP_READ_TIMEOUT", "not-a-duration"},
		{"tolerance", "ADVANCE_TOLERANCE", "lots"},
		{"negative tolerance", "ADVANCE_TOLERANCE", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := config.Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
