package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if !cfg.IsDev() {
		t.Error("IsDev should be true by default")
	}
	if cfg.CategoryTTL != 2*time.Hour {
		t.Errorf("CategoryTTL = %v, want 2h", cfg.CategoryTTL)
	}
	if cfg.ListingTTL != 5*time.Minute {
		t.Errorf("ListingTTL = %v, want 5m", cfg.ListingTTL)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d",
	}
	want := "postgres://u:p@h:5432/d?sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestProductionRefusesDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Error("Load should fail in production with default POSTGRES_PASSWORD")
	}

	t.Setenv("POSTGRES_PASSWORD", "real-password")
	if _, err := Load(); err == nil {
		t.Error("Load should fail in production with default JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "real-secret")
	if _, err := Load(); err != nil {
		t.Errorf("Load should succeed with real secrets: %v", err)
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("CACHE_TTL_PRODUCT", "90")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ProductTTL != 90*time.Second {
		t.Errorf("ProductTTL = %v, want 90s", cfg.ProductTTL)
	}

	t.Setenv("CACHE_TTL_PRODUCT", "not-a-number")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ProductTTL != time.Hour {
		t.Errorf("ProductTTL = %v, want fallback 1h", cfg.ProductTTL)
	}
}
