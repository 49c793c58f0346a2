package infra

import (
	"testing"

	"server/internal/billing"
)

func TestLoadConfigDefaultsToFreeMode(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("BILLING_ENABLED", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.BillingEnabled {
		t.Fatal("expected billing to default to disabled")
	}
	if got := cfg.PricingMode(); got != billing.ModeFree {
		t.Fatalf("PricingMode mismatch: got %q want %q", got, billing.ModeFree)
	}
}

func TestLoadConfigMeteredModeAndRates(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("BILLING_ENABLED", "true")
	t.Setenv("BILLING_PER_USER_RATE", "12.5")
	t.Setenv("BILLING_STORAGE_FREE_GB", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got := cfg.PricingMode(); got != billing.ModeMetered {
		t.Fatalf("PricingMode mismatch: got %q want %q", got, billing.ModeMetered)
	}
	rates := cfg.Rates()
	if rates.PerUserMonthly != 12.5 {
		t.Fatalf("PerUserMonthly mismatch: got %v want 12.5", rates.PerUserMonthly)
	}
	if rates.StorageFreeGB != 5 {
		t.Fatalf("StorageFreeGB default mismatch: got %v want 5", rates.StorageFreeGB)
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoadConfigRejectsNegativeRates(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("BILLING_PER_USER_RATE", "-1")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for negative rate")
	}
}

func TestLoadConfigCORSOriginsList(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://app.example.com" {
		t.Fatalf("CORSOrigins mismatch: %#v", cfg.CORSOrigins)
	}
}
