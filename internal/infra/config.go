package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"server/internal/billing"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	// BillingEnabled selects the pricing model for the whole process. It is
	// read exactly once here; mid-session flips are not supported.
	BillingEnabled bool
	PerUserRate    float64
	StorageFreeGB  float64
	StorageRateGB  float64
	FleetMapRate   float64

	GeoIPDBPath   string
	DefaultLocale string
	CORSOrigins   []string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		BillingEnabled:   getEnvBool("BILLING_ENABLED", false),
		PerUserRate:      getEnvFloat("BILLING_PER_USER_RATE", 10),
		StorageFreeGB:    getEnvFloat("BILLING_STORAGE_FREE_GB", 5),
		StorageRateGB:    getEnvFloat("BILLING_STORAGE_RATE_GB", 0.10),
		FleetMapRate:     getEnvFloat("BILLING_FLEET_MAP_RATE", 10),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:    getEnv("DEFAULT_LOCALE", "en"),
		CORSOrigins:      getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.PerUserRate < 0 || cfg.StorageFreeGB < 0 || cfg.StorageRateGB < 0 || cfg.FleetMapRate < 0 {
		return nil, fmt.Errorf("billing rates must not be negative")
	}

	return cfg, nil
}

// PricingMode maps the billing flag to the engine's mode.
func (c *Config) PricingMode() billing.PricingMode {
	if c.BillingEnabled {
		return billing.ModeMetered
	}
	return billing.ModeFree
}

// Rates builds the engine rates from configuration.
func (c *Config) Rates() billing.Rates {
	return billing.Rates{
		PerUserMonthly:      c.PerUserRate,
		StorageFreeGB:       c.StorageFreeGB,
		StorageOveragePerGB: c.StorageRateGB,
		FleetMapMonthly:     c.FleetMapRate,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
