package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	RedisURL           string
	TaxServiceURL      string
	TaxRateDefaultBps  int
	TaxRateCacheTTL    time.Duration
	TaxLookupTimeout   time.Duration
	TaxLookupAttempts  int
	CurrencyCode       string
	CORSAllowedOrigins []string
	RateLimitWindow    time.Duration
	RateLimitMax       int
}

// Load reads configuration from environment variables and optional .env files.
// Every field has a default: the service runs self-contained with a static
// rate table when neither TAX_SERVICE_URL nor REDIS_URL is set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		RedisURL:           strings.TrimSpace(k.String("REDIS_URL")),
		TaxServiceURL:      strings.TrimSpace(k.String("TAX_SERVICE_URL")),
		TaxRateDefaultBps:  parseInt(k.String("TAX_RATE_DEFAULT_BPS"), 800),
		TaxRateCacheTTL:    parseDuration(k.String("TAX_RATE_CACHE_TTL"), "15m"),
		TaxLookupTimeout:   parseDuration(k.String("TAX_LOOKUP_TIMEOUT"), "2s"),
		TaxLookupAttempts:  parseInt(k.String("TAX_LOOKUP_ATTEMPTS"), 3),
		CurrencyCode:       valueOrDefault(k.String("CURRENCY_CODE"), "USD"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		RateLimitWindow:    parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		RateLimitMax:       parseInt(k.String("RATE_LIMIT_MAX"), 120),
	}

	if cfg.TaxRateDefaultBps < 0 {
		cfg.TaxRateDefaultBps = 0
	}

	return cfg, nil
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return parsed
}
