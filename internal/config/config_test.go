package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.RedisURL)
	require.Empty(t, cfg.TaxServiceURL)
	require.Equal(t, 800, cfg.TaxRateDefaultBps)
	require.Equal(t, 15*time.Minute, cfg.TaxRateCacheTTL)
	require.Equal(t, 2*time.Second, cfg.TaxLookupTimeout)
	require.Equal(t, 3, cfg.TaxLookupAttempts)
	require.Equal(t, "USD", cfg.CurrencyCode)
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
	require.Equal(t, 120, cfg.RateLimitMax)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("TAX_SERVICE_URL", "https://rates.internal")
	t.Setenv("TAX_RATE_DEFAULT_BPS", "725")
	t.Setenv("TAX_RATE_CACHE_TTL", "5m")
	t.Setenv("TAX_LOOKUP_ATTEMPTS", "5")
	t.Setenv("CURRENCY_CODE", "PLN")
	t.Setenv("RATE_LIMIT_MAX", "60")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "production", cfg.AppEnv)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	require.Equal(t, "https://rates.internal", cfg.TaxServiceURL)
	require.Equal(t, 725, cfg.TaxRateDefaultBps)
	require.Equal(t, 5*time.Minute, cfg.TaxRateCacheTTL)
	require.Equal(t, 5, cfg.TaxLookupAttempts)
	require.Equal(t, "PLN", cfg.CurrencyCode)
	require.Equal(t, 60, cfg.RateLimitMax)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("TAX_RATE_DEFAULT_BPS", "eight-hundred")
	t.Setenv("TAX_RATE_CACHE_TTL", "soon")
	t.Setenv("RATE_LIMIT_MAX", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 800, cfg.TaxRateDefaultBps)
	require.Equal(t, 15*time.Minute, cfg.TaxRateCacheTTL)
	require.Equal(t, 120, cfg.RateLimitMax)
}

func TestLoadClampsNegativeBps(t *testing.T) {
	t.Setenv("TAX_RATE_DEFAULT_BPS", "-100")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 0, cfg.TaxRateDefaultBps)
}

func TestCORSAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://pierogi.example , https://admin.pierogi.example ,")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"https://pierogi.example", "https://admin.pierogi.example"}, cfg.CORSAllowedOrigins)
}

func TestHTTPAddr(t *testing.T) {
	require.Equal(t, ":8080", (&Config{Port: "8080"}).HTTPAddr())
	require.Equal(t, ":9090", (&Config{Port: ":9090"}).HTTPAddr())
	require.Equal(t, ":8080", (&Config{}).HTTPAddr())
}
