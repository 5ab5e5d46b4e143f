package taxrate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/pierogigo/internal/obs"
	"github.com/noah-isme/pierogigo/internal/resilience"
)

// Client fetches rates from a remote rate service over HTTP. Outbound
// calls carry retry, per-attempt timeout and circuit-breaker protection;
// the pricing pipeline itself assumes the source is fast and synchronous.
type Client struct {
	BaseURL string
	HTTP    resilience.HTTPClient
}

// ClientConfig tunes the outbound protection applied by NewClient.
type ClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
}

// NewClient constructs a rate client with an instrumented transport and
// sensible retry defaults.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		HTTP: resilience.HTTPClient{
			Client:      &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
			Breaker:     resilience.NewBreaker(5, 0.5, 30*time.Second).WithTarget("tax-rate-service"),
			BaseBackoff: 100 * time.Millisecond,
			MaxAttempts: attempts,
			Jitter:      0.2,
			Timeout:     timeout,
		},
	}
}

type ratePayload struct {
	Kind string  `json:"kind"`
	Rate float64 `json:"rate"`
}

// Rate implements pricing.RateSource against GET {base}/v1/rates/{kind}.
func (c *Client) Rate(ctx context.Context, kind string) (float64, error) {
	if c == nil || c.BaseURL == "" {
		return 0, fmt.Errorf("taxrate: client not configured")
	}
	endpoint := c.BaseURL + "/v1/rates/" + url.PathEscape(kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(ctx, req)
	if err != nil {
		recordLookup("error")
		return 0, fmt.Errorf("taxrate: fetch %s: %w", kind, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		recordLookup("error")
		return 0, fmt.Errorf("taxrate: fetch %s: unexpected status %s", kind, resp.Status)
	}

	var payload ratePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		recordLookup("error")
		return 0, fmt.Errorf("taxrate: decode %s: %w", kind, err)
	}
	if payload.Rate < 0 || payload.Rate >= 1 {
		recordLookup("error")
		return 0, fmt.Errorf("taxrate: rate %v for %s out of range", payload.Rate, kind)
	}
	recordLookup("ok")
	return payload.Rate, nil
}

func recordLookup(result string) {
	if obs.TaxRateLookupTotal != nil {
		obs.TaxRateLookupTotal.WithLabelValues(result).Inc()
	}
}
