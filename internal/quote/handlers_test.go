package quote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pierogigo/internal/pricing"
	"github.com/noah-isme/pierogigo/internal/taxrate"
)

type failingRates struct{}

func (failingRates) Rate(ctx context.Context, kind string) (float64, error) {
	return 0, errors.New("rate service unavailable")
}

func newTestHandler() *Handler {
	return NewHandler(pricing.Engine{Rates: taxrate.NewStatic(taxrate.DefaultHotRateBps)}, "USD")
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestQuoteFullBreakdown(t *testing.T) {
	body := `{
		"order": {
			"id": "ord-42",
			"items": [{"sku":"PG-POT","kind":"hot","qty":12,"unitPriceCents":1000}],
			"delivery": {"zone":"local","rush":false},
			"customer": {"tier":"guest"}
		}
	}`
	rec := postJSON(t, newTestHandler().Quote, body)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	require.Equal(t, "ord-42", data["orderId"])
	require.Equal(t, "USD", data["currency"])
	require.NotEmpty(t, data["quoteId"])
	require.Equal(t, float64(12000), data["subtotal"])
	require.Equal(t, float64(600), data["discounts"])
	require.Equal(t, float64(0), data["delivery"])
	require.Equal(t, float64(960), data["tax"])
	require.Equal(t, float64(12360), data["total"])
}

func TestQuoteContextOverrides(t *testing.T) {
	body := `{
		"order": {
			"items": [{"kind":"frozen","qty":6,"unitPriceCents":500}],
			"delivery": {"zone":"local"}
		},
		"context": {
			"delivery": {"zone":"outer","rush":true}
		}
	}`
	rec := postJSON(t, newTestHandler().Quote, body)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	require.Equal(t, float64(998), data["delivery"])
	require.Equal(t, float64(3998), data["total"])
}

func TestQuoteMalformedJSON(t *testing.T) {
	rec := postJSON(t, newTestHandler().Quote, `{"order":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "BAD_REQUEST")
}

func TestQuoteValidation(t *testing.T) {
	body := `{"order": {"items": [{"kind":"hot","qty":0,"unitPriceCents":-5}]}}`
	rec := postJSON(t, newTestHandler().Quote, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Fields []string `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	require.Len(t, envelope.Error.Details.Fields, 2)
}

func TestQuoteRateLookupFailure(t *testing.T) {
	h := NewHandler(pricing.Engine{Rates: failingRates{}}, "USD")
	body := `{"order": {"items": [{"kind":"hot","qty":1,"unitPriceCents":1000}]}}`
	rec := postJSON(t, h.Quote, body)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "TAX_RATE_ERROR")
}

func TestQuoteDelivery(t *testing.T) {
	body := `{
		"order": {
			"items": [
				{"kind":"frozen","qty":1,"unitPriceCents":500},
				{"kind":"frozen","qty":1,"unitPriceCents":500}
			],
			"delivery": {"zone":"outer","rush":true}
		}
	}`
	rec := postJSON(t, newTestHandler().QuoteDelivery, body)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	require.Equal(t, float64(2*699+299), data["delivery"])
	require.Equal(t, "USD", data["currency"])
}

func TestQuoteTax(t *testing.T) {
	body := `{"order": {"items": [{"kind":"hot","qty":2,"unitPriceCents":899}]}}`
	rec := postJSON(t, newTestHandler().QuoteTax, body)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	require.Equal(t, float64(143), data["tax"])
}

func TestQuoteTaxFailure(t *testing.T) {
	h := NewHandler(pricing.Engine{Rates: failingRates{}}, "USD")
	body := `{"order": {"items": [{"kind":"hot","qty":1,"unitPriceCents":1000}]}}`
	rec := postJSON(t, h.QuoteTax, body)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestResolvedLabelsArePinned(t *testing.T) {
	order := pricing.Order{Customer: &pricing.CustomerProfile{Tier: "platinum"}, Coupon: "HALF-PRICE"}
	require.Equal(t, "other", resolvedTier(order, pricing.Context{}))
	require.Equal(t, "other", couponLabel(order, pricing.Context{}))

	order = pricing.Order{}
	require.Equal(t, "guest", resolvedTier(order, pricing.Context{}))
	require.Equal(t, "none", couponLabel(order, pricing.Context{}))

	qctx := pricing.Context{Profile: &pricing.CustomerProfile{Tier: pricing.TierVIP}}
	require.Equal(t, "vip", resolvedTier(order, qctx))
}
