// Package taxrate provides implementations of the pricing rate source:
// a static in-memory table, an HTTP client for a remote rate service and
// a Redis-backed caching decorator.
package taxrate

import (
	"context"

	"github.com/noah-isme/pierogigo/internal/pricing"
)

// DefaultHotRateBps is the standard sales-tax rate applied to hot items,
// in basis points.
const DefaultHotRateBps = 800

// Static serves rates from a fixed table. Lookups never fail; kinds
// absent from the table are rated zero, which keeps frozen (and unknown)
// kinds exempt.
type Static struct {
	Rates map[string]float64
}

// NewStatic builds a static source with the standard rate table.
func NewStatic(hotBps int) Static {
	if hotBps < 0 {
		hotBps = 0
	}
	return Static{Rates: map[string]float64{
		pricing.KindHot: float64(hotBps) / 10000,
	}}
}

// Rate implements pricing.RateSource.
func (s Static) Rate(_ context.Context, kind string) (float64, error) {
	return s.Rates[kind], nil
}
