package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// RateSource supplies the sales-tax rate for an item kind. Implementations
// must be pure per kind and safe for concurrent use; resilience around a
// remote source belongs to the implementation, not to this package.
type RateSource interface {
	Rate(ctx context.Context, kind string) (float64, error)
}

// Engine binds the pure pricing stages to the external tax-rate source.
// The zero value is unusable for Tax and Total; construct it with a source.
type Engine struct {
	Rates RateSource
}

// Tax sums tax over hot items only. Each hot line contributes the floor of
// its line total times the looked-up rate; frozen items are exempt. The
// delivery fee is never part of the tax base. A lookup failure aborts the
// stage and propagates to the caller.
func (e Engine) Tax(ctx context.Context, order Order) (Money, error) {
	var total Money
	for _, it := range order.Items {
		if it.Qty <= 0 || it.Kind != KindHot {
			continue
		}
		if e.Rates == nil {
			return 0, errors.New("pricing: rate source not configured")
		}
		rate, err := e.Rates.Rate(ctx, it.Kind)
		if err != nil {
			return 0, fmt.Errorf("tax rate lookup: %w", err)
		}
		total += Money(math.Floor(float64(it.ItemTotal()) * rate))
	}
	return total, nil
}
