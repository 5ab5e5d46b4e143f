package pricing

import "context"

// Summary aggregates the computed pricing components for one order.
type Summary struct {
	Subtotal  Money
	Discounts Money
	Delivery  Money
	Tax       Money
	Total     Money
}

// Total prices the order under the resolved context:
//
//	total = max(0, subtotal - discounts + delivery + tax)
//
// The clamp at zero is the only place a negative aggregate is corrected;
// individual stages never return negative amounts for well-formed input.
func (e Engine) Total(ctx context.Context, order Order, qctx Context) (Summary, error) {
	profile := ResolveProfile(order, qctx)
	delivery := ResolveDelivery(order, qctx)
	coupon := ResolveCoupon(order, qctx)

	subtotal := Subtotal(order)
	discounts := Discounts(order, profile, coupon)
	fee := DeliveryFee(order, delivery, profile)
	tax, err := e.Tax(ctx, order)
	if err != nil {
		return Summary{}, err
	}

	total := subtotal - discounts + fee + tax
	if total < 0 {
		total = 0
	}
	return Summary{
		Subtotal:  subtotal,
		Discounts: discounts,
		Delivery:  fee,
		Tax:       tax,
		Total:     total,
	}, nil
}
