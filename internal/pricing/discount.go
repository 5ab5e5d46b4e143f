package pricing

// Quantity breaks that trigger volume discounts.
const (
	volumeDozenQty = 12
	volumeCaseQty  = 24
)

// volumeRates holds tier discount rates in basis points per quantity break.
type volumeRates struct {
	DozenBps Money
	CaseBps  Money
}

var tierVolumeRates = map[string]volumeRates{
	TierGuest:   {DozenBps: 500, CaseBps: 1000},
	TierRegular: {DozenBps: 800, CaseBps: 1200},
	TierVIP:     {DozenBps: 500, CaseBps: 1000},
}

// FIRST10 takes 10% off the full subtotal once it reaches the minimum spend.
const (
	first10MinSubtotal Money = 2000
	first10Bps         Money = 1000
)

// PIEROGI-BOGO pairs six-packs of the same filling and takes 50% off the
// second of each pair.
const (
	bogoQty        = 6
	bogoBps  Money = 5000
)

// VolumeDiscount returns the combined per-item volume discount for the
// items at the given tier. The delivery stage uses the same figure for
// its free-delivery threshold test, so both stages must agree on it.
func VolumeDiscount(items []OrderItem, tier string) Money {
	rates, ok := tierVolumeRates[tier]
	if !ok {
		rates = tierVolumeRates[TierGuest]
	}
	var total Money
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		switch {
		case it.Qty >= volumeCaseQty:
			total += it.ItemTotal() * rates.CaseBps / 10000
		case it.Qty >= volumeDozenQty:
			total += it.ItemTotal() * rates.DozenBps / 10000
		}
	}
	return total
}

// Discounts combines the volume discount with at most one coupon, both
// computed against pre-discount line totals. The result is clamped to
// [0, subtotal]; the clamp is an invariant guard, not an expected path.
func Discounts(order Order, profile CustomerProfile, coupon string) Money {
	subtotal := Subtotal(order)
	total := VolumeDiscount(order.Items, profile.Tier)
	total += couponDiscount(order, coupon)
	if total > subtotal {
		total = subtotal
	}
	if total < 0 {
		return 0
	}
	return total
}

// couponDiscount evaluates a single coupon code. Unrecognized codes are
// policy, not faults: they simply yield no discount.
func couponDiscount(order Order, coupon string) Money {
	switch coupon {
	case CouponFirst10:
		subtotal := Subtotal(order)
		if subtotal < first10MinSubtotal {
			return 0
		}
		return subtotal * first10Bps / 10000
	case CouponBOGO:
		return bogoDiscount(order.Items)
	default:
		return 0
	}
}

// bogoDiscount walks the items in input order, pairing consecutive
// six-packs of the same filling. The second item of each pair is
// discounted by half its own line total; an unpaired six-pack and any
// item with a different quantity get nothing. Input order is the
// observable pairing policy.
func bogoDiscount(items []OrderItem) Money {
	unpaired := make(map[string]bool)
	var total Money
	for _, it := range items {
		if it.Qty != bogoQty {
			continue
		}
		if unpaired[it.Filling] {
			total += it.ItemTotal() * bogoBps / 10000
			unpaired[it.Filling] = false
			continue
		}
		unpaired[it.Filling] = true
	}
	return total
}
