package pricing

// Free-delivery thresholds in cents by tier. The threshold is strict: the
// discounted subtotal must exceed it, equality still pays the fee.
var tierFreeDeliveryThreshold = map[string]Money{
	TierGuest:   5000,
	TierRegular: 4000,
	TierVIP:     3000,
}

// Base fees accrue once per line item, not once per order: a five-item
// order pays five times the zone fee. Rush adds a flat surcharge that
// survives free delivery.
const (
	perItemZoneFeeLocal Money = 399
	perItemZoneFeeOuter Money = 699
	rushSurcharge       Money = 299
)

// DeliveryFee determines the delivery fee for the order. Free-delivery
// eligibility is tested against the items-only subtotal net of volume
// discounts; coupon discounts and add-on costs never affect the
// threshold. DistanceKm is not consulted.
func DeliveryFee(order Order, delivery DeliveryInfo, profile CustomerProfile) Money {
	var discounted Money
	for _, it := range order.Items {
		if it.Qty <= 0 {
			continue
		}
		discounted += it.ItemTotal()
	}
	discounted -= VolumeDiscount(order.Items, profile.Tier)

	threshold, ok := tierFreeDeliveryThreshold[profile.Tier]
	if !ok {
		threshold = tierFreeDeliveryThreshold[TierGuest]
	}
	if discounted > threshold {
		if delivery.Rush {
			return rushSurcharge
		}
		return 0
	}

	var perItem Money
	switch delivery.Zone {
	case ZoneLocal:
		perItem = perItemZoneFeeLocal
	case ZoneOuter:
		perItem = perItemZoneFeeOuter
	}
	fee := perItem * Money(len(order.Items))
	if delivery.Rush {
		fee += rushSurcharge
	}
	return fee
}
