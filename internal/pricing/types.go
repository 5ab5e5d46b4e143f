package pricing

// Money represents a monetary value stored in integer cents.
type Money = int64

// Item kinds. Only hot items are taxable.
const (
	KindHot    = "hot"
	KindFrozen = "frozen"
)

// Customer tiers. Unrecognized tiers degrade to guest wherever a tier
// table is consulted.
const (
	TierGuest   = "guest"
	TierRegular = "regular"
	TierVIP     = "vip"
)

// Delivery zones.
const (
	ZoneLocal = "local"
	ZoneOuter = "outer"
)

// Coupon codes. At most one coupon applies per order.
const (
	CouponBOGO    = "PIEROGI-BOGO"
	CouponFirst10 = "FIRST10"
)

// AddOn identifies an extra packed with a parent item.
type AddOn string

// Known add-on codes.
const (
	AddOnSourCream  AddOn = "sour-cream"
	AddOnFriedOnion AddOn = "fried-onion"
	AddOnBaconBits  AddOn = "bacon-bits"
)

// OrderItem is a single priced line of an order.
type OrderItem struct {
	SKU            string
	Kind           string
	Title          string
	Filling        string
	Qty            int
	UnitPriceCents Money
	AddOns         []AddOn
}

// ItemTotal returns the pre-discount line total excluding add-ons.
func (it OrderItem) ItemTotal() Money {
	return it.UnitPriceCents * Money(it.Qty)
}

// DeliveryInfo describes where and how the order is delivered. DistanceKm
// is carried for upstream callers but does not affect the fee.
type DeliveryInfo struct {
	Zone       string
	Rush       bool
	DistanceKm float64
}

// CustomerProfile carries the customer classification supplied per call.
type CustomerProfile struct {
	Tier string
}

// Order is the immutable pricing input. No stage mutates it.
type Order struct {
	ID       string
	Items    []OrderItem
	Delivery *DeliveryInfo
	Customer *CustomerProfile
	Coupon   string
}

// Context optionally overrides the order-embedded profile, delivery info
// and coupon for a single quote. A nil Coupon means "not provided"; a
// pointer to the empty string explicitly clears the order's coupon.
type Context struct {
	Profile  *CustomerProfile
	Delivery *DeliveryInfo
	Coupon   *string
}

var (
	defaultProfile  = CustomerProfile{Tier: TierGuest}
	defaultDelivery = DeliveryInfo{Zone: ZoneLocal, Rush: false, DistanceKm: 1}
)

// ResolveProfile picks the profile from the context, then the order, then
// the guest default.
func ResolveProfile(order Order, qctx Context) CustomerProfile {
	if qctx.Profile != nil {
		return *qctx.Profile
	}
	if order.Customer != nil {
		return *order.Customer
	}
	return defaultProfile
}

// ResolveDelivery picks delivery info from the context, then the order,
// then the local non-rush default.
func ResolveDelivery(order Order, qctx Context) DeliveryInfo {
	if qctx.Delivery != nil {
		return *qctx.Delivery
	}
	if order.Delivery != nil {
		return *order.Delivery
	}
	return defaultDelivery
}

// ResolveCoupon picks the coupon from the context when one was provided,
// otherwise the order's coupon. Empty means no coupon.
func ResolveCoupon(order Order, qctx Context) string {
	if qctx.Coupon != nil {
		return *qctx.Coupon
	}
	return order.Coupon
}
