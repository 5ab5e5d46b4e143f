package pricing

// Add-on unit prices in cents. Add-ons are priced per pack of the parent
// item, so each one is multiplied by the item quantity. Unknown codes
// contribute nothing.
var addOnPrices = map[AddOn]Money{
	AddOnSourCream:  99,
	AddOnFriedOnion: 149,
	AddOnBaconBits:  199,
}

// Subtotal sums line totals and add-on costs before any discount. An order
// with no items yields zero.
func Subtotal(order Order) Money {
	var total Money
	for _, it := range order.Items {
		if it.Qty <= 0 {
			continue
		}
		total += it.ItemTotal()
		for _, addOn := range it.AddOns {
			total += addOnPrices[addOn] * Money(it.Qty)
		}
	}
	return total
}
