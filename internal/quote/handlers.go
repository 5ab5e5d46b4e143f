// Package quote exposes the HTTP surface of the pricing pipeline. The
// handlers translate wire payloads into pricing inputs, run the engine and
// render integer-cent breakdowns.
package quote

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/pierogigo/internal/common"
	"github.com/noah-isme/pierogigo/internal/obs"
	"github.com/noah-isme/pierogigo/internal/pricing"
)

// Handler serves quote endpoints.
type Handler struct {
	Engine   pricing.Engine
	Validate *validator.Validate
	Currency string
}

// NewHandler constructs a Handler with a ready validator.
func NewHandler(engine pricing.Engine, currency string) *Handler {
	if currency == "" {
		currency = "USD"
	}
	return &Handler{
		Engine:   engine,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
		Currency: currency,
	}
}

type itemPayload struct {
	SKU            string   `json:"sku"`
	Kind           string   `json:"kind"`
	Title          string   `json:"title"`
	Filling        string   `json:"filling"`
	Qty            int      `json:"qty" validate:"gte=1"`
	UnitPriceCents int64    `json:"unitPriceCents" validate:"gte=0"`
	AddOns         []string `json:"addOns"`
}

type deliveryPayload struct {
	Zone       string  `json:"zone"`
	Rush       bool    `json:"rush"`
	DistanceKm float64 `json:"distanceKm" validate:"gte=0"`
}

type profilePayload struct {
	Tier string `json:"tier"`
}

type orderPayload struct {
	ID       string           `json:"id"`
	Items    []itemPayload    `json:"items" validate:"dive"`
	Delivery *deliveryPayload `json:"delivery"`
	Customer *profilePayload  `json:"customer"`
	Coupon   *string          `json:"coupon"`
}

type contextPayload struct {
	Profile  *profilePayload  `json:"profile"`
	Delivery *deliveryPayload `json:"delivery"`
	Coupon   *string          `json:"coupon"`
}

type quoteRequest struct {
	Order   orderPayload    `json:"order"`
	Context *contextPayload `json:"context"`
}

type quoteResponse struct {
	QuoteID   string `json:"quoteId"`
	OrderID   string `json:"orderId,omitempty"`
	Currency  string `json:"currency"`
	Subtotal  int64  `json:"subtotal"`
	Discounts int64  `json:"discounts"`
	Delivery  int64  `json:"delivery"`
	Tax       int64  `json:"tax"`
	Total     int64  `json:"total"`
}

// Quote prices an order and returns the full breakdown.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	order := req.Order.toDomain()
	qctx := req.contextDomain()

	summary, err := h.Engine.Total(r.Context(), order, qctx)
	if err != nil {
		h.recordQuote(order, qctx, "error")
		common.RenderError(w, rateLookupError(err))
		return
	}
	h.recordQuote(order, qctx, "ok")
	if obs.QuoteAmount != nil {
		obs.QuoteAmount.WithLabelValues(resolvedTier(order, qctx)).Observe(float64(summary.Total))
	}

	common.JSON(w, http.StatusOK, map[string]any{"data": quoteResponse{
		QuoteID:   uuid.NewString(),
		OrderID:   order.ID,
		Currency:  h.Currency,
		Subtotal:  summary.Subtotal,
		Discounts: summary.Discounts,
		Delivery:  summary.Delivery,
		Tax:       summary.Tax,
		Total:     summary.Total,
	}})
}

// QuoteDelivery returns the delivery fee component only.
func (h *Handler) QuoteDelivery(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	order := req.Order.toDomain()
	qctx := req.contextDomain()
	fee := pricing.DeliveryFee(order, pricing.ResolveDelivery(order, qctx), pricing.ResolveProfile(order, qctx))
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"delivery": fee, "currency": h.Currency}})
}

// QuoteTax returns the tax component only.
func (h *Handler) QuoteTax(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	order := req.Order.toDomain()
	tax, err := h.Engine.Tax(r.Context(), order)
	if err != nil {
		common.RenderError(w, rateLookupError(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"tax": tax, "currency": h.Currency}})
}

// decode parses and validates the request body. Transport shape is checked
// here; enum-like fields are deliberately left open because the pipeline
// degrades unknown tiers, zones and coupons by policy.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (quoteRequest, bool) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return quoteRequest{}, false
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			var verrs validator.ValidationErrors
			details := any(nil)
			if errors.As(err, &verrs) {
				fields := make([]string, 0, len(verrs))
				for _, fe := range verrs {
					fields = append(fields, fe.Namespace())
				}
				details = map[string]any{"fields": fields}
			}
			common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid order", details)
			return quoteRequest{}, false
		}
	}
	return req, true
}

func (p orderPayload) toDomain() pricing.Order {
	items := make([]pricing.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		addOns := make([]pricing.AddOn, 0, len(it.AddOns))
		for _, a := range it.AddOns {
			addOns = append(addOns, pricing.AddOn(a))
		}
		items = append(items, pricing.OrderItem{
			SKU:            it.SKU,
			Kind:           it.Kind,
			Title:          it.Title,
			Filling:        it.Filling,
			Qty:            it.Qty,
			UnitPriceCents: it.UnitPriceCents,
			AddOns:         addOns,
		})
	}
	order := pricing.Order{ID: p.ID, Items: items}
	if p.Delivery != nil {
		order.Delivery = &pricing.DeliveryInfo{Zone: p.Delivery.Zone, Rush: p.Delivery.Rush, DistanceKm: p.Delivery.DistanceKm}
	}
	if p.Customer != nil {
		order.Customer = &pricing.CustomerProfile{Tier: p.Customer.Tier}
	}
	if p.Coupon != nil {
		order.Coupon = *p.Coupon
	}
	return order
}

func (r quoteRequest) contextDomain() pricing.Context {
	if r.Context == nil {
		return pricing.Context{}
	}
	qctx := pricing.Context{Coupon: r.Context.Coupon}
	if r.Context.Profile != nil {
		qctx.Profile = &pricing.CustomerProfile{Tier: r.Context.Profile.Tier}
	}
	if r.Context.Delivery != nil {
		qctx.Delivery = &pricing.DeliveryInfo{
			Zone:       r.Context.Delivery.Zone,
			Rush:       r.Context.Delivery.Rush,
			DistanceKm: r.Context.Delivery.DistanceKm,
		}
	}
	return qctx
}

func rateLookupError(err error) error {
	return common.NewAppError("TAX_RATE_ERROR", "failed to look up tax rate", http.StatusBadGateway, err)
}

func (h *Handler) recordQuote(order pricing.Order, qctx pricing.Context, result string) {
	if obs.QuotesTotal == nil {
		return
	}
	obs.QuotesTotal.WithLabelValues(resolvedTier(order, qctx), couponLabel(order, qctx), result).Inc()
}

// Label values are pinned to known vocabularies to keep metric cardinality
// bounded regardless of what callers send.
func resolvedTier(order pricing.Order, qctx pricing.Context) string {
	switch tier := pricing.ResolveProfile(order, qctx).Tier; tier {
	case pricing.TierGuest, pricing.TierRegular, pricing.TierVIP:
		return tier
	default:
		return "other"
	}
}

func couponLabel(order pricing.Order, qctx pricing.Context) string {
	switch coupon := pricing.ResolveCoupon(order, qctx); coupon {
	case "":
		return "none"
	case pricing.CouponFirst10, pricing.CouponBOGO:
		return coupon
	default:
		return "other"
	}
}
