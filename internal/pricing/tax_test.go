package pricing

import (
	"context"
	"errors"
	"testing"
)

type fixedRate struct {
	rate  float64
	err   error
	calls int
}

func (f *fixedRate) Rate(ctx context.Context, kind string) (float64, error) {
	f.calls++
	return f.rate, f.err
}

func TestTaxHotItemsOnly(t *testing.T) {
	e := Engine{Rates: &fixedRate{rate: 0.08}}
	order := Order{Items: []OrderItem{
		{Kind: KindHot, Qty: 2, UnitPriceCents: 899},
		{Kind: KindFrozen, Qty: 3, UnitPriceCents: 1200},
	}}
	got, err := e.Tax(context.Background(), order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2 * 899 = 1798; 8% = 143.84 -> 143
	if got != 143 {
		t.Fatalf("expected 143, got %d", got)
	}
}

func TestTaxFloorsPerLine(t *testing.T) {
	e := Engine{Rates: &fixedRate{rate: 0.08}}
	order := Order{Items: []OrderItem{
		{Kind: KindHot, Qty: 1, UnitPriceCents: 999},
		{Kind: KindHot, Qty: 1, UnitPriceCents: 999},
	}}
	got, err := e.Tax(context.Background(), order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// each line: 79.92 -> 79; summing first would give floor(159.84) = 159
	if got != 158 {
		t.Fatalf("expected 158, got %d", got)
	}
}

func TestTaxSkipsAddOns(t *testing.T) {
	e := Engine{Rates: &fixedRate{rate: 0.08}}
	order := Order{Items: []OrderItem{{
		Kind:           KindHot,
		Qty:            1,
		UnitPriceCents: 1000,
		AddOns:         []AddOn{AddOnBaconBits},
	}}}
	got, err := e.Tax(context.Background(), order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 80 {
		t.Fatalf("expected 80 on the item alone, got %d", got)
	}
}

func TestTaxAllFrozenNeedsNoSource(t *testing.T) {
	e := Engine{}
	order := Order{Items: []OrderItem{{Kind: KindFrozen, Qty: 4, UnitPriceCents: 1200}}}
	got, err := e.Tax(context.Background(), order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestTaxNilSourceWithHotItems(t *testing.T) {
	e := Engine{}
	order := Order{Items: []OrderItem{{Kind: KindHot, Qty: 1, UnitPriceCents: 1000}}}
	if _, err := e.Tax(context.Background(), order); err == nil {
		t.Fatal("expected error for missing rate source")
	}
}

func TestTaxLookupFailurePropagates(t *testing.T) {
	src := &fixedRate{err: errors.New("rate service down")}
	e := Engine{Rates: src}
	order := Order{Items: []OrderItem{{Kind: KindHot, Qty: 1, UnitPriceCents: 1000}}}
	_, err := e.Tax(context.Background(), order)
	if err == nil {
		t.Fatal("expected lookup error")
	}
	if !errors.Is(err, src.err) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestTaxExcludesDeliveryFee(t *testing.T) {
	e := Engine{Rates: &fixedRate{rate: 0.08}}
	order := Order{Items: []OrderItem{{Kind: KindHot, Qty: 1, UnitPriceCents: 1000}}}

	deliveries := []DeliveryInfo{
		{Zone: ZoneLocal},
		{Zone: ZoneOuter, Rush: true},
	}
	for _, d := range deliveries {
		sum, err := e.Total(context.Background(), order, Context{Delivery: &d})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sum.Tax != 80 {
			t.Fatalf("zone %s rush %v: tax %d varies with delivery", d.Zone, d.Rush, sum.Tax)
		}
	}
}
