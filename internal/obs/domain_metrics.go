package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuotesTotal counts quote computations by tier, coupon and outcome.
	QuotesTotal *prometheus.CounterVec
	// QuoteAmount records the distribution of quoted totals in cents.
	QuoteAmount *prometheus.HistogramVec
	// TaxRateLookupTotal counts tax-rate lookups by outcome.
	TaxRateLookupTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuotesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Count of quote computations by tier, coupon and result.",
		}, []string{"tier", "coupon", "result"})
		QuoteAmount = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_amount_cents",
			Help:      "Distribution of quoted order totals in cents.",
			Buckets:   []float64{500, 1000, 2500, 5000, 10000, 25000, 50000, 100000},
		}, []string{"tier"})
		TaxRateLookupTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tax_rate_lookup_total",
			Help:      "Count of tax-rate lookups by result.",
		}, []string{"result"})

		mustRegisterCollector(reg, QuotesTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuotesTotal = v
			}
		})
		mustRegisterCollector(reg, QuoteAmount, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.HistogramVec); ok {
				QuoteAmount = v
			}
		})
		mustRegisterCollector(reg, TaxRateLookupTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				TaxRateLookupTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, c prometheus.Collector, replace func(prometheus.Collector)) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			replace(are.ExistingCollector)
			return
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
}
