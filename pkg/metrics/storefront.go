package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records counters for cart mutations, discount code
// attempts, and checkout outcomes.
type StorefrontMetrics struct {
	cartOps   *prometheus.CounterVec
	discounts *prometheus.CounterVec
	checkouts *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"operation"})
	discounts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "discount_code_attempts_total",
		Help: "Discount code applications by result.",
	}, []string{"result"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_transitions_total",
		Help: "Checkout flow transitions by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(cartOps, discounts, checkouts)
	return &StorefrontMetrics{
		cartOps:   cartOps,
		discounts: discounts,
		checkouts: checkouts,
	}
}

// IncCartOp increments the cart operation counter for the named operation.
func (m *StorefrontMetrics) IncCartOp(operation string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncDiscount increments the discount attempt counter for the given result.
func (m *StorefrontMetrics) IncDiscount(result string) {
	if m == nil || m.discounts == nil {
		return
	}
	m.discounts.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncCheckout increments the checkout transition counter for the given outcome.
func (m *StorefrontMetrics) IncCheckout(outcome string) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
