package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records storefront cart activity.
type CartMetrics struct {
	clicks      *prometheus.CounterVec
	pagesOpened *prometheus.CounterVec
	cartValue   prometheus.Histogram
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	clicks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_clicks_total",
		Help: "Quantity control clicks by action and outcome.",
	}, []string{"action", "outcome"})
	pagesOpened := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_pages_opened_total",
		Help: "Storefront pages opened, split by personalization.",
	}, []string{"personalized"})
	cartValue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_total_amount",
		Help:    "Cart grand total after a changing click, in the smallest currency unit.",
		Buckets: prometheus.ExponentialBuckets(100, 2, 10),
	})
	reg.MustRegister(clicks, pagesOpened, cartValue)
	return &CartMetrics{
		clicks:      clicks,
		pagesOpened: pagesOpened,
		cartValue:   cartValue,
	}
}

// IncClick counts a click with its decoded action and outcome.
func (c *CartMetrics) IncClick(action, outcome string) {
	if c == nil || c.clicks == nil {
		return
	}
	c.clicks.WithLabelValues(normalizeLabel(action), normalizeLabel(outcome)).Inc()
}

// IncPageOpened counts a freshly opened storefront page.
func (c *CartMetrics) IncPageOpened(personalized bool) {
	if c == nil || c.pagesOpened == nil {
		return
	}
	label := "false"
	if personalized {
		label = "true"
	}
	c.pagesOpened.WithLabelValues(label).Inc()
}

// ObserveTotal records the grand total of a cart.
func (c *CartMetrics) ObserveTotal(total int) {
	if c == nil || c.cartValue == nil {
		return
	}
	c.cartValue.Observe(float64(total))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
