package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WishlistMetrics records cache mutations and membership checks.
type WishlistMetrics struct {
	duration      *prometheus.HistogramVec
	failures      *prometheus.CounterVec
	checks        prometheus.Counter
	checkFailures prometheus.Counter
}

// NewWishlistMetrics registers the wishlist metrics on the provided registerer.
func NewWishlistMetrics(reg prometheus.Registerer) *WishlistMetrics {
	if reg == nil {
		return &WishlistMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wishlist_op_duration_seconds",
		Help:    "Duration of wishlist store operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wishlist_op_failures",
		Help: "Failed wishlist store operations.",
	}, []string{"op"})
	checks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wishlist_membership_checks",
		Help: "Individual membership checks issued.",
	})
	checkFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wishlist_membership_check_failures",
		Help: "Membership checks that errored and resolved to false.",
	})
	reg.MustRegister(duration, failures, checks, checkFailures)
	return &WishlistMetrics{
		duration:      duration,
		failures:      failures,
		checks:        checks,
		checkFailures: checkFailures,
	}
}

// ObserveDuration records the duration for the named operation.
func (m *WishlistMetrics) ObserveDuration(op string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(op)).Observe(duration.Seconds())
}

// IncFailure increments the failure counter for the named operation.
func (m *WishlistMetrics) IncFailure(op string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCheck counts one issued membership check.
func (m *WishlistMetrics) IncCheck() {
	if m == nil || m.checks == nil {
		return
	}
	m.checks.Inc()
}

// IncCheckFailure counts one membership check that degraded to false.
func (m *WishlistMetrics) IncCheckFailure() {
	if m == nil || m.checkFailures == nil {
		return
	}
	m.checkFailures.Inc()
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
