package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Checkout outcomes recorded by IncCheckout.
const (
	OutcomePlaced    = "placed"
	OutcomeEmptyCart = "empty_cart"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
)

// StorefrontMetrics records cart and checkout activity.
type StorefrontMetrics struct {
	cartMutations *prometheus.CounterVec
	checkouts     *prometheus.CounterVec
	ordersPlaced  prometheus.Gauge
	snapshotSave  *prometheus.HistogramVec
	snapshotFails *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
// A nil registerer yields a recorder that drops everything.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Committed cart mutations by operation.",
	}, []string{"op"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkouts_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
	ordersPlaced := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orders_placed",
		Help: "Orders currently held in the session history.",
	})
	snapshotSave := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snapshot_save_duration_seconds",
		Help:    "Duration of snapshot writes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend"})
	snapshotFails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_save_failures_total",
		Help: "Failed snapshot writes.",
	}, []string{"backend"})
	reg.MustRegister(cartMutations, checkouts, ordersPlaced, snapshotSave, snapshotFails)
	return &StorefrontMetrics{
		cartMutations: cartMutations,
		checkouts:     checkouts,
		ordersPlaced:  ordersPlaced,
		snapshotSave:  snapshotSave,
		snapshotFails: snapshotFails,
	}
}

// IncCartMutation counts a committed cart change.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCheckout counts a checkout attempt with its outcome.
func (m *StorefrontMetrics) IncCheckout(outcome string) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// SetOrdersPlaced publishes the size of the order history.
func (m *StorefrontMetrics) SetOrdersPlaced(n int) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Set(float64(n))
}

// ObserveSnapshotSave records a snapshot write on backend.
func (m *StorefrontMetrics) ObserveSnapshotSave(backend string, duration time.Duration, err error) {
	if m == nil || m.snapshotSave == nil {
		return
	}
	label := normalizeLabel(backend)
	m.snapshotSave.WithLabelValues(label).Observe(duration.Seconds())
	if err != nil {
		m.snapshotFails.WithLabelValues(label).Inc()
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
