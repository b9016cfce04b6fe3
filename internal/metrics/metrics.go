package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type BridgeMetrics struct {
	// Callback resolution outcomes, labeled success/failure.
	CallbacksTotal *prometheus.CounterVec
	// Remote order fetches that ended in an error, any kind.
	RemoteFetchFailuresTotal prometheus.Counter
	// Customer creation outcomes: created, cached, rejected.
	CustomerCreationsTotal *prometheus.CounterVec
	CustomerDeletionsTotal prometheus.Counter

	CallbackDuration prometheus.Histogram
}

// NewBridgeMetrics registers all metrics on the given registerer. Tests
// pass a fresh registry to avoid duplicate registration.
func NewBridgeMetrics(reg prometheus.Registerer) *BridgeMetrics {
	factory := promauto.With(reg)

	return &BridgeMetrics{
		CallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mollie_bridge_callbacks_total",
			Help: "Number of resolved payment callbacks by outcome",
		}, []string{"outcome"}),
		RemoteFetchFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "mollie_bridge_remote_fetch_failures_total",
			Help: "Number of failed remote order fetches during callback resolution",
		}),
		CustomerCreationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mollie_bridge_customer_creations_total",
			Help: "Number of customer creation requests by result",
		}, []string{"result"}),
		CustomerDeletionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "mollie_bridge_customer_deletions_total",
			Help: "Number of customers removed from the provider",
		}),
		CallbackDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mollie_bridge_callback_duration_seconds",
			Help:    "Time spent resolving a payment callback",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
