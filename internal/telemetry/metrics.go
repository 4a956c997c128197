package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for commerce-level observability.
type Metrics struct {
	// Cart synchronization
	CartRefreshes         prometheus.Counter
	CartRefreshSuppressed prometheus.Counter
	CartStaleDiscarded    prometheus.Counter
	CartSyncFailures      prometheus.Counter
	CartMutations         *prometheus.CounterVec
	CartValue             prometheus.Histogram

	// Promotions
	DiscountEvaluations *prometheus.CounterVec
	DiscountAmount      prometheus.Histogram

	// Order lifecycle
	OrderTransitions *prometheus.CounterVec

	// Notifications
	NotificationsEmitted *prometheus.CounterVec
}

// New creates and registers commerce metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CartRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tavolo",
			Name:      "cart_refreshes_total",
			Help:      "Authoritative cart fetches applied to the snapshot",
		}),
		CartRefreshSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tavolo",
			Name:      "cart_refreshes_suppressed_total",
			Help:      "Refresh triggers collapsed by the debounce window",
		}),
		CartStaleDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tavolo",
			Name:      "cart_stale_responses_total",
			Help:      "Late cart responses discarded by the sequence guard",
		}),
		CartSyncFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tavolo",
			Name:      "cart_sync_failures_total",
			Help:      "Cart fetches or mutations that failed remotely",
		}),
		CartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tavolo",
			Name:      "cart_mutations_total",
			Help:      "Cart mutations by operation and outcome",
		}, []string{"op", "outcome"}),
		CartValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tavolo",
			Name:      "cart_value",
			Help:      "Cart total amount at each snapshot replacement",
			Buckets:   prometheus.ExponentialBuckets(10000, 2.5, 10),
		}),
		DiscountEvaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tavolo",
			Name:      "discount_evaluations_total",
			Help:      "Promotion evaluations by type and outcome",
		}, []string{"type", "outcome"}),
		DiscountAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tavolo",
			Name:      "discount_amount",
			Help:      "Discount amounts granted by applied promotions",
			Buckets:   prometheus.ExponentialBuckets(5000, 2, 10),
		}),
		OrderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tavolo",
			Name:      "order_transitions_total",
			Help:      "User-initiated order transitions by kind and result",
		}, []string{"transition", "result"}),
		NotificationsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tavolo",
			Name:      "notifications_emitted_total",
			Help:      "Relay messages emitted by severity",
		}, []string{"severity"}),
	}

	reg.MustRegister(
		m.CartRefreshes,
		m.CartRefreshSuppressed,
		m.CartStaleDiscarded,
		m.CartSyncFailures,
		m.CartMutations,
		m.CartValue,
		m.DiscountEvaluations,
		m.DiscountAmount,
		m.OrderTransitions,
		m.NotificationsEmitted,
	)

	return m
}
