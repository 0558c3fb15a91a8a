// Package telemetry holds Prometheus metrics for business events. HTTP
// request metrics live in the metrics middleware; this package covers the
// domain-level counters the services emit.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Business aggregates domain event counters. All methods are safe to call
// on a nil receiver, so unit tests can pass nil instead of wiring a registry.
type Business struct {
	authResolutions   *prometheus.CounterVec
	ordersPlaced      prometheus.Counter
	cartClearFailures prometheus.Counter
	upsertFailures    prometheus.Counter
}

// NewBusiness creates and registers the business metrics.
func NewBusiness(reg prometheus.Registerer) *Business {
	b := &Business{
		authResolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vesta_auth_resolutions_total",
				Help: "Credential resolutions by strategy and outcome.",
			},
			[]string{"strategy", "outcome"},
		),
		ordersPlaced: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vesta_orders_placed_total",
				Help: "Orders successfully placed.",
			},
		),
		cartClearFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vesta_checkout_cart_clear_failures_total",
				Help: "Carts that could not be cleared after order placement.",
			},
		),
		upsertFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vesta_user_upsert_failures_total",
				Help: "Best-effort user record upserts that failed.",
			},
		),
	}

	reg.MustRegister(b.authResolutions, b.ordersPlaced, b.cartClearFailures, b.upsertFailures)
	return b
}

// AuthResolution records a resolution attempt.
// Strategy is "local", "verified", or "decoded"; outcome is "ok" or "error".
func (b *Business) AuthResolution(strategy, outcome string) {
	if b == nil {
		return
	}
	b.authResolutions.WithLabelValues(strategy, outcome).Inc()
}

// OrderPlaced records a successful order placement.
func (b *Business) OrderPlaced() {
	if b == nil {
		return
	}
	b.ordersPlaced.Inc()
}

// CartClearFailure records a post-checkout cart clear that failed.
func (b *Business) CartClearFailure() {
	if b == nil {
		return
	}
	b.cartClearFailures.Inc()
}

// UserUpsertFailure records a best-effort user upsert that failed.
func (b *Business) UserUpsertFailure() {
	if b == nil {
		return
	}
	b.upsertFailures.Inc()
}
