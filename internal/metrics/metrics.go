package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersPlaced counts successfully placed orders
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_orders_placed_total",
		Help: "Total number of successfully placed orders",
	})

	// OrderFailures counts rejected order placements by error code
	OrderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_order_failures_total",
		Help: "Total number of rejected order placements by error code",
	}, []string{"code"})

	// OrdersCancelled counts cancelled orders
	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_orders_cancelled_total",
		Help: "Total number of cancelled orders",
	})

	// Reservations counts successful inventory reservations
	Reservations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_inventory_reservations_total",
		Help: "Total number of successful inventory reservations",
	})

	// ReservationConflicts counts reservations rejected for insufficient stock
	ReservationConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_reservation_conflicts_total",
		Help: "Total number of reservations rejected for insufficient stock",
	})

	// PlacementDuration observes end-to-end order placement latency
	PlacementDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "marketplace_order_placement_duration_seconds",
		Help:    "End-to-end order placement latency",
		Buckets: prometheus.DefBuckets,
	})
)
