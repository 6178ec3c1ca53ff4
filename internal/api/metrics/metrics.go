// Package metrics defines all custom Prometheus metrics for the order
// platform. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ordersystem"

// OrdersCreatedTotal counts successfully created orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// OrderTransitionsTotal counts applied status transitions.
// Labels:
//   - from: previous order status
//   - to: new order status
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of order status transitions applied.",
	},
	[]string{"from", "to"},
)

// AuthFailuresTotal counts rejected credentials.
// Label:
//   - reason: "missing", "malformed", "bad_signature", "expired"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts.",
	},
	[]string{"reason"},
)

// EventsQueueDepth tracks the number of events waiting per dispatcher worker.
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// GatewayProxyTotal counts proxied requests by target service and outcome.
// Labels:
//   - target: "users" or "orders"
//   - outcome: "forwarded" or "upstream_error"
var GatewayProxyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_proxy_total",
		Help:      "Total number of requests proxied by the gateway.",
	},
	[]string{"target", "outcome"},
)

// RateLimitedTotal counts requests rejected by the gateway rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)
