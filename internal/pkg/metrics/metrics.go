// Package metrics defines and registers all custom Prometheus metrics
// for the board API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry
// at package load via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "board"

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheOpsTotal counts read-through cache lookups.
// Label:
//   - result: "hit", "miss", or "bypass" (cache store unreachable,
//     request served directly from the document store)
var CacheOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_ops_total",
		Help:      "Total number of read-through cache lookups, by result.",
	},
	[]string{"result"},
)

// CacheInvalidationsTotal counts invalidation sweeps.
// Label:
//   - scope: "messages" (tag-list key + query namespace) or "user"
var CacheInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of cache invalidations, by scope.",
	},
	[]string{"scope"},
)

// ── Message metrics ───────────────────────────────────────────────────────────

// MessagesCreatedTotal counts messages accepted by the store.
var MessagesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_created_total",
		Help:      "Total number of messages created.",
	},
)

// MessagesDeletedTotal counts messages removed by moderators.
var MessagesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_deleted_total",
		Help:      "Total number of messages deleted.",
	},
)

// ── Broadcast metrics ─────────────────────────────────────────────────────────

// BroadcastSubscribers tracks the number of currently connected
// websocket observers.
var BroadcastSubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "broadcast_subscribers",
		Help:      "Current number of connected broadcast subscribers.",
	},
)

// BroadcastDroppedTotal counts deliveries dropped because a subscriber
// (or the hub inbox) could not keep up. Delivery is at-most-once.
var BroadcastDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_dropped_total",
		Help:      "Total number of broadcast deliveries dropped.",
	},
)
