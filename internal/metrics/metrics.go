// Package metrics defines the Prometheus instrumentation for the stores and
// the HTTP surface. Collectors are registered on the default registry at init
// and exposed via promhttp on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reposelink"

var (
	// StoreOperations counts mutations and lookups per store and operation.
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Total store operations, labeled by store and operation.",
	}, []string{"store", "op"})

	// NotificationsDropped counts feed entries evicted by the 50-entry cap.
	NotificationsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Notifications evicted from the feed by the size cap.",
	})

	// UnreadNotifications tracks the current number of unread feed entries.
	UnreadNotifications = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "unread_notifications",
		Help:      "Current number of unread notifications in the feed.",
	})

	// SyncRuns counts completed sync rounds (periodic and manual).
	SyncRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_runs_total",
		Help:      "Completed data sync rounds.",
	})

	// Online reports the current connectivity flag (1 online, 0 offline).
	Online = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "online",
		Help:      "Whether the store currently considers itself online.",
	})

	// HTTPRequests counts API requests by method, route pattern and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests, labeled by method, route and status code.",
	}, []string{"method", "route", "status"})
)

// SetOnline records the connectivity flag.
func SetOnline(online bool) {
	if online {
		Online.Set(1)
	} else {
		Online.Set(0)
	}
}
