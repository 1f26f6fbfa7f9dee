// Package metrics defines and registers all custom Prometheus metrics for
// the pickup API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pickup"

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// EntityWritesTotal counts successful entity mutations.
// Labels:
//   - entity: "user", "driver", "clinic", "pickup"
//   - operation: "create", "update", "delete", "delete_many"
var EntityWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entity_writes_total",
		Help:      "Total number of successful entity writes, by entity and operation.",
	},
	[]string{"entity", "operation"},
)

// PhotoUploadBytes measures the size of stored (normalized) photos.
var PhotoUploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "photo_upload_bytes",
		Help:      "Size in bytes of normalized photos written to the store.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB .. 16MiB
	},
)

// PhotoUploadDuration measures the upload pipeline end-to-end: validation,
// decode, resize, encode, and store.
var PhotoUploadDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "photo_upload_duration_seconds",
		Help:      "Duration of photo normalization and storage.",
		Buckets:   prometheus.DefBuckets,
	},
)
