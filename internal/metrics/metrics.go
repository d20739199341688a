package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Actions reduced by the store, by action type
	DispatchCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qatrack_dispatch_total",
			Help: "Total number of actions dispatched to the state store",
		},
		[]string{"action"},
	)

	// Snapshot writes, by result: ok, failed
	PersistCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qatrack_persist_total",
			Help: "Total number of snapshot writes",
		},
		[]string{"result"},
	)

	PersistDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qatrack_persist_duration_seconds",
			Help:    "Snapshot write duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)

	// Fields restored from the seed at load time
	LoadFallbackCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qatrack_load_fallback_total",
			Help: "Snapshot fields that fell back to seed data on load",
		},
		[]string{"field"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	BackupCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qatrack_backup_total",
			Help: "Total number of scheduled snapshot backups",
		},
		[]string{"result"},
	)
)

func IncrementDispatch(action string) {
	DispatchCount.WithLabelValues(action).Inc()
}

// RecordPersist counts a snapshot write and observes its duration.
func RecordPersist(err error, duration time.Duration) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	PersistCount.WithLabelValues(result).Inc()
	PersistDuration.Observe(duration.Seconds())
}

func IncrementLoadFallback(field string) {
	LoadFallbackCount.WithLabelValues(field).Inc()
}

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementBackup(result string) {
	BackupCount.WithLabelValues(result).Inc()
}
