// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Business metrics track catalog state and the sync pipeline
var (
	// EntriesTotal tracks the number of media entries in the catalog
	EntriesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_entries_total",
			Help: "Total number of media entries in the catalog",
		},
	)

	// ChannelsTotal tracks the number of distinct channels in the catalog
	ChannelsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_channels_total",
			Help: "Number of distinct channels in the catalog",
		},
	)

	// SyncRunsTotal counts sync runs by kind and terminal status
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Total number of catalog sync runs",
		},
		[]string{"kind", "status"}, // kind: full, diff; status: success, error, canceled
	)

	// SyncDuration measures complete sync runs per kind
	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_duration_seconds",
			Help:    "Time taken by a complete catalog sync",
			Buckets: prometheus.ExponentialBuckets(1, 2, 11),
		},
		[]string{"kind"},
	)

	// SyncLastSuccess carries the unix time of the last successful sync
	SyncLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sync_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful catalog sync",
		},
	)

	// EntriesImportedTotal counts imported entries by kind and outcome
	EntriesImportedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entries_imported_total",
			Help: "Total number of catalog entries processed by imports",
		},
		[]string{"kind", "outcome"}, // outcome: written, skipped
	)

	// DownloadAttemptsTotal counts list downloads by kind and result
	DownloadAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmliste_download_attempts_total",
			Help: "Total number of catalog list download attempts",
		},
		[]string{"kind", "result"}, // result: success, failure
	)

	// DownloadDuration measures list download time per kind
	DownloadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filmliste_download_duration_seconds",
			Help:    "Time taken to download a catalog list",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"kind"},
	)

	// DownloadSize measures downloaded archive size in bytes
	DownloadSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "filmliste_download_size_bytes",
			Help: "Downloaded catalog archive size in bytes",
			Buckets: []float64{
				1 << 20, 1 << 21, 1 << 22, 1 << 23, 1 << 24,
				1 << 25, 1 << 26, 1 << 27, 1 << 28, // up to 256MB
			},
		},
	)

	// CacheRequestsTotal counts cache lookups by category and result
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Total number of cache lookups",
		},
		[]string{"category", "result"}, // result: hit, miss
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordOperationDuration records the duration of a named operation
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
