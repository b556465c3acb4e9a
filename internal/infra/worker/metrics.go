package worker

import (
	"kuckmal/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the worker component.
// It embeds the standard ConfigMetrics for configuration monitoring and
// adds scheduler metrics for the cron-triggered sync runs. The sync
// pipeline itself reports its own download and import metrics; these
// track the scheduling layer on top of it.
//
// Embedded metrics (from ConfigMetrics):
//   - worker_config_load_timestamp: Unix timestamp of last configuration load
//   - worker_config_validation_errors_total: Total validation errors by field
//   - worker_config_fallbacks_total: Total fallback operations by field
//   - worker_config_fallback_active: 1 if any fallback active, 0 otherwise
//
// Scheduler metrics:
//   - worker_sync_triggers_total: Sync triggers by kind and outcome
//   - worker_sync_trigger_duration_seconds: Duration of triggered runs by kind
//   - worker_sync_entries_written_total: Entries written across all triggered runs
//   - worker_sync_last_success_timestamp: Unix timestamp of last success by kind
//
// Example usage:
//
//	metrics := NewWorkerMetrics()
//	metrics.MustRegister()
//
//	start := time.Now()
//	res, err := svc.RunDiff(ctx)
//	if err != nil {
//	    metrics.RecordSyncTrigger("diff", "failure")
//	} else {
//	    metrics.RecordSyncTrigger("diff", "success")
//	    metrics.RecordEntriesWritten(res.Written)
//	    metrics.RecordLastSuccess("diff")
//	}
//	metrics.RecordSyncDuration("diff", time.Since(start).Seconds())
type WorkerMetrics struct {
	// Embedded configuration metrics
	*config.ConfigMetrics

	// SyncTriggersTotal counts scheduled sync triggers.
	// Type: Counter
	// Labels: kind (full, diff), status (success, failure, skipped)
	// A trigger is "skipped" when a previous run is still in flight.
	SyncTriggersTotal *prometheus.CounterVec

	// SyncTriggerDurationSeconds measures the duration of triggered runs.
	// Type: Histogram
	// Labels: kind (full, diff)
	// Buckets: 1s, 5s, 30s, 1m, 5m, 15m, 30m (a full list import can take minutes)
	SyncTriggerDurationSeconds *prometheus.HistogramVec

	// SyncEntriesWrittenTotal counts catalog entries written by triggered runs.
	// Type: Counter
	// Labels: none
	SyncEntriesWrittenTotal prometheus.Counter

	// SyncLastSuccessTimestamp records the Unix timestamp of the last
	// successful run per kind. Staleness alerts key off the "full" series.
	// Type: Gauge
	// Labels: kind (full, diff)
	SyncLastSuccessTimestamp *prometheus.GaugeVec
}

// NewWorkerMetrics creates a new WorkerMetrics instance with all metrics
// initialized. Registration happens automatically via promauto.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		SyncTriggersTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_sync_triggers_total",
			Help: "Total number of scheduled sync triggers by kind and outcome",
		}, []string{"kind", "status"}),

		SyncTriggerDurationSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worker_sync_trigger_duration_seconds",
			Help:    "Duration of triggered sync runs in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}, []string{"kind"}),

		SyncEntriesWrittenTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_sync_entries_written_total",
			Help: "Total number of catalog entries written across all triggered sync runs",
		}),

		SyncLastSuccessTimestamp: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_sync_last_success_timestamp",
			Help: "Unix timestamp of the last successful sync run by kind",
		}, []string{"kind"}),
	}
}

// MustRegister is a no-op method for API compatibility.
// Metrics are automatically registered via promauto when created in
// NewWorkerMetrics. The explicit call keeps the initialization intent
// visible at the call site:
//
//	metrics := NewWorkerMetrics()
//	metrics.MustRegister()
func (m *WorkerMetrics) MustRegister() {
	// No-op: metrics are auto-registered via promauto
}

// RecordSyncTrigger increments the trigger counter for the given kind
// and outcome. Kind is "full" or "diff"; status is "success", "failure",
// or "skipped".
func (m *WorkerMetrics) RecordSyncTrigger(kind, status string) {
	m.SyncTriggersTotal.WithLabelValues(kind, status).Inc()
}

// RecordSyncDuration observes the duration of a triggered sync run.
// Duration is in seconds.
func (m *WorkerMetrics) RecordSyncDuration(kind string, seconds float64) {
	m.SyncTriggerDurationSeconds.WithLabelValues(kind).Observe(seconds)
}

// RecordEntriesWritten adds the number of entries written by a run to
// the running total.
func (m *WorkerMetrics) RecordEntriesWritten(count int64) {
	m.SyncEntriesWrittenTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful run
// for the given kind.
func (m *WorkerMetrics) RecordLastSuccess(kind string) {
	m.SyncLastSuccessTimestamp.WithLabelValues(kind).SetToCurrentTime()
}
