package metrics

import "time"

// RecordSyncRun records a finished sync run with its terminal status.
// Status should be "success", "error", or "canceled".
func RecordSyncRun(kind, status string, duration time.Duration) {
	SyncRunsTotal.WithLabelValues(kind, status).Inc()
	SyncDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if status == "success" {
		SyncLastSuccess.SetToCurrentTime()
	}
}

// RecordEntriesImported records the outcome breakdown of one import.
func RecordEntriesImported(kind string, written, skipped int64) {
	if written > 0 {
		EntriesImportedTotal.WithLabelValues(kind, "written").Add(float64(written))
	}
	if skipped > 0 {
		EntriesImportedTotal.WithLabelValues(kind, "skipped").Add(float64(skipped))
	}
}

// RecordDownloadSuccess records a completed list download.
//
// Parameters:
//   - kind: "full" or "diff"
//   - duration: Time taken for the transfer
//   - size: Archive size in bytes
func RecordDownloadSuccess(kind string, duration time.Duration, size int64) {
	DownloadAttemptsTotal.WithLabelValues(kind, "success").Inc()
	DownloadDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if size > 0 {
		DownloadSize.Observe(float64(size))
	}
}

// RecordDownloadFailed records a failed list download.
func RecordDownloadFailed(kind string, duration time.Duration) {
	DownloadAttemptsTotal.WithLabelValues(kind, "failure").Inc()
	DownloadDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordCacheRequest records one cache lookup.
// Category names the cached operation (channels, themes, search, ...).
func RecordCacheRequest(category string, hit bool) {
	result := "hit"
	if !hit {
		result = "miss"
	}
	CacheRequestsTotal.WithLabelValues(category, result).Inc()
}

// UpdateCatalogGauges updates the catalog size gauges.
// These should be refreshed after every import and periodically in between.
func UpdateCatalogGauges(entries, channels int64) {
	EntriesTotal.Set(float64(entries))
	ChannelsTotal.Set(float64(channels))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_entries", "upsert_batch").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
