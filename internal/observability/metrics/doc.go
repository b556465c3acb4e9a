// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (catalog size, sync runs, downloads, cache)
//   - Database query metrics
//   - Application performance metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "kuckmal/internal/observability/metrics"
//
//	func importList(kind string) {
//	    start := time.Now()
//	    // ... download and import ...
//
//	    metrics.RecordSyncRun(kind, "success", time.Since(start))
//	    metrics.RecordEntriesImported(kind, written, skipped)
//	}
package metrics
