package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordSyncRun(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		status   string
		duration time.Duration
	}{
		{
			name:     "successful full sync",
			kind:     "full",
			status:   "success",
			duration: 4 * time.Minute,
		},
		{
			name:     "failed diff sync",
			kind:     "diff",
			status:   "error",
			duration: 12 * time.Second,
		},
		{
			name:     "canceled run",
			kind:     "full",
			status:   "canceled",
			duration: 30 * time.Second,
		},
		{
			name:     "zero duration",
			kind:     "diff",
			status:   "success",
			duration: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordSyncRun(tt.kind, tt.status, tt.duration)
			})
		})
	}
}

func TestRecordEntriesImported(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		written int64
		skipped int64
	}{
		{
			name:    "typical full import",
			kind:    "full",
			written: 482113,
			skipped: 37,
		},
		{
			name:    "diff with only updates",
			kind:    "diff",
			written: 1204,
			skipped: 0,
		},
		{
			name:    "nothing written",
			kind:    "diff",
			written: 0,
			skipped: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordEntriesImported(tt.kind, tt.written, tt.skipped)
			})
		})
	}
}

func TestRecordDownload(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		duration time.Duration
		size     int64
		success  bool
	}{
		{
			name:     "full list downloaded",
			kind:     "full",
			duration: 90 * time.Second,
			size:     94371840,
			success:  true,
		},
		{
			name:     "diff downloaded",
			kind:     "diff",
			duration: 3 * time.Second,
			size:     2097152,
			success:  true,
		},
		{
			name:     "unknown size",
			kind:     "full",
			duration: 80 * time.Second,
			size:     0,
			success:  true,
		},
		{
			name:     "mirror unreachable",
			kind:     "full",
			duration: 30 * time.Second,
			success:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				if tt.success {
					RecordDownloadSuccess(tt.kind, tt.duration, tt.size)
				} else {
					RecordDownloadFailed(tt.kind, tt.duration)
				}
			})
		})
	}
}

func TestRecordCacheRequest(t *testing.T) {
	tests := []struct {
		name     string
		category string
		hit      bool
	}{
		{name: "channels hit", category: "channels", hit: true},
		{name: "search miss", category: "search", hit: false},
		{name: "empty category", category: "", hit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordCacheRequest(tt.category, tt.hit)
			})
		})
	}
}

func TestUpdateCatalogGauges(t *testing.T) {
	tests := []struct {
		name     string
		entries  int64
		channels int64
	}{
		{
			name:     "populated catalog",
			entries:  482113,
			channels: 21,
		},
		{
			name:     "empty catalog",
			entries:  0,
			channels: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateCatalogGauges(tt.entries, tt.channels)
			})
		})
	}
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		duration  time.Duration
	}{
		{
			name:      "fast select",
			operation: "select_entries",
			duration:  2 * time.Millisecond,
		},
		{
			name:      "bulk upsert",
			operation: "upsert_batch",
			duration:  180 * time.Millisecond,
		},
		{
			name:      "zero duration",
			operation: "count",
			duration:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordDBQuery(tt.operation, tt.duration)
			})
		})
	}
}

func TestUpdateDBConnectionStats(t *testing.T) {
	tests := []struct {
		name   string
		active int
		idle   int
	}{
		{name: "busy pool", active: 8, idle: 2},
		{name: "idle pool", active: 0, idle: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateDBConnectionStats(tt.active, tt.idle)
			})
		})
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		status       string
		duration     time.Duration
		requestSize  int
		responseSize int
	}{
		{
			name:         "search request",
			method:       "GET",
			path:         "/api/search",
			status:       "200",
			duration:     45 * time.Millisecond,
			requestSize:  0,
			responseSize: 18234,
		},
		{
			name:         "sync trigger",
			method:       "POST",
			path:         "/api/filmliste/sync",
			status:       "202",
			duration:     3 * time.Millisecond,
			requestSize:  12,
			responseSize: 64,
		},
		{
			name:     "not found",
			method:   "GET",
			path:     "/api/entry",
			status:   "404",
			duration: time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordHTTPRequest(tt.method, tt.path, tt.status, tt.duration, tt.requestSize, tt.responseSize)
			})
		})
	}
}
