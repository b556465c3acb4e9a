package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// All tests share globalTestMetrics (see config_test.go): promauto
// registers on the default registry, so a second NewWorkerMetrics call
// in the same process would panic. Counter assertions therefore check
// deltas, not absolute values.

func TestWorkerMetrics_RecordSyncTrigger(t *testing.T) {
	m := globalTestMetrics

	successBefore := testutil.ToFloat64(m.SyncTriggersTotal.WithLabelValues("full", "success"))
	skippedBefore := testutil.ToFloat64(m.SyncTriggersTotal.WithLabelValues("diff", "skipped"))

	m.RecordSyncTrigger("full", "success")
	m.RecordSyncTrigger("diff", "skipped")
	m.RecordSyncTrigger("diff", "skipped")

	successAfter := testutil.ToFloat64(m.SyncTriggersTotal.WithLabelValues("full", "success"))
	if successAfter-successBefore != 1 {
		t.Errorf("expected full/success delta 1, got %v", successAfter-successBefore)
	}

	skippedAfter := testutil.ToFloat64(m.SyncTriggersTotal.WithLabelValues("diff", "skipped"))
	if skippedAfter-skippedBefore != 2 {
		t.Errorf("expected diff/skipped delta 2, got %v", skippedAfter-skippedBefore)
	}
}

func TestWorkerMetrics_RecordSyncDuration(t *testing.T) {
	m := globalTestMetrics

	m.RecordSyncDuration("full", 125.0)
	m.RecordSyncDuration("diff", 3.5)

	// Histograms only expose counts via the collector
	if got := testutil.CollectAndCount(m.SyncTriggerDurationSeconds); got == 0 {
		t.Errorf("expected duration histogram series, got %d", got)
	}
}

func TestWorkerMetrics_RecordEntriesWritten(t *testing.T) {
	m := globalTestMetrics

	before := testutil.ToFloat64(m.SyncEntriesWrittenTotal)

	m.RecordEntriesWritten(420000)
	m.RecordEntriesWritten(1500)

	after := testutil.ToFloat64(m.SyncEntriesWrittenTotal)
	if after-before != 421500 {
		t.Errorf("expected entries written delta 421500, got %v", after-before)
	}
}

func TestWorkerMetrics_RecordLastSuccess(t *testing.T) {
	m := globalTestMetrics

	m.RecordLastSuccess("full")
	m.RecordLastSuccess("diff")

	// SetToCurrentTime stores a recent Unix timestamp
	for _, kind := range []string{"full", "diff"} {
		ts := testutil.ToFloat64(m.SyncLastSuccessTimestamp.WithLabelValues(kind))
		if ts <= 0 {
			t.Errorf("expected %s last success timestamp to be set, got %v", kind, ts)
		}
	}
}

func TestWorkerMetrics_EmbedsConfigMetrics(t *testing.T) {
	m := globalTestMetrics

	if m.ConfigMetrics == nil {
		t.Fatal("expected embedded ConfigMetrics to be initialized")
	}

	// The embedded recorder methods are reachable through the wrapper
	m.RecordValidationError("test_field")
	m.RecordFallback("test_field", "default")
	m.RecordLoadTimestamp()
}

func TestWorkerMetrics_MustRegisterIsIdempotent(t *testing.T) {
	m := globalTestMetrics

	// promauto already registered everything; MustRegister must not panic
	m.MustRegister()
	m.MustRegister()
}
