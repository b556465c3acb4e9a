package auth

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// The vecs are package globals shared with the handler tests, so every
// assertion here is a delta, not an absolute value.

func TestRecordAuthRequest(t *testing.T) {
	beforeSuccess := testutil.ToFloat64(authRequestsTotal.WithLabelValues("success"))
	beforeFailure := testutil.ToFloat64(authRequestsTotal.WithLabelValues("failure"))

	RecordAuthRequest("success")
	RecordAuthRequest("failure")
	RecordAuthRequest("failure")

	if got := testutil.ToFloat64(authRequestsTotal.WithLabelValues("success")) - beforeSuccess; got != 1 {
		t.Errorf("expected success delta 1, got %v", got)
	}
	if got := testutil.ToFloat64(authRequestsTotal.WithLabelValues("failure")) - beforeFailure; got != 2 {
		t.Errorf("expected failure delta 2, got %v", got)
	}
}

func TestRecordForbiddenAttempt(t *testing.T) {
	before := testutil.ToFloat64(forbiddenAttempts.WithLabelValues("DELETE"))

	RecordForbiddenAttempt("DELETE")

	if got := testutil.ToFloat64(forbiddenAttempts.WithLabelValues("DELETE")) - before; got != 1 {
		t.Errorf("expected delta 1, got %v", got)
	}
}

func TestRecordDurations(t *testing.T) {
	// Histograms only grow; recording must not panic and must register
	// observations.
	RecordAuthDuration(0.025)
	RecordAuthzCheckDuration(0.0004)

	if c := testutil.CollectAndCount(authDuration); c == 0 {
		t.Error("expected auth duration histogram to be collectable")
	}
	if c := testutil.CollectAndCount(authzCheckDuration); c == 0 {
		t.Error("expected authz check histogram to be collectable")
	}
}
