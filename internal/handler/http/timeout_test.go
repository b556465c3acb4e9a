package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTimeout_FastRequestPassesThrough(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":["3Sat","ARD","ZDF"],"count":3}`))
	})

	wrapped := Timeout(1 * time.Second)(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/channels", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ARD"`) {
		t.Errorf("channel list body lost: %q", rec.Body.String())
	}
}

func TestTimeout_SlowSearchGets504(t *testing.T) {
	// A search that scans too long must be cut off with the standard
	// JSON error envelope, not left to hold the connection open.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("should not reach the client"))
	})

	wrapped := Timeout(50 * time.Millisecond)(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/search?query=tatort", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected status 504, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"timeout"`) {
		t.Errorf("expected timeout error envelope, got %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestTimeout_HandlerSeesCancellation(t *testing.T) {
	// The query layer aborts on ctx.Done; the middleware must actually
	// cancel the request context so that abort fires.
	canceled := make(chan struct{}, 1)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			canceled <- struct{}{}
		case <-time.After(500 * time.Millisecond):
		}
	})

	wrapped := Timeout(50 * time.Millisecond)(handler)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/titles", nil))

	select {
	case <-canceled:
	case <-time.After(300 * time.Millisecond):
		t.Error("handler never observed the canceled context")
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("expected status 504, got %d", rec.Code)
	}
}

func TestTimeout_DeadlinePropagatesToContext(t *testing.T) {
	deadlineCh := make(chan time.Time, 1)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if deadline, ok := r.Context().Deadline(); ok {
			deadlineCh <- deadline
		}
		w.WriteHeader(http.StatusOK)
	})

	wrapped := Timeout(1 * time.Second)(handler)

	start := time.Now()
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	select {
	case deadline := <-deadlineCh:
		want := start.Add(1 * time.Second)
		if deadline.Before(want.Add(-100*time.Millisecond)) || deadline.After(want.Add(100*time.Millisecond)) {
			t.Errorf("deadline = %v, want around %v", deadline, want)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("handler saw no deadline")
	}
}

func TestTimeout_LateWriteSuppressed(t *testing.T) {
	// Once the 504 went out, a handler crawling back from a slow query
	// must not corrupt the response.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":[],"count":0}`))
	})

	wrapped := Timeout(50 * time.Millisecond)(handler)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/themes", nil))

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("expected status 504, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `"data"`) {
		t.Errorf("late handler write reached the client: %q", rec.Body.String())
	}
}

func TestTimeout_ImplicitWriteHeaderStill200(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"totalEntries":412387}}`))
	})

	wrapped := Timeout(1 * time.Second)(handler)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "412387") {
		t.Errorf("body lost: %q", rec.Body.String())
	}
}

func TestTimeout_MultipleWritesConcatenate(t *testing.T) {
	// Chunked list responses write the envelope in pieces.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[`))
		_, _ = w.Write([]byte(`"ARD","ZDF"`))
		_, _ = w.Write([]byte(`],"count":2}`))
	})

	wrapped := Timeout(1 * time.Second)(handler)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/channels", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != `{"data":["ARD","ZDF"],"count":2}` {
		t.Errorf("body = %q", got)
	}
}
