package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	if got := FromContext(context.Background()); got != "" {
		t.Errorf("FromContext on empty context = %q, want empty", got)
	}

	ctx := WithRequestID(context.Background(), "req-42")
	if got := FromContext(ctx); got != "req-42" {
		t.Errorf("FromContext = %q, want req-42", got)
	}
}

func TestMiddlewareGeneratesID(t *testing.T) {
	t.Parallel()

	var seenInContext string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenInContext = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/channels", nil))

	header := rr.Header().Get(RequestIDHeader)
	if header == "" {
		t.Fatal("no request ID in response header")
	}
	if _, err := uuid.Parse(header); err != nil {
		t.Errorf("generated request ID %q is not a UUID: %v", header, err)
	}
	if seenInContext != header {
		t.Errorf("context ID %q != header ID %q", seenInContext, header)
	}
}

func TestMiddlewarePropagatesClientID(t *testing.T) {
	t.Parallel()

	// Gateways upstream of the API set their own IDs; those win so one
	// ID follows the request through every hop's logs.
	var seenInContext string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenInContext = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	req.Header.Set(RequestIDHeader, "gateway-7f3a")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seenInContext != "gateway-7f3a" {
		t.Errorf("context ID = %q, want gateway-7f3a", seenInContext)
	}
	if got := rr.Header().Get(RequestIDHeader); got != "gateway-7f3a" {
		t.Errorf("echoed header = %q, want gateway-7f3a", got)
	}
}

func TestMiddlewareIDsAreUnique(t *testing.T) {
	t.Parallel()

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
		id := rr.Header().Get(RequestIDHeader)
		if seen[id] {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = true
	}
}

func TestFromContextWrongValueType(t *testing.T) {
	t.Parallel()

	// A value stored under the same key with a wrong type must not panic.
	ctx := context.WithValue(context.Background(), RequestIDKey, 123)
	if got := FromContext(ctx); got != "" {
		t.Errorf("FromContext with non-string value = %q, want empty", got)
	}
}
