package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupExporter installs an in-memory exporter and rebinds the package
// tracer to it for the duration of the test.
func setupExporter(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("kuckmal")
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		tracer = otel.Tracer("kuckmal")
	})
	return exporter, tp
}

func TestMiddleware_SpansBrowseRequest(t *testing.T) {
	exporter, tp := setupExporter(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[],"count":0,"total":0}`))
	}))

	req := httptest.NewRequest("GET", "/api/titles?channel=ARD&theme=Tatort", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	span := spans[0]
	// The query string stays out of the span name so "titles by theme"
	// aggregates as one operation.
	if span.Name != "GET /api/titles" {
		t.Errorf("span name = %q, want %q", span.Name, "GET /api/titles")
	}

	want := map[string]string{"http.method": "GET", "http.path": "/api/titles"}
	var gotStatus int64
	for _, attr := range span.Attributes {
		if expected, ok := want[string(attr.Key)]; ok {
			if attr.Value.AsString() != expected {
				t.Errorf("%s = %q, want %q", attr.Key, attr.Value.AsString(), expected)
			}
			delete(want, string(attr.Key))
		}
		if attr.Key == "http.status_code" {
			gotStatus = attr.Value.AsInt64()
		}
	}
	for key := range want {
		t.Errorf("attribute %s not found", key)
	}
	if gotStatus != 200 {
		t.Errorf("http.status_code = %d, want 200", gotStatus)
	}
}

func TestMiddleware_AddsTraceIDToResponse(t *testing.T) {
	setupExporter(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/channels", nil))

	traceID := rr.Header().Get("X-Trace-Id")
	if traceID == "" {
		t.Fatal("X-Trace-Id header missing")
	}
	if len(traceID) != 32 {
		t.Errorf("trace ID length = %d, want 32 hex chars", len(traceID))
	}
}

func TestMiddleware_PropagatesUpstreamTraceContext(t *testing.T) {
	// A reverse proxy in front of the API sends W3C traceparent; the
	// span must join that trace rather than start a fresh one.
	exporter, tp := setupExporter(t)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/search", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if got := spans[0].SpanContext.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace ID = %s, want the propagated one", got)
	}
}

func TestMiddleware_ErrorAttribute(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		status    int
		wantError bool
	}{
		{name: "failed search marks error", path: "/api/search", status: http.StatusInternalServerError, wantError: true},
		{name: "unknown entry is not an error", path: "/api/entries/ARD/Tatort/Unbekannt", status: http.StatusNotFound, wantError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, tp := setupExporter(t)

			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest("GET", tt.path, nil))
			_ = tp.ForceFlush(context.Background())

			spans := exporter.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}
			gotError := false
			for _, attr := range spans[0].Attributes {
				if attr.Key == "error" && attr.Value.AsBool() {
					gotError = true
				}
			}
			if gotError != tt.wantError {
				t.Errorf("error attribute = %v, want %v", gotError, tt.wantError)
			}
		})
	}
}

func TestResponseWriter_CapturesStatusCode(t *testing.T) {
	rw := newResponseWriter(httptest.NewRecorder())

	if rw.statusCode != http.StatusOK {
		t.Errorf("default status = %d, want 200", rw.statusCode)
	}

	rw.WriteHeader(http.StatusAccepted)
	if rw.statusCode != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rw.statusCode)
	}
}

func TestResponseWriter_FlushPassesThrough(t *testing.T) {
	// The sync progress stream flushes after every event; a recorder
	// tracks whether the flush reached the wrapped writer.
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	_, _ = rw.Write([]byte("event: progress\ndata: {\"imported\":5000}\n\n"))
	rw.Flush()

	if !rec.Flushed {
		t.Error("Flush did not reach the underlying writer")
	}
}
