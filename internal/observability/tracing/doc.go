// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware extracts W3C trace context from incoming requests,
// opens a server span per request, and echoes the trace ID in the
// X-Trace-Id response header so clients can correlate their logs with
// server-side traces. Without a configured exporter the spans are
// no-ops, so the middleware is safe to keep in the chain everywhere.
//
// Example usage:
//
//	mux := http.NewServeMux()
//	handler := tracing.Middleware(mux)
//
//	func importList(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "filmliste-import")
//	    defer span.End()
//	    // ...
//	}
package tracing
