package http

import (
	"net/http"
	"strconv"
	"time"

	"kuckmal/internal/handler/http/pathutil"
	"kuckmal/internal/handler/http/responsewriter"
	"kuckmal/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsMiddleware records HTTP request metrics including duration, size, and status codes.
// It uses path normalization so scanner probes and the swagger subtree cannot
// inflate the label cardinality of the request metrics.
// The middleware tracks:
// - Active connections (gauge incremented/decremented per request)
// - Request duration
// - Request and response sizes
// - Status code distribution
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		// Normalize path to prevent cardinality explosion
		// Example: /wp-login.php -> /other
		normalizedPath := pathutil.NormalizePath(r.URL.Path)

		requestSize := 0
		if r.ContentLength > 0 {
			requestSize = int(r.ContentLength)
		}

		// Wrap response writer to capture status code and response size
		rw := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(rw, r)
		duration := time.Since(start)

		status := strconv.Itoa(rw.StatusCode())
		metrics.RecordHTTPRequest(r.Method, normalizedPath, status, duration, requestSize, rw.BytesWritten())
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
