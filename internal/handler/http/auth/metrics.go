package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authRequestsTotal counts token requests by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication requests by result",
		},
		[]string{"result"}, // result: success | failure
	)

	// authDuration tracks how long token issuance takes.
	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Authentication duration",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	// authzCheckDuration tracks bearer-token verification duration.
	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Authorization check duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	// forbiddenAttempts counts valid tokens rejected for missing the admin
	// role, by method.
	forbiddenAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forbidden_attempts_total",
			Help: "Forbidden access attempts by method",
		},
		[]string{"method"},
	)
)

// RecordAuthRequest records an authentication request.
func RecordAuthRequest(result string) {
	authRequestsTotal.WithLabelValues(result).Inc()
}

// RecordAuthDuration records authentication duration.
func RecordAuthDuration(durationSeconds float64) {
	authDuration.Observe(durationSeconds)
}

// RecordAuthzCheckDuration records authorization check duration.
func RecordAuthzCheckDuration(durationSeconds float64) {
	authzCheckDuration.Observe(durationSeconds)
}

// RecordForbiddenAttempt records a forbidden access attempt.
func RecordForbiddenAttempt(method string) {
	forbiddenAttempts.WithLabelValues(method).Inc()
}
