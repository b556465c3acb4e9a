// Package slo derives service-level gauges from the HTTP request metrics
// already in the registry, so the targets can be dashboarded and alerted
// on without PromQL recording rules.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Targets for the catalog API. Browse and search answer from indexes or
// cache, so the latency targets are tight; availability leaves room for
// the nightly full import holding write locks on SQLite deployments.
const (
	// AvailabilitySLO is the target share of requests answered without
	// a 5xx, in percent.
	AvailabilitySLO = 99.9

	// LatencyP95SLO and LatencyP99SLO are latency targets in seconds.
	LatencyP95SLO = 0.200
	LatencyP99SLO = 0.500

	// ErrorRateSLO is the maximum acceptable 5xx ratio.
	ErrorRateSLO = 0.001
)

// The gauges are recomputed by the Updater, not on the request path.
var (
	SLOAvailability = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_availability_ratio",
		Help: "Share of requests answered without a 5xx (0-1), target 0.999.",
	})

	SLOLatencyP95 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p95_seconds",
		Help: "Estimated p95 request latency in seconds, target 0.200.",
	})

	SLOLatencyP99 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p99_seconds",
		Help: "Estimated p99 request latency in seconds, target 0.500.",
	})

	SLOErrorRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_error_rate_ratio",
		Help: "Share of requests answered with a 5xx (0-1), target 0.001.",
	})
)

// UpdateAvailability sets the availability gauge,
// (total - 5xx) / total over all recorded requests.
func UpdateAvailability(ratio float64) {
	SLOAvailability.Set(ratio)
}

// UpdateLatencyP95 sets the p95 latency gauge in seconds.
func UpdateLatencyP95(seconds float64) {
	SLOLatencyP95.Set(seconds)
}

// UpdateLatencyP99 sets the p99 latency gauge in seconds.
func UpdateLatencyP99(seconds float64) {
	SLOLatencyP99.Set(seconds)
}

// UpdateErrorRate sets the error-rate gauge, 5xx / total.
func UpdateErrorRate(ratio float64) {
	SLOErrorRate.Set(ratio)
}
