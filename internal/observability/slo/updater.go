package slo

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// DefaultUpdateInterval is how often the SLO gauges are recomputed.
const DefaultUpdateInterval = time.Minute

// Updater periodically recomputes the SLO gauges from the HTTP request
// metrics already collected in the registry, so the targets can be
// alerted on without PromQL recording rules.
type Updater struct {
	// Gatherer is the registry to read request metrics from.
	Gatherer prometheus.Gatherer
	// Interval between recomputations. Zero means DefaultUpdateInterval.
	Interval time.Duration
	Logger   *slog.Logger
}

// NewUpdater creates an updater over the default registry.
func NewUpdater(logger *slog.Logger) *Updater {
	return &Updater{
		Gatherer: prometheus.DefaultGatherer,
		Interval: DefaultUpdateInterval,
		Logger:   logger,
	}
}

// Run recomputes the gauges on every tick until the context is canceled.
func (u *Updater) Run(ctx context.Context) {
	interval := u.Interval
	if interval <= 0 {
		interval = DefaultUpdateInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.UpdateOnce()
		}
	}
}

// UpdateOnce recomputes all four gauges from the current metric values.
// With no recorded requests yet the gauges keep their previous values.
func (u *Updater) UpdateOnce() {
	families, err := u.Gatherer.Gather()
	if err != nil {
		if u.Logger != nil {
			u.Logger.Warn("SLO gauge update failed", slog.Any("error", err))
		}
		return
	}

	for _, mf := range families {
		switch mf.GetName() {
		case "http_requests_total":
			updateTrafficGauges(mf)
		case "http_request_duration_seconds":
			updateLatencyGauges(mf)
		}
	}
}

// updateTrafficGauges derives availability and error rate from the
// request counter: 5xx responses count against both.
func updateTrafficGauges(mf *dto.MetricFamily) {
	var total, failed float64
	for _, m := range mf.GetMetric() {
		v := m.GetCounter().GetValue()
		total += v
		if isServerError(m.GetLabel()) {
			failed += v
		}
	}
	if total == 0 {
		return
	}
	UpdateAvailability((total - failed) / total)
	UpdateErrorRate(failed / total)
}

func isServerError(labels []*dto.LabelPair) bool {
	for _, lp := range labels {
		if lp.GetName() == "status" {
			s := lp.GetValue()
			return len(s) == 3 && s[0] == '5'
		}
	}
	return false
}

func updateLatencyGauges(mf *dto.MetricFamily) {
	merged := mergeBuckets(mf)
	if merged.count == 0 {
		return
	}
	UpdateLatencyP95(merged.quantile(0.95))
	UpdateLatencyP99(merged.quantile(0.99))
}

// mergedHistogram holds bucket counts summed over all label sets of one
// histogram family. Summing cumulative counts per upper bound is valid
// because every child shares the same bucket layout.
type mergedHistogram struct {
	bounds     []float64          // finite upper bounds, ascending
	cumulative map[float64]uint64 // cumulative count per bound
	count      uint64
}

func mergeBuckets(mf *dto.MetricFamily) *mergedHistogram {
	merged := &mergedHistogram{cumulative: make(map[float64]uint64)}
	for _, m := range mf.GetMetric() {
		h := m.GetHistogram()
		merged.count += h.GetSampleCount()
		for _, b := range h.GetBucket() {
			bound := b.GetUpperBound()
			if math.IsInf(bound, +1) || math.IsNaN(bound) {
				continue
			}
			if _, seen := merged.cumulative[bound]; !seen {
				merged.bounds = append(merged.bounds, bound)
			}
			merged.cumulative[bound] += b.GetCumulativeCount()
		}
	}
	sort.Float64s(merged.bounds)
	return merged
}

// quantile estimates the q-quantile by linear interpolation inside the
// bucket the target rank falls into, the way histogram_quantile does.
// Ranks beyond the last finite bucket clamp to that bucket's bound.
func (h *mergedHistogram) quantile(q float64) float64 {
	rank := q * float64(h.count)

	var prevBound float64
	var prevCum uint64
	for _, bound := range h.bounds {
		cum := h.cumulative[bound]
		if float64(cum) >= rank {
			bucketCount := cum - prevCum
			if bucketCount == 0 {
				return bound
			}
			fraction := (rank - float64(prevCum)) / float64(bucketCount)
			return prevBound + (bound-prevBound)*fraction
		}
		prevBound = bound
		prevCum = cum
	}
	if len(h.bounds) == 0 {
		return 0
	}
	return h.bounds[len(h.bounds)-1]
}
