package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ResearchMetrics records the fan-out of research requests: how they resolve
// and how long upstream calls take. A zero-value instance is a no-op, so
// callers never need nil checks before observing.
type ResearchMetrics struct {
	outcomes        *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	quotaUnits      prometheus.Counter
}

// NewResearchMetrics registers the research metrics on the provided registerer.
func NewResearchMetrics(reg prometheus.Registerer) *ResearchMetrics {
	if reg == nil {
		return &ResearchMetrics{}
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "research_requests_total",
		Help: "Research requests by terminal outcome.",
	}, []string{"outcome"})
	upstreamLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "research_upstream_duration_seconds",
		Help:    "Duration of upstream data API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	quotaUnits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "research_quota_units_total",
		Help: "External API quota units spent.",
	})
	reg.MustRegister(outcomes, upstreamLatency, quotaUnits)
	return &ResearchMetrics{
		outcomes:        outcomes,
		upstreamLatency: upstreamLatency,
		quotaUnits:      quotaUnits,
	}
}

// IncOutcome counts one terminal request outcome, e.g. "cache_hit" or
// "fetched".
func (m *ResearchMetrics) IncOutcome(outcome string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveUpstream records the duration of one upstream call.
func (m *ResearchMetrics) ObserveUpstream(operation string, duration time.Duration) {
	if m == nil || m.upstreamLatency == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// AddQuotaUnits counts spent quota units.
func (m *ResearchMetrics) AddQuotaUnits(units int) {
	if m == nil || m.quotaUnits == nil || units <= 0 {
		return
	}
	m.quotaUnits.Add(float64(units))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
