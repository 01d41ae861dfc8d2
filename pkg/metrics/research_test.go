package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewResearchMetricsNilRegisterer(t *testing.T) {
	m := NewResearchMetrics(nil)
	if m == nil {
		t.Fatal("expected a usable instance")
	}
	// No-op instance must tolerate observations.
	m.IncOutcome("fetched")
	m.ObserveUpstream("search", time.Second)
	m.AddQuotaUnits(100)
}

func TestResearchMetricsNilReceiver(t *testing.T) {
	var m *ResearchMetrics
	m.IncOutcome("fetched")
	m.ObserveUpstream("search", time.Second)
	m.AddQuotaUnits(1)
}

func TestResearchMetricsRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewResearchMetrics(reg)

	m.IncOutcome("cache_hit")
	m.IncOutcome("cache_hit")
	m.IncOutcome("")
	m.ObserveUpstream("videos", 250*time.Millisecond)
	m.AddQuotaUnits(101)
	m.AddQuotaUnits(-5)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	outcomes := byName["research_requests_total"]
	if outcomes == nil {
		t.Fatal("missing research_requests_total")
	}
	counts := map[string]float64{}
	for _, metric := range outcomes.GetMetric() {
		counts[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
	}
	if counts["cache_hit"] != 2 {
		t.Fatalf("cache_hit = %v, want 2", counts["cache_hit"])
	}
	if counts["unknown"] != 1 {
		t.Fatalf("unknown = %v, want 1", counts["unknown"])
	}

	units := byName["research_quota_units_total"]
	if units == nil {
		t.Fatal("missing research_quota_units_total")
	}
	if got := units.GetMetric()[0].GetCounter().GetValue(); got != 101 {
		t.Fatalf("quota units = %v, want 101", got)
	}

	latency := byName["research_upstream_duration_seconds"]
	if latency == nil {
		t.Fatal("missing research_upstream_duration_seconds")
	}
	if got := latency.GetMetric()[0].GetHistogram().GetSampleCount(); got != 1 {
		t.Fatalf("latency samples = %v, want 1", got)
	}
}
