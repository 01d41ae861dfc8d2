package research

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creatorlift/creatorlift-backend/pkg/enums"
)

func TestDemandScore(t *testing.T) {
	tests := []struct {
		name           string
		videoCount     int
		avgViews       int64
		avgViewsPerDay float64
		want           int
	}{
		{"no data", 0, 0, 0, 0},
		{"busy niche", 50, 100_000, 1500, 94},
		{"small niche", 3, 500, 10, 44},
		{"caps hold under extreme inputs", 1_000_000, 10_000_000_000, 1_000_000_000, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DemandScore(tc.videoCount, tc.avgViews, tc.avgViewsPerDay))
		})
	}
}

func TestCompetitionScore(t *testing.T) {
	tests := []struct {
		name           string
		videoCount     int
		avgViews       int64
		uniqueChannels int
		want           int
	}{
		{"no data", 0, 0, 0, 0},
		{"crowded field", 50, 100_000, 20, 83},
		{"few entrants", 3, 500, 3, 35},
		{"caps hold under extreme inputs", 1_000_000, 10_000_000_000, 1_000_000, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CompetitionScore(tc.videoCount, tc.avgViews, tc.uniqueChannels))
		})
	}
}

func TestOpportunityScore(t *testing.T) {
	// Zero competition passes demand through untouched.
	assert.Equal(t, 100, OpportunityScore(100, 0))
	// Full competition suppresses demand by 70%, never to zero.
	assert.Equal(t, 30, OpportunityScore(100, 100))
	assert.Equal(t, 39, OpportunityScore(94, 83))
	assert.Equal(t, 0, OpportunityScore(0, 0))
}

func TestScoreBandBoundaries(t *testing.T) {
	assert.Equal(t, enums.ScoreLabelLow, ScoreBand(0))
	assert.Equal(t, enums.ScoreLabelLow, ScoreBand(29))
	assert.Equal(t, enums.ScoreLabelMedium, ScoreBand(30))
	assert.Equal(t, enums.ScoreLabelMedium, ScoreBand(69))
	assert.Equal(t, enums.ScoreLabelHigh, ScoreBand(70))
	assert.Equal(t, enums.ScoreLabelHigh, ScoreBand(100))
}

func TestOpportunityBandBoundaries(t *testing.T) {
	assert.Equal(t, enums.OpportunityLabelWeak, OpportunityBand(34))
	assert.Equal(t, enums.OpportunityLabelGood, OpportunityBand(35))
	assert.Equal(t, enums.OpportunityLabelGood, OpportunityBand(64))
	assert.Equal(t, enums.OpportunityLabelStrong, OpportunityBand(65))
}

func TestPopularitySignal(t *testing.T) {
	assert.Equal(t, 0, PopularitySignal(0))
	assert.Equal(t, 50, PopularitySignal(5))
	assert.Equal(t, 100, PopularitySignal(10))
	assert.Equal(t, 100, PopularitySignal(23))
	assert.Equal(t, 0, PopularitySignal(-1))
}

func TestCompositeForRuleOrder(t *testing.T) {
	tests := []struct {
		name        string
		popularity  int
		opportunity int
		want        enums.CompositeLabel
	}{
		// Matches both balanced and audience-led; balanced wins first.
		{"balanced beats audience-led", 100, 80, enums.CompositeLabelBalanced},
		{"balanced at thresholds", 50, 50, enums.CompositeLabelBalanced},
		{"audience-led", 60, 30, enums.CompositeLabelAudienceLed},
		{"market-led", 40, 60, enums.CompositeLabelMarketLed},
		{"neither threshold met", 55, 45, enums.CompositeLabelLowPriority},
		{"low everywhere", 10, 10, enums.CompositeLabelLowPriority},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CompositeFor(tc.popularity, tc.opportunity))
		})
	}
}

func TestBuildExplanation(t *testing.T) {
	m := Metrics{VideoCount: 50, AvgViews: 100_000, UniqueChannels: 20}
	explanation := BuildExplanation(m, enums.ScoreLabelHigh, enums.ScoreLabelHigh, enums.OpportunityLabelGood)

	assert.Equal(t, "high|50|100000", explanation.Demand)
	assert.Equal(t, "high|20", explanation.Competition)
	assert.Equal(t, "growingDemand", explanation.Opportunity)
}

func TestOpportunityCodeTable(t *testing.T) {
	tests := []struct {
		name        string
		demand      enums.ScoreLabel
		competition enums.ScoreLabel
		opportunity enums.OpportunityLabel
		want        string
	}{
		{"ideal", enums.ScoreLabelHigh, enums.ScoreLabelLow, enums.OpportunityLabelStrong, "ideal"},
		{"strong niche", enums.ScoreLabelMedium, enums.ScoreLabelMedium, enums.OpportunityLabelStrong, "strongNiche"},
		{"low demand", enums.ScoreLabelLow, enums.ScoreLabelLow, enums.OpportunityLabelWeak, "lowDemand"},
		{"underserved", enums.ScoreLabelMedium, enums.ScoreLabelLow, enums.OpportunityLabelGood, "underserved"},
		{"growing demand", enums.ScoreLabelHigh, enums.ScoreLabelMedium, enums.OpportunityLabelGood, "growingDemand"},
		{"moderate", enums.ScoreLabelMedium, enums.ScoreLabelMedium, enums.OpportunityLabelGood, "moderate"},
		{"crowded fallback", enums.ScoreLabelHigh, enums.ScoreLabelHigh, enums.OpportunityLabelWeak, "highCompetition"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, opportunityCode(tc.demand, tc.competition, tc.opportunity))
		})
	}
}
