package research

import (
	"fmt"
	"math"

	"github.com/creatorlift/creatorlift-backend/pkg/enums"
	"github.com/creatorlift/creatorlift-backend/pkg/types"
)

// All sub-scores are integers in [0, 100]. Each input feeds through log10
// dampening so outlier view counts cannot saturate the scale linearly, and
// each signal's contribution is capped so none dominates alone.

// DemandScore blends search volume (up to 40), raw popularity (up to 40), and
// recency-weighted velocity (up to 20).
func DemandScore(videoCount int, avgViews int64, avgViewsPerDay float64) int {
	volume := math.Min(40, math.Log10(float64(videoCount)+1)*20)
	popularity := math.Min(40, math.Log10(float64(avgViews)+1)*8)
	velocity := math.Min(20, math.Log10(avgViewsPerDay+1)*10)
	return clampScore(int(math.Round(volume + popularity + velocity)))
}

// CompetitionScore reads many videos and many distinct channels as a
// saturated niche, and high average views as entrenched incumbents.
func CompetitionScore(videoCount int, avgViews int64, uniqueChannels int) int {
	saturation := math.Min(50, math.Log10(float64(videoCount)+1)*25)
	diversity := math.Min(30, math.Log10(float64(uniqueChannels)+1)*15)
	entrenchment := math.Min(20, math.Log10(float64(avgViews)+1)*4)
	return clampScore(int(math.Round(saturation + diversity + entrenchment)))
}

// OpportunityScore suppresses demand by up to 70% under full competition;
// demand always retains residual weight and is never zeroed out entirely.
func OpportunityScore(demandScore, competitionScore int) int {
	raw := float64(demandScore) * (1 - (float64(competitionScore)/100)*0.7)
	return clampScore(int(math.Round(raw)))
}

// PopularitySignal normalizes raw vote counts onto the score scale.
func PopularitySignal(votes int) int {
	signal := votes * 10
	if signal > 100 {
		return 100
	}
	if signal < 0 {
		return 0
	}
	return signal
}

// ScoreBand buckets demand and competition scores.
func ScoreBand(score int) enums.ScoreLabel {
	switch {
	case score < 30:
		return enums.ScoreLabelLow
	case score < 70:
		return enums.ScoreLabelMedium
	default:
		return enums.ScoreLabelHigh
	}
}

// OpportunityBand buckets the opportunity score.
func OpportunityBand(score int) enums.OpportunityLabel {
	switch {
	case score < 35:
		return enums.OpportunityLabelWeak
	case score < 65:
		return enums.OpportunityLabelGood
	default:
		return enums.OpportunityLabelStrong
	}
}

// CompositeFor blends the audience popularity signal with the computed
// opportunity. Rules are evaluated in order; the first match wins, so a case
// satisfying both the balanced and audience-led conditions resolves to
// balanced.
func CompositeFor(popularity, opportunity int) enums.CompositeLabel {
	switch {
	case popularity >= 50 && opportunity >= 50:
		return enums.CompositeLabelBalanced
	case popularity >= 60 && opportunity >= 30:
		return enums.CompositeLabelAudienceLed
	case opportunity >= 60 && popularity < 50:
		return enums.CompositeLabelMarketLed
	default:
		return enums.CompositeLabelLowPriority
	}
}

// BuildExplanation emits the three coded reason strings. Codes carry the
// label plus raw parameters so the front end can localize without re-deriving
// numbers.
func BuildExplanation(m Metrics, demandLabel, competitionLabel enums.ScoreLabel, opportunityLabel enums.OpportunityLabel) types.Explanation {
	return types.Explanation{
		Demand:      fmt.Sprintf("%s|%d|%d", demandLabel, m.VideoCount, m.AvgViews),
		Competition: fmt.Sprintf("%s|%d", competitionLabel, m.UniqueChannels),
		Opportunity: opportunityCode(demandLabel, competitionLabel, opportunityLabel),
	}
}

// opportunityCode selects a fixed reason code from the label combination.
func opportunityCode(demand, competition enums.ScoreLabel, opportunity enums.OpportunityLabel) string {
	switch {
	case opportunity == enums.OpportunityLabelStrong && demand == enums.ScoreLabelHigh && competition == enums.ScoreLabelLow:
		return "ideal"
	case opportunity == enums.OpportunityLabelStrong:
		return "strongNiche"
	case opportunity == enums.OpportunityLabelWeak && demand == enums.ScoreLabelLow:
		return "lowDemand"
	case opportunity == enums.OpportunityLabelGood && competition == enums.ScoreLabelLow:
		return "underserved"
	case opportunity == enums.OpportunityLabelGood && demand == enums.ScoreLabelHigh:
		return "growingDemand"
	case opportunity == enums.OpportunityLabelGood:
		return "moderate"
	default:
		return "highCompetition"
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
