package enums

// ScoreLabel buckets demand and competition scores into coarse bands.
type ScoreLabel string

const (
	ScoreLabelLow    ScoreLabel = "low"
	ScoreLabelMedium ScoreLabel = "medium"
	ScoreLabelHigh   ScoreLabel = "high"
)

// OpportunityLabel buckets the opportunity score.
type OpportunityLabel string

const (
	OpportunityLabelWeak   OpportunityLabel = "weak"
	OpportunityLabelGood   OpportunityLabel = "good"
	OpportunityLabelStrong OpportunityLabel = "strong"
)

// CompositeLabel classifies an idea by blending audience popularity with
// computed market opportunity.
type CompositeLabel string

const (
	CompositeLabelBalanced    CompositeLabel = "balanced"
	CompositeLabelAudienceLed CompositeLabel = "audience-led"
	CompositeLabelMarketLed   CompositeLabel = "market-led"
	CompositeLabelLowPriority CompositeLabel = "low-priority"
)
