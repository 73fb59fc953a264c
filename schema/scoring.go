package schema

import "maps"

// Band maps every score at or above Min to Rating.
// Band tables are ordered by descending Min.
type Band struct {
	Min    float64 `json:"min"`
	Rating Rating  `json:"rating"`
}

// PointBucket awards Points to values at or above Min.
// Bucket tables are ordered by descending Min.
type PointBucket struct {
	Min    float64 `json:"min"`
	Points int     `json:"points"`
}

// ThreatCutoffs are the point totals at which a brand becomes a medium or high threat.
type ThreatCutoffs struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
}

// ScoringConfig is the full set of weights and thresholds used by the trackers.
type ScoringConfig struct {
	FeedWeights map[BreakdownKey]float64 `json:"feedWeights"`
	FarmWeights map[BreakdownKey]float64 `json:"farmWeights"`
	FeedBands   []Band                   `json:"feedBands"`
	HealthBands []Band                   `json:"healthBands"`
	Threat      ThreatCutoffs            `json:"threat"`
}

// Trend epsilons. A change smaller than or equal to epsilon is stable.
const (
	FCREpsilon         = 0.05
	WeightGainEpsilon  = 0.05
	MortalityEpsilon   = 0.1
	ScoreEpsilon       = 1.0
	RevenueLossEpsilon = 1000.0
)

// Threat point tables. The bucket values are heuristics kept for parity with
// the dashboard and are not a calibrated model.
var (
	MarketShareBuckets = []PointBucket{{Min: 20, Points: 3}, {Min: 10, Points: 2}, {Min: 5, Points: 1}}
	SwitchingBuckets   = []PointBucket{{Min: 3, Points: 3}, {Min: 2, Points: 2}, {Min: 1, Points: 1}}
	MentionBuckets     = []PointBucket{{Min: 100, Points: 3}, {Min: 50, Points: 2}, {Min: 20, Points: 1}}
	SentimentPoints    = map[string]int{"positive": 2, "neutral": 1, "negative": 0}
)

// SeverityPoints weighs open farm issues for the health score.
var SeverityPoints = map[Level]int{
	LowLevel:      1,
	MediumLevel:   2,
	HighLevel:     3,
	CriticalLevel: 4,
}

// DefaultFeedBands returns the feed performance rating bands.
func DefaultFeedBands() []Band {
	return []Band{
		{Min: 85, Rating: Excellent},
		{Min: 70, Rating: Good},
		{Min: 50, Rating: Average},
		{Min: 0, Rating: Poor},
	}
}

// DefaultHealthBands returns the farm health rating bands.
func DefaultHealthBands() []Band {
	return []Band{
		{Min: 80, Rating: Healthy},
		{Min: 50, Rating: AtRisk},
		{Min: 0, Rating: Critical},
	}
}

// DefaultThreatCutoffs returns the threat level cut points.
func DefaultThreatCutoffs() ThreatCutoffs {
	return ThreatCutoffs{High: 8, Medium: 5}
}

// GetDefaultWeights returns the default weight map for a tracker.
// Equal weights make the composite an unweighted mean.
func GetDefaultWeights(tracker Tracker) map[BreakdownKey]float64 {
	switch tracker {
	case FarmTracker:
		return map[BreakdownKey]float64{
			BreakdownIssueLoad:    1,
			BreakdownSeverity:     1,
			BreakdownVerification: 1,
		}
	default: // FeedTracker
		return map[BreakdownKey]float64{
			BreakdownFCR:        1,
			BreakdownWeightGain: 1,
			BreakdownMortality:  1,
		}
	}
}

// DefaultScoringConfig returns the scoring configuration used when nothing is overridden.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		FeedWeights: GetDefaultWeights(FeedTracker),
		FarmWeights: GetDefaultWeights(FarmTracker),
		FeedBands:   DefaultFeedBands(),
		HealthBands: DefaultHealthBands(),
		Threat:      DefaultThreatCutoffs(),
	}
}

// Clone returns a deep copy of the scoring configuration.
func (c ScoringConfig) Clone() ScoringConfig {
	clone := c
	clone.FeedWeights = maps.Clone(c.FeedWeights)
	clone.FarmWeights = maps.Clone(c.FarmWeights)
	clone.FeedBands = append([]Band(nil), c.FeedBands...)
	clone.HealthBands = append([]Band(nil), c.HealthBands...)
	return clone
}
