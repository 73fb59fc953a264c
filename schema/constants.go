// Package schema has the plain data types shared by the engine, the record
// store and the output layer.
package schema

// Custom string types for type safety.
type (
	// BreakdownKey represents keys used in scoring breakdowns.
	BreakdownKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// Rating is an ordinal classification derived from a composite score.
	Rating string

	// Level is a low/medium/high style ordinal used for risk, threat and severity.
	Level string

	// TrendDirection describes how a metric moved between two halves of a window.
	TrendDirection string

	// Polarity says whether larger values of a metric are better or worse.
	Polarity string

	// SortDirection is the ordering used by rankings.
	SortDirection string

	// Tracker names one of the dashboard trackers.
	Tracker string
)

// Breakdown keys used in the scoring logic.
const (
	BreakdownFCR        BreakdownKey = "fcr"
	BreakdownWeightGain BreakdownKey = "weight_gain"
	BreakdownMortality  BreakdownKey = "mortality"

	BreakdownIssueLoad    BreakdownKey = "issue_load"
	BreakdownSeverity     BreakdownKey = "severity"
	BreakdownVerification BreakdownKey = "verification"

	BreakdownMarketShare BreakdownKey = "market_share"
	BreakdownSwitching   BreakdownKey = "switching"
	BreakdownSentiment   BreakdownKey = "sentiment"
	BreakdownMentions    BreakdownKey = "mentions"

	BreakdownScore BreakdownKey = "score"
)

// SeriesField names a numeric record field that can be projected into a chart series.
type SeriesField string

// Series fields per tracker.
const (
	FCRField            SeriesField = "fcr"
	WeightGainField     SeriesField = "weight_gain"
	MortalityField      SeriesField = "mortality"
	ScoreField          SeriesField = "score"
	RevenueLossField    SeriesField = "revenue_loss"
	FarmSizeField       SeriesField = "farm_size"
	MonthlyRevenueField SeriesField = "monthly_revenue"
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// Feed performance ratings.
const (
	Excellent Rating = "excellent"
	Good      Rating = "good"
	Average   Rating = "average"
	Poor      Rating = "poor"
)

// Farm health ratings.
const (
	Healthy  Rating = "healthy"
	AtRisk   Rating = "at-risk"
	Critical Rating = "critical"
)

// Levels for risk, threat and severity.
const (
	LowLevel      Level = "low"
	MediumLevel   Level = "medium"
	HighLevel     Level = "high"
	CriticalLevel Level = "critical"
)

// Trend directions.
const (
	Improving TrendDirection = "improving"
	Stable    TrendDirection = "stable"
	Declining TrendDirection = "declining"
)

// Metric polarities.
const (
	LowerIsBetter  Polarity = "lower"
	HigherIsBetter Polarity = "higher"
)

// Sort directions.
const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// All trackers supported.
const (
	FeedTracker       Tracker = "feed"
	CompetitorTracker Tracker = "competitors"
	PromotionTracker  Tracker = "promos"
	SwitchingTracker  Tracker = "switching"
	DealerTracker     Tracker = "dealers"
	FarmTracker       Tracker = "farms"
)

// Dealer issue statuses.
const (
	IssueOpen       = "open"
	IssueInProgress = "in-progress"
	IssueResolved   = "resolved"
	IssueClosed     = "closed"
)

// Promotion statuses.
const (
	PromoActive   = "active"
	PromoUpcoming = "upcoming"
	PromoExpired  = "expired"
)

// NotAvailable is reported when a "top" selection runs over an empty set.
const NotAvailable = "N/A"

// AllOption is the command line spelling of an unconstrained filter field.
const AllOption = "all"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidSeriesTrackers lists the trackers that can be projected into a chart series.
var ValidSeriesTrackers = map[Tracker]struct{}{
	FeedTracker:      {},
	DealerTracker:    {},
	SwitchingTracker: {},
	FarmTracker:      {},
}

// ValidSeriesFields lists the series fields each tracker supports. The first
// entry is the default.
var ValidSeriesFields = map[Tracker][]SeriesField{
	FeedTracker:      {FCRField, WeightGainField, MortalityField, ScoreField},
	DealerTracker:    {RevenueLossField},
	SwitchingTracker: {RevenueLossField},
	FarmTracker:      {FarmSizeField, MonthlyRevenueField},
}

// ValidFeedRankKeys lists the keys the feed ranking can sort by.
var ValidFeedRankKeys = map[BreakdownKey]struct{}{
	BreakdownScore:      {},
	BreakdownFCR:        {},
	BreakdownWeightGain: {},
	BreakdownMortality:  {},
}

// ValidSortDirections lists all valid sort directions.
var ValidSortDirections = map[SortDirection]struct{}{
	Asc:  {},
	Desc: {},
}
