package schema

// FeedReport is the ranked feed view with its summary.
type FeedReport struct {
	Results []Ranked[FeedResult] `json:"results"`
	Summary FeedMetrics          `json:"summary"`
}

// CompetitorReport is the ranked threat view with its summary.
type CompetitorReport struct {
	Threats []Ranked[BrandThreat] `json:"threats"`
	Summary CompetitorMetrics     `json:"summary"`
}

// PromotionReport lists promotions ranked by discount.
type PromotionReport struct {
	Promotions []Ranked[Promotion] `json:"promotions"`
	Total      int                 `json:"total"`
	Active     int                 `json:"active"`
	ByType     map[string]int      `json:"byType"`
}

// SwitchingReport lists switching risks ranked by revenue at risk.
type SwitchingReport struct {
	Risks         []Ranked[SwitchingRisk] `json:"risks"`
	Total         int                     `json:"total"`
	HighRiskRate  float64                 `json:"highRiskRate"`
	RevenueAtRisk float64                 `json:"revenueAtRisk"`
	Trend         TrendDirection          `json:"trend"`
}

// DealerReport lists dealer issues ranked by revenue loss with their summary.
type DealerReport struct {
	Issues  []Ranked[DealerIssue] `json:"issues"`
	Summary IssueMetrics          `json:"summary"`
	Trend   TrendDirection        `json:"trend"`
}

// FarmReport lists farms ranked by health with their summary.
type FarmReport struct {
	Farms   []Ranked[FarmHealth] `json:"farms"`
	Summary FarmMetrics          `json:"summary"`
}

// SeriesReport is a chart series for one tracker field.
type SeriesReport struct {
	Tracker Tracker      `json:"tracker"`
	Field   SeriesField  `json:"field"`
	Points  []ChartPoint `json:"points"`
}
