package schema

// ScoreBreakdown holds the normalized sub-scores, the composite and its rating.
type ScoreBreakdown struct {
	Scores map[BreakdownKey]float64 `json:"scores"`
	Score  float64                  `json:"score"`
	Rating Rating                   `json:"rating"`
}

// ChartPoint is one bucket of a chart-ready time series.
type ChartPoint struct {
	Date           string  `json:"date"`
	Value          float64 `json:"value"`
	FormattedLabel string  `json:"formattedLabel"`
	Count          int     `json:"count"`
}

// Ranked pairs a record with its 1-based position.
type Ranked[T any] struct {
	Rank   int `json:"rank"`
	Record T   `json:"record"`
}

// FeedResult is a feed observation with its performance index.
type FeedResult struct {
	FeedPerformance
	ScoreBreakdown
}

// BrandThreat is a competitor brand with its threat points.
type BrandThreat struct {
	CompetitorBrand
	Points map[BreakdownKey]int `json:"points"`
	Total  int                  `json:"total"`
	Level  Level                `json:"threatLevel"`
}

// FarmHealth is a farm registration with its health score.
type FarmHealth struct {
	FarmRegistration
	ScoreBreakdown
	OpenIssues int `json:"openIssues"`
}

// BrandTrend reports the direction of each feed metric for one brand.
type BrandTrend struct {
	FeedBrand  string         `json:"feedBrand"`
	Records    int            `json:"records"`
	FCR        TrendDirection `json:"fcr"`
	WeightGain TrendDirection `json:"weightGain"`
	Mortality  TrendDirection `json:"mortality"`
	Score      TrendDirection `json:"score"`
}

// CompetitorMetrics summarizes the competitor intelligence view.
type CompetitorMetrics struct {
	TotalBrands       int                `json:"totalBrands"`
	AvgMarketShare    float64            `json:"avgMarketShare"`
	BrandsBySentiment map[string]int     `json:"brandsBySentiment"`
	BrandsByThreat    map[Level]int      `json:"brandsByThreat"`
	TopThreatBrand    string             `json:"topThreatBrand"`
	TopThreatPoints   int                `json:"topThreatPoints"`
	TotalPromotions   int                `json:"totalPromotions"`
	ActivePromotions  int                `json:"activePromotions"`
	PromotionsByType  map[string]int     `json:"promotionsByType"`
	SwitchingRisks    int                `json:"switchingRisks"`
	RiskByLevel       map[Level]int      `json:"riskByLevel"`
	HighRiskCount     int                `json:"highRiskCount"`
	HighRiskRate      float64            `json:"highRiskRate"`
	RevenueAtRisk     float64            `json:"revenueAtRisk"`
	RevenueByBrand    map[string]float64 `json:"revenueByBrand"`
}

// IssueMetrics summarizes the dealer issue tracker.
type IssueMetrics struct {
	Total             int            `json:"total"`
	Open              int            `json:"open"`
	Resolved          int            `json:"resolved"`
	ActionRequired    int            `json:"actionRequired"`
	CriticalCount     int            `json:"criticalCount"`
	ByType            map[string]int `json:"byType"`
	BySeverity        map[Level]int  `json:"bySeverity"`
	ByStatus          map[string]int `json:"byStatus"`
	ResolutionRate    float64        `json:"resolutionRate"`
	RevenueLoss       float64        `json:"revenueLoss"`
	AvgRevenueLoss    float64        `json:"avgRevenueLoss"`
	AvgResolutionDays float64        `json:"avgResolutionDays"`
}

// FarmMetrics summarizes the farm registration tracker.
type FarmMetrics struct {
	Total               int            `json:"total"`
	Verified            int            `json:"verified"`
	VerificationRate    float64        `json:"verificationRate"`
	ByType              map[string]int `json:"byType"`
	ByStatus            map[string]int `json:"byStatus"`
	ByHealth            map[Rating]int `json:"byHealth"`
	TotalFarmSize       float64        `json:"totalFarmSize"`
	AvgFarmSize         float64        `json:"avgFarmSize"`
	TotalHeadcount      int            `json:"totalHeadcount"`
	TotalMonthlyRevenue float64        `json:"totalMonthlyRevenue"`
	AvgMonthlyRevenue   float64        `json:"avgMonthlyRevenue"`
	OpenIssues          int            `json:"openIssues"`
}

// FeedMetrics summarizes the feed performance tracker.
type FeedMetrics struct {
	Total         int            `json:"total"`
	AvgFCR        float64        `json:"avgFcr"`
	AvgWeightGain float64        `json:"avgWeightGain"`
	AvgMortality  float64        `json:"avgMortality"`
	AvgScore      float64        `json:"avgScore"`
	ByRating      map[Rating]int `json:"byRating"`
	ByBrand       map[string]int `json:"byBrand"`
	TopBrand      string         `json:"topBrand"`
	TopBrandScore float64        `json:"topBrandScore"`
	ExcellentRate float64        `json:"excellentRate"`
}
