package schema

// CompetitorBrand is a rival feed brand tracked by the competitor intelligence view.
type CompetitorBrand struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`   // poultry, swine, aqua
	PricePoint    string   `json:"pricePoint"` // premium, mid, economy
	MarketShare   float64  `json:"marketShare"`
	Regions       []string `json:"regions"`
	Sentiment     string   `json:"sentiment"` // positive, neutral, negative
	MentionVolume int      `json:"mentionVolume"`
	LastUpdated   string   `json:"lastUpdated"`
}

// Promotion is a competitor campaign with its own start/end window.
type Promotion struct {
	ID          string  `json:"id"`
	BrandID     string  `json:"brandId"`
	BrandName   string  `json:"brandName"`
	PromoType   string  `json:"promoType"` // discount, bundle, rebate, free-sample
	Status      string  `json:"status"`    // active, upcoming, expired
	Region      string  `json:"region"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	DiscountPct float64 `json:"discountPct"`
	Description string  `json:"description"`
}

// SwitchingRisk is a customer farm at risk of moving to a competitor brand.
type SwitchingRisk struct {
	ID                   string   `json:"id"`
	FarmName             string   `json:"farmName"`
	CurrentBrand         string   `json:"currentBrand"`
	CompetitorBrand      string   `json:"competitorBrand"`
	RiskLevel            Level    `json:"riskLevel"`
	Region               string   `json:"region"`
	Province             string   `json:"province"`
	ReportedDate         string   `json:"reportedDate"`
	EstimatedRevenueLoss float64  `json:"estimatedRevenueLoss"`
	Reasons              []string `json:"reasons"`
}

// DealerIssue is a problem raised by or about a dealer.
type DealerIssue struct {
	ID                   string  `json:"id"`
	DealerName           string  `json:"dealerName"`
	IssueType            string  `json:"issueType"` // delivery, quality, pricing, payment, stock
	Severity             Level   `json:"severity"`
	Status               string  `json:"status"` // open, in-progress, resolved, closed
	Region               string  `json:"region"`
	Province             string  `json:"province"`
	ReportedDate         string  `json:"reportedDate"`
	ResolvedDate         string  `json:"resolvedDate,omitempty"`
	EstimatedRevenueLoss float64 `json:"estimatedRevenueLoss"`
	ActionRequired       bool    `json:"actionRequired"`
	Description          string  `json:"description"`
}

// Location is a point on the map.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FarmIssue is an issue logged against a registered farm.
type FarmIssue struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Severity     Level  `json:"severity"`
	Resolved     bool   `json:"resolved"`
	ReportedDate string `json:"reportedDate"`
}

// FarmRegistration is a farm enrolled through the registration tracker.
type FarmRegistration struct {
	ID             string      `json:"id"`
	FarmName       string      `json:"farmName"`
	OwnerName      string      `json:"ownerName"`
	FarmType       string      `json:"farmType"` // broiler, layer, swine, aqua
	Status         string      `json:"status"`   // pending, approved, rejected
	Region         string      `json:"region"`
	Province       string      `json:"province"`
	RegisteredDate string      `json:"registeredDate"`
	Verified       bool        `json:"verified"`
	FarmSize       float64     `json:"farmSize"` // hectares
	Headcount      int         `json:"headcount"`
	MonthlyRevenue float64     `json:"monthlyRevenue"`
	Location       Location    `json:"location"`
	Issues         []FarmIssue `json:"issues"`
}

// FeedPerformance is one feed trial observation on a farm.
// Metric fields are pointers because field reports are often incomplete.
type FeedPerformance struct {
	ID         string   `json:"id"`
	FarmID     string   `json:"farmId"`
	FarmName   string   `json:"farmName"`
	FeedBrand  string   `json:"feedBrand"`
	FeedType   string   `json:"feedType"` // starter, grower, finisher
	Region     string   `json:"region"`
	Province   string   `json:"province"`
	Date       string   `json:"date"`
	FCR        *float64 `json:"fcr,omitempty"`
	WeightGain *float64 `json:"weightGain,omitempty"` // kg per head
	Mortality  *float64 `json:"mortality,omitempty"`  // percent
}

// Dataset holds every collection served by the record store.
type Dataset struct {
	Brands     []CompetitorBrand  `json:"brands"`
	Promotions []Promotion        `json:"promotions"`
	Switching  []SwitchingRisk    `json:"switching"`
	Issues     []DealerIssue      `json:"issues"`
	Farms      []FarmRegistration `json:"farms"`
	Feed       []FeedPerformance  `json:"feed"`
}
