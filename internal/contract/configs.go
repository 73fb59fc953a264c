package contract

import (
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/agrilens/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
)

// DateFormat is the date-only layout accepted by --start and --end.
const DateFormat = "2006-01-02"

// FeedWeightsRaw holds the custom feed weights from the config file.
// Pointers tell an omitted weight apart from an explicit zero.
type FeedWeightsRaw struct {
	FCR        *float64 `mapstructure:"fcr"`
	WeightGain *float64 `mapstructure:"weight_gain"`
	Mortality  *float64 `mapstructure:"mortality"`
}

// FarmWeightsRaw holds the custom farm health weights from the config file.
type FarmWeightsRaw struct {
	IssueLoad    *float64 `mapstructure:"issue_load"`
	Severity     *float64 `mapstructure:"severity"`
	Verification *float64 `mapstructure:"verification"`
}

// WeightsRawInput holds all custom weight definitions from the YAML config file.
type WeightsRawInput struct {
	Feed *FeedWeightsRaw `mapstructure:"feed"`
	Farm *FarmWeightsRaw `mapstructure:"farm"`
}

// FeedBandsRaw holds the lower bounds of the feed rating bands.
type FeedBandsRaw struct {
	Excellent *float64 `mapstructure:"excellent"`
	Good      *float64 `mapstructure:"good"`
	Average   *float64 `mapstructure:"average"`
}

// HealthBandsRaw holds the lower bounds of the farm health bands.
type HealthBandsRaw struct {
	Healthy *float64 `mapstructure:"healthy"`
	AtRisk  *float64 `mapstructure:"at_risk"`
}

// ThreatRaw holds the threat point cut-offs.
type ThreatRaw struct {
	High   *int `mapstructure:"high"`
	Medium *int `mapstructure:"medium"`
}

// ThresholdsRawInput holds band and cut-off definitions from the YAML config file.
type ThresholdsRawInput struct {
	Feed   *FeedBandsRaw   `mapstructure:"feed"`
	Health *HealthBandsRaw `mapstructure:"health"`
	Threat *ThreatRaw      `mapstructure:"threat"`
}

// Config holds the runtime configuration for a command.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir     string
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Explain     bool
	Detail      bool
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool
	Verbose     bool

	RankBy    schema.BreakdownKey
	Direction schema.SortDirection

	SeriesTracker schema.Tracker
	SeriesField   schema.SeriesField

	Filters schema.Filters
	Scoring schema.ScoringConfig
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	DataDir    string `mapstructure:"data-dir"`
	OutputFile string `mapstructure:"output-file"`
	Limit      int    `mapstructure:"limit"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	Detail     bool   `mapstructure:"detail"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`
	Verbose    bool   `mapstructure:"verbose"`
	Start      string `mapstructure:"start"`
	End        string `mapstructure:"end"`
	Region     string `mapstructure:"region"`
	Province   string `mapstructure:"province"`

	// --- Fields from feedCmd.Flags() and trendCmd.Flags() ---
	Explain   bool   `mapstructure:"explain"`
	RankBy    string `mapstructure:"rank-by"`
	Direction string `mapstructure:"direction"`
	FeedBrand string `mapstructure:"feed-brand"`
	FeedType  string `mapstructure:"feed-type"`

	// --- Fields from competitorsCmd.PersistentFlags() ---
	Category    string `mapstructure:"category"`
	Sentiment   string `mapstructure:"sentiment"`
	PricePoint  string `mapstructure:"price-point"`
	PromoType   string `mapstructure:"promo-type"`
	PromoStatus string `mapstructure:"promo-status"`
	RiskLevel   string `mapstructure:"risk-level"`

	// --- Fields from dealersCmd.Flags() ---
	IssueType      string `mapstructure:"issue-type"`
	Severity       string `mapstructure:"severity"`
	Status         string `mapstructure:"status"`
	ActionRequired string `mapstructure:"action-required"`

	// --- Fields from farmsCmd.Flags() ---
	FarmType   string `mapstructure:"farm-type"`
	FarmStatus string `mapstructure:"farm-status"`
	Verified   string `mapstructure:"verified"`

	// --- Fields from seriesCmd.Flags() ---
	Tracker string `mapstructure:"tracker"`
	Field   string `mapstructure:"field"`

	// --- Fields from metricsCmd.Flags() ---
	WeightsStr string `mapstructure:"weights-override"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`

	// --- Bands and cut-offs from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Scoring = c.Scoring.Clone()
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSeries(cfg, input); err != nil {
		return err
	}
	if err := processFilters(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-filter fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.DataDir = strings.TrimSpace(input.DataDir)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	cfg.RankBy = schema.BreakdownScore
	if input.RankBy != "" {
		cfg.RankBy = schema.BreakdownKey(strings.ToLower(input.RankBy))
		if _, ok := schema.ValidFeedRankKeys[cfg.RankBy]; !ok {
			return fmt.Errorf("invalid rank key '%s'. must be score, fcr, weight_gain, mortality", input.RankBy)
		}
	}

	cfg.Direction = schema.Desc
	if input.Direction != "" {
		cfg.Direction = schema.SortDirection(strings.ToLower(input.Direction))
		if _, ok := schema.ValidSortDirections[cfg.Direction]; !ok {
			return fmt.Errorf("invalid direction '%s'. must be asc, desc", input.Direction)
		}
	}

	return nil
}

// processSeries validates the tracker and field used by the series command.
func processSeries(cfg *Config, input *ConfigRawInput) error {
	cfg.SeriesTracker = schema.FeedTracker
	if input.Tracker != "" {
		cfg.SeriesTracker = schema.Tracker(strings.ToLower(input.Tracker))
		if _, ok := schema.ValidSeriesTrackers[cfg.SeriesTracker]; !ok {
			return fmt.Errorf("invalid series tracker '%s'. must be feed, dealers, switching, farms", input.Tracker)
		}
	}

	fields := schema.ValidSeriesFields[cfg.SeriesTracker]
	cfg.SeriesField = fields[0]
	if input.Field == "" {
		return nil
	}
	field := schema.SeriesField(strings.ToLower(input.Field))
	for _, f := range fields {
		if f == field {
			cfg.SeriesField = field
			return nil
		}
	}
	return fmt.Errorf("invalid series field '%s' for tracker %s. must be one of %v", input.Field, cfg.SeriesTracker, fields)
}

// processFilters translates the command line filter flags into per-tracker filters.
// Every flag accepts "all" for an unconstrained field.
func processFilters(cfg *Config, input *ConfigRawInput) error {
	region := ParseConstraint(input.Region)
	province := ParseConstraint(input.Province)

	riskLevel, err := ParseLevelConstraint(input.RiskLevel)
	if err != nil {
		return fmt.Errorf("invalid --risk-level value: %w", err)
	}
	severity, err := ParseLevelConstraint(input.Severity)
	if err != nil {
		return fmt.Errorf("invalid --severity value: %w", err)
	}
	actionRequired, err := ParseBoolConstraint(input.ActionRequired)
	if err != nil {
		return fmt.Errorf("invalid --action-required value: %w", err)
	}
	verified, err := ParseBoolConstraint(input.Verified)
	if err != nil {
		return fmt.Errorf("invalid --verified value: %w", err)
	}

	cfg.Filters = schema.Filters{
		Brand: schema.BrandFilter{
			Category:   ParseConstraint(input.Category),
			Sentiment:  ParseConstraint(input.Sentiment),
			PricePoint: ParseConstraint(input.PricePoint),
			Region:     region,
		},
		Promo: schema.PromoFilter{
			PromoType: ParseConstraint(input.PromoType),
			Status:    ParseConstraint(input.PromoStatus),
			Region:    region,
		},
		Switching: schema.SwitchingFilter{
			RiskLevel: riskLevel,
			Region:    region,
			Province:  province,
		},
		Issue: schema.IssueFilter{
			IssueType:      ParseConstraint(input.IssueType),
			Severity:       severity,
			Status:         ParseConstraint(input.Status),
			Region:         region,
			Province:       province,
			ActionRequired: actionRequired,
		},
		Farm: schema.FarmFilter{
			FarmType: ParseConstraint(input.FarmType),
			Status:   ParseConstraint(input.FarmStatus),
			Region:   region,
			Province: province,
			Verified: verified,
		},
		Feed: schema.FeedFilter{
			FeedBrand: ParseConstraint(input.FeedBrand),
			FeedType:  ParseConstraint(input.FeedType),
			Region:    region,
			Province:  province,
		},
	}
	return nil
}

// processTimeRange parses --start and --end into a range shared by every dated tracker.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	var dates schema.DateRange

	if input.Start != "" {
		t, err := ParseBound(input.Start, false)
		if err != nil {
			return fmt.Errorf("invalid start date format for '%s': %w", input.Start, err)
		}
		dates.Start = &t
	}
	if input.End != "" {
		t, err := ParseBound(input.End, true)
		if err != nil {
			return fmt.Errorf("invalid end date format for '%s': %w", input.End, err)
		}
		dates.End = &t
	}

	if dates.Start != nil && dates.End != nil && dates.Start.After(*dates.End) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)", dates.Start.Format(DateFormat), dates.End.Format(DateFormat))
	}

	cfg.Filters.Promo.Dates = dates
	cfg.Filters.Switching.Dates = dates
	cfg.Filters.Issue.Dates = dates
	cfg.Filters.Farm.Dates = dates
	cfg.Filters.Feed.Dates = dates
	return nil
}

// ProcessWeightsRawInput converts WeightsRawInput into per-tracker weight overrides.
// Trackers without any override are left out of the result.
func ProcessWeightsRawInput(weights WeightsRawInput) map[schema.Tracker]map[schema.BreakdownKey]float64 {
	result := make(map[schema.Tracker]map[schema.BreakdownKey]float64)

	set := func(m map[schema.BreakdownKey]float64, key schema.BreakdownKey, v *float64) {
		if v != nil {
			m[key] = *v
		}
	}

	if raw := weights.Feed; raw != nil {
		feed := make(map[schema.BreakdownKey]float64)
		set(feed, schema.BreakdownFCR, raw.FCR)
		set(feed, schema.BreakdownWeightGain, raw.WeightGain)
		set(feed, schema.BreakdownMortality, raw.Mortality)
		if len(feed) > 0 {
			result[schema.FeedTracker] = feed
		}
	}
	if raw := weights.Farm; raw != nil {
		farm := make(map[schema.BreakdownKey]float64)
		set(farm, schema.BreakdownIssueLoad, raw.IssueLoad)
		set(farm, schema.BreakdownSeverity, raw.Severity)
		set(farm, schema.BreakdownVerification, raw.Verification)
		if len(farm) > 0 {
			result[schema.FarmTracker] = farm
		}
	}
	return result
}

// processCustomWeights merges config file and command line weights over the defaults
// and validates the result for each tracker.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	custom := ProcessWeightsRawInput(input.Weights)

	if input.WeightsStr != "" {
		parsed, err := parseWeightsString(input.WeightsStr)
		if err != nil {
			return fmt.Errorf("invalid --weights-override format: %w", err)
		}
		for tracker, m := range parsed {
			if custom[tracker] == nil {
				custom[tracker] = make(map[schema.BreakdownKey]float64)
			}
			maps.Copy(custom[tracker], m)
		}
	}

	feed := schema.GetDefaultWeights(schema.FeedTracker)
	maps.Copy(feed, custom[schema.FeedTracker])
	farm := schema.GetDefaultWeights(schema.FarmTracker)
	maps.Copy(farm, custom[schema.FarmTracker])

	if err := validateWeights(schema.FeedTracker, feed); err != nil {
		return err
	}
	if err := validateWeights(schema.FarmTracker, farm); err != nil {
		return err
	}

	cfg.Scoring.FeedWeights = feed
	cfg.Scoring.FarmWeights = farm
	return nil
}

// validateWeights rejects non-finite or negative weights and an all-zero weight set.
func validateWeights(tracker schema.Tracker, weights map[schema.BreakdownKey]float64) error {
	sum := 0.0
	for key, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("weight %s for %s must be a finite number (received %v)", key, tracker, w)
		}
		if w < 0 {
			return fmt.Errorf("weight %s for %s must not be negative (received %.2f)", key, tracker, w)
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("weights for %s must have a positive sum", tracker)
	}
	return nil
}

// processThresholds overrides the default bands and threat cut-offs with the config file
// values and validates them.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	feedBands := schema.DefaultFeedBands()
	if raw := input.Thresholds.Feed; raw != nil {
		overrideBand(feedBands, 0, raw.Excellent)
		overrideBand(feedBands, 1, raw.Good)
		overrideBand(feedBands, 2, raw.Average)
	}
	if err := ValidateBands(feedBands); err != nil {
		return fmt.Errorf("invalid feed bands: %w", err)
	}

	healthBands := schema.DefaultHealthBands()
	if raw := input.Thresholds.Health; raw != nil {
		overrideBand(healthBands, 0, raw.Healthy)
		overrideBand(healthBands, 1, raw.AtRisk)
	}
	if err := ValidateBands(healthBands); err != nil {
		return fmt.Errorf("invalid health bands: %w", err)
	}

	threat := schema.DefaultThreatCutoffs()
	if raw := input.Thresholds.Threat; raw != nil {
		if raw.High != nil {
			threat.High = *raw.High
		}
		if raw.Medium != nil {
			threat.Medium = *raw.Medium
		}
	}
	if threat.Medium <= 0 || threat.High <= threat.Medium {
		return fmt.Errorf("threat cut-offs must satisfy high > medium > 0 (received high=%d medium=%d)", threat.High, threat.Medium)
	}

	cfg.Scoring.FeedBands = feedBands
	cfg.Scoring.HealthBands = healthBands
	cfg.Scoring.Threat = threat
	return nil
}

func overrideBand(bands []schema.Band, i int, v *float64) {
	if v != nil {
		bands[i].Min = *v
	}
}

// ValidateBands checks that band minimums sit inside [0,100] and strictly descend.
func ValidateBands(bands []schema.Band) error {
	if len(bands) == 0 {
		return fmt.Errorf("at least one band is required")
	}
	for i, b := range bands {
		if math.IsNaN(b.Min) || b.Min < 0 || b.Min > 100 {
			return fmt.Errorf("band %s must be between 0 and 100 (received %.2f)", b.Rating, b.Min)
		}
		if i > 0 && b.Min >= bands[i-1].Min {
			return fmt.Errorf("band %s (%.2f) must be below band %s (%.2f)", b.Rating, b.Min, bands[i-1].Rating, bands[i-1].Min)
		}
	}
	return nil
}

// ParseConstraint turns a filter flag into a constraint. An empty value or "all"
// (any case) is unconstrained; a leading "=" forces a literal match, so "=all"
// matches the value "all".
func ParseConstraint(s string) schema.Constraint[string] {
	s = strings.TrimSpace(s)
	if literal, ok := strings.CutPrefix(s, "="); ok {
		return schema.Eq(literal)
	}
	if s == "" || strings.EqualFold(s, schema.AllOption) {
		return schema.Constraint[string]{}
	}
	return schema.Eq(s)
}

// ParseLevelConstraint is ParseConstraint restricted to the known levels.
func ParseLevelConstraint(s string) (schema.Constraint[schema.Level], error) {
	c := ParseConstraint(strings.ToLower(s))
	v, ok := c.Value()
	if !ok {
		return schema.Constraint[schema.Level]{}, nil
	}
	level := schema.Level(v)
	switch level {
	case schema.LowLevel, schema.MediumLevel, schema.HighLevel, schema.CriticalLevel:
		return schema.Eq(level), nil
	default:
		return schema.Constraint[schema.Level]{}, fmt.Errorf("unknown level %q (expected all/low/medium/high/critical)", s)
	}
}

// ParseBoolConstraint parses a tri-state boolean flag: "all" or a ParseBoolString value.
func ParseBoolConstraint(s string) (schema.Constraint[bool], error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, schema.AllOption) {
		return schema.Constraint[bool]{}, nil
	}
	b, err := ParseBoolString(s)
	if err != nil {
		return schema.Constraint[bool]{}, err
	}
	return schema.Eq(b), nil
}

// ParseBound parses a --start or --end value. Date-only end bounds are moved to the
// last instant of that day so the whole day is included.
func ParseBound(s string, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateFormat, s); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, nil
	}
	t, ok := schema.ParseDate(s)
	if !ok {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC3339")
	}
	return t, nil
}

// parseWeightsString parses a string like "fcr:2,mortality:1,verification:0.5"
// into per-tracker weight maps. The key decides the tracker.
func parseWeightsString(s string) (map[schema.Tracker]map[schema.BreakdownKey]float64, error) {
	result := make(map[schema.Tracker]map[schema.BreakdownKey]float64)
	feedKeys := schema.GetDefaultWeights(schema.FeedTracker)
	farmKeys := schema.GetDefaultWeights(schema.FarmTracker)

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid weight format '%s', expected 'key:value'", part)
		}

		key := schema.BreakdownKey(strings.ToLower(strings.TrimSpace(keyValue[0])))
		valueStr := strings.TrimSpace(keyValue[1])

		var tracker schema.Tracker
		switch {
		case hasKey(feedKeys, key):
			tracker = schema.FeedTracker
		case hasKey(farmKeys, key):
			tracker = schema.FarmTracker
		default:
			return nil, fmt.Errorf("unknown weight key '%s'", key)
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value '%s' for %s: %w", valueStr, key, err)
		}

		if result[tracker] == nil {
			result[tracker] = make(map[schema.BreakdownKey]float64)
		}
		result[tracker][key] = value
	}

	return result, nil
}

func hasKey(m map[schema.BreakdownKey]float64, key schema.BreakdownKey) bool {
	_, ok := m[key]
	return ok
}
