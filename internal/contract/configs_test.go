package contract

import (
	"math"
	"testing"

	"github.com/huangsam/agrilens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns the raw input the root command produces with default flags.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Limit:     DefaultResultLimit,
		Precision: DefaultPrecision,
		Output:    "text",
		Color:     "yes",
	}
}

func ptr[T any](v T) *T { return &v }

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", modify: func(*ConfigRawInput) {}},
		{name: "invalid limit (zero)", modify: func(in *ConfigRawInput) { in.Limit = 0 }, expectError: true},
		{name: "invalid limit (too high)", modify: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: true},
		{name: "invalid precision", modify: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: true},
		{name: "invalid output", modify: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "invalid color", modify: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "invalid rank key", modify: func(in *ConfigRawInput) { in.RankBy = "price" }, expectError: true},
		{name: "invalid direction", modify: func(in *ConfigRawInput) { in.Direction = "up" }, expectError: true},
		{name: "invalid series tracker", modify: func(in *ConfigRawInput) { in.Tracker = "competitors" }, expectError: true},
		{name: "invalid series field", modify: func(in *ConfigRawInput) { in.Tracker = "dealers"; in.Field = "fcr" }, expectError: true},
		{name: "valid series field", modify: func(in *ConfigRawInput) { in.Tracker = "farms"; in.Field = "monthly_revenue" }},
		{name: "invalid severity", modify: func(in *ConfigRawInput) { in.Severity = "extreme" }, expectError: true},
		{name: "invalid verified", modify: func(in *ConfigRawInput) { in.Verified = "sometimes" }, expectError: true},
		{name: "invalid start", modify: func(in *ConfigRawInput) { in.Start = "yesterday" }, expectError: true},
		{name: "start after end", modify: func(in *ConfigRawInput) { in.Start = "2024-05-01"; in.End = "2024-04-01" }, expectError: true},
		{name: "same day start and end", modify: func(in *ConfigRawInput) { in.Start = "2024-05-01"; in.End = "2024-05-01" }},
		{name: "negative weight", modify: func(in *ConfigRawInput) { in.Weights.Feed = &FeedWeightsRaw{FCR: ptr(-1.0)} }, expectError: true},
		{
			name: "all zero weights",
			modify: func(in *ConfigRawInput) {
				in.Weights.Farm = &FarmWeightsRaw{IssueLoad: ptr(0.0), Severity: ptr(0.0), Verification: ptr(0.0)}
			},
			expectError: true,
		},
		{name: "bad weights override", modify: func(in *ConfigRawInput) { in.WeightsStr = "fcr=2" }, expectError: true},
		{name: "unknown weights override key", modify: func(in *ConfigRawInput) { in.WeightsStr = "price:2" }, expectError: true},
		{
			name:        "bands not descending",
			modify:      func(in *ConfigRawInput) { in.Thresholds.Feed = &FeedBandsRaw{Good: ptr(90.0)} },
			expectError: true,
		},
		{
			name:        "band out of range",
			modify:      func(in *ConfigRawInput) { in.Thresholds.Health = &HealthBandsRaw{Healthy: ptr(120.0)} },
			expectError: true,
		},
		{
			name:        "threat high not above medium",
			modify:      func(in *ConfigRawInput) { in.Thresholds.Threat = &ThreatRaw{High: ptr(5)} },
			expectError: true,
		},
		{
			name:        "threat medium zero",
			modify:      func(in *ConfigRawInput) { in.Thresholds.Threat = &ThreatRaw{Medium: ptr(0)} },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.modify(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, schema.DefaultScoringConfig(), cfg.Scoring)
	assert.Equal(t, schema.BreakdownScore, cfg.RankBy)
	assert.Equal(t, schema.Desc, cfg.Direction)
	assert.Equal(t, schema.FeedTracker, cfg.SeriesTracker)
	assert.Equal(t, schema.FCRField, cfg.SeriesField)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.Filters{}, cfg.Filters)
}

func TestProcessAndValidateFilters(t *testing.T) {
	input := validInput()
	input.Region = "Luzon"
	input.Province = "all"
	input.Severity = "HIGH"
	input.ActionRequired = "yes"
	input.Verified = "all"
	input.FeedBrand = "=all"
	input.Start = "2024-01-01"
	input.End = "2024-03-31"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	f := cfg.Filters
	assert.Equal(t, schema.Eq("Luzon"), f.Brand.Region)
	assert.Equal(t, schema.Eq("Luzon"), f.Feed.Region)
	assert.False(t, f.Issue.Province.Active())
	assert.Equal(t, schema.Eq(schema.HighLevel), f.Issue.Severity)
	assert.Equal(t, schema.Eq(true), f.Issue.ActionRequired)
	assert.False(t, f.Farm.Verified.Active())
	assert.Equal(t, schema.Eq("all"), f.Feed.FeedBrand)

	require.NotNil(t, f.Feed.Dates.End)
	assert.True(t, f.Feed.Dates.Contains("2024-03-31T18:30:00Z"))
	assert.False(t, f.Feed.Dates.Contains("2024-04-01"))
	assert.Equal(t, f.Feed.Dates, f.Issue.Dates)
}

func TestProcessAndValidateWeights(t *testing.T) {
	input := validInput()
	input.Weights.Feed = &FeedWeightsRaw{FCR: ptr(2.0)}
	input.WeightsStr = "mortality:0.5, verification:3"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, map[schema.BreakdownKey]float64{
		schema.BreakdownFCR:        2,
		schema.BreakdownWeightGain: 1,
		schema.BreakdownMortality:  0.5,
	}, cfg.Scoring.FeedWeights)
	assert.Equal(t, 3.0, cfg.Scoring.FarmWeights[schema.BreakdownVerification])
	assert.Equal(t, 1.0, cfg.Scoring.FarmWeights[schema.BreakdownIssueLoad])
}

func TestProcessAndValidateRejectsNonFiniteWeights(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*ConfigRawInput)
	}{
		{"NaN override", func(in *ConfigRawInput) { in.WeightsStr = "fcr:NaN" }},
		{"Inf override", func(in *ConfigRawInput) { in.WeightsStr = "fcr:Inf" }},
		{"negative Inf override", func(in *ConfigRawInput) { in.WeightsStr = "verification:-Inf" }},
		{"NaN from config file", func(in *ConfigRawInput) { in.Weights.Farm = &FarmWeightsRaw{Severity: ptr(math.NaN())} }},
		{"Inf from config file", func(in *ConfigRawInput) { in.Weights.Feed = &FeedWeightsRaw{Mortality: ptr(math.Inf(1))} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.apply(input)
			err := ProcessAndValidate(&Config{}, input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "finite")
		})
	}
}

func TestProcessAndValidateThresholds(t *testing.T) {
	input := validInput()
	input.Thresholds.Feed = &FeedBandsRaw{Excellent: ptr(90.0), Average: ptr(40.0)}
	input.Thresholds.Threat = &ThreatRaw{High: ptr(9), Medium: ptr(4)}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, []schema.Band{
		{Min: 90, Rating: schema.Excellent},
		{Min: 70, Rating: schema.Good},
		{Min: 40, Rating: schema.Average},
		{Min: 0, Rating: schema.Poor},
	}, cfg.Scoring.FeedBands)
	assert.Equal(t, schema.ThreatCutoffs{High: 9, Medium: 4}, cfg.Scoring.Threat)

	nan := validInput()
	nan.Thresholds.Health = &HealthBandsRaw{AtRisk: ptr(math.NaN())}
	assert.Error(t, ProcessAndValidate(&Config{}, nan))
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	clone := cfg.Clone()
	clone.Scoring.FeedWeights[schema.BreakdownFCR] = 9
	clone.Scoring.FeedBands[0].Min = 99

	assert.Equal(t, 1.0, cfg.Scoring.FeedWeights[schema.BreakdownFCR])
	assert.Equal(t, 85.0, cfg.Scoring.FeedBands[0].Min)
}

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		input    string
		expected schema.Constraint[string]
	}{
		{"", schema.Constraint[string]{}},
		{"all", schema.Constraint[string]{}},
		{"ALL", schema.Constraint[string]{}},
		{"  swine ", schema.Eq("swine")},
		{"=all", schema.Eq("all")},
		{"=", schema.Eq("")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseConstraint(tt.input))
		})
	}
}

func TestParseBound(t *testing.T) {
	start, err := ParseBound("2024-02-10", false)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-10T00:00:00Z", start.Format("2006-01-02T15:04:05Z07:00"))

	end, err := ParseBound("2024-02-10", true)
	require.NoError(t, err)
	assert.Equal(t, 2024, end.Year())
	assert.Equal(t, 23, end.Hour())

	exact, err := ParseBound("2024-02-10T08:00:00Z", true)
	require.NoError(t, err)
	assert.Equal(t, 8, exact.Hour())

	_, err = ParseBound("10/02/2024", false)
	assert.Error(t, err)
}

func TestValidateBands(t *testing.T) {
	assert.NoError(t, ValidateBands(schema.DefaultFeedBands()))
	assert.NoError(t, ValidateBands(schema.DefaultHealthBands()))
	assert.Error(t, ValidateBands(nil))
	assert.Error(t, ValidateBands([]schema.Band{{Min: 50}, {Min: 50}}))
	assert.Error(t, ValidateBands([]schema.Band{{Min: -1}}))
	assert.Error(t, ValidateBands([]schema.Band{{Min: math.NaN()}, {Min: 0}}))
	assert.Error(t, ValidateBands([]schema.Band{{Min: math.Inf(1)}}))
}
