package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/agrilens/internal/contract"
	"github.com/huangsam/agrilens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func testConfig() *contract.Config {
	return &contract.Config{
		Precision: 1,
		Output:    schema.TextOut,
		Width:     200,
		Scoring:   schema.DefaultScoringConfig(),
	}
}

func sampleFeedReport() schema.FeedReport {
	return schema.FeedReport{
		Results: []schema.Ranked[schema.FeedResult]{
			{Rank: 1, Record: schema.FeedResult{
				FeedPerformance: schema.FeedPerformance{ID: "fp-1", FarmName: "Santos Poultry", FeedBrand: "AgriPrime Broiler", FeedType: "finisher", Date: "2024-01-10", FCR: ptr(1.65), WeightGain: ptr(1.8), Mortality: ptr(3.2)},
				ScoreBreakdown: schema.ScoreBreakdown{
					Scores: map[schema.BreakdownKey]float64{schema.BreakdownFCR: 67.5, schema.BreakdownWeightGain: 45, schema.BreakdownMortality: 68},
					Score:  60.17,
					Rating: schema.Average,
				},
			}},
			{Rank: 2, Record: schema.FeedResult{
				FeedPerformance: schema.FeedPerformance{ID: "fp-2", FarmName: "Mendoza Hog Farm", FeedBrand: "AgriPrime Hog", WeightGain: ptr(1.0)},
				ScoreBreakdown: schema.ScoreBreakdown{
					Scores: map[schema.BreakdownKey]float64{schema.BreakdownWeightGain: 25},
					Score:  25,
					Rating: schema.Poor,
				},
			}},
		},
		Summary: schema.FeedMetrics{Total: 5, AvgScore: 42.6, TopBrand: "AgriPrime Broiler", TopBrandScore: 60.17},
	}
}

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSVResultsForFeed(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVResultsForFeed(w, sampleFeedReport().Results, fmtFloat))
	w.Flush()

	records := readCSV(t, &buf)
	require.Len(t, records, 3) // header + 2 rows
	assert.Equal(t, "rank", records[0][0])
	assert.Equal(t, []string{"1", "fp-1"}, records[1][:2])
	assert.Equal(t, "1.65", records[1][9])
	assert.Equal(t, "60.17", records[1][12])
	assert.Equal(t, "average", records[1][13])

	// Missing metrics are empty cells
	assert.Empty(t, records[2][9])
	assert.Empty(t, records[2][11])
}

func TestWriteFeedTable(t *testing.T) {
	cfg := testConfig()
	cfg.Detail = true
	cfg.Explain = true

	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(1)
	require.NoError(t, writeFeedTable(&buf, sampleFeedReport(), cfg, fmtFloat, time.Second))

	out := buf.String()
	assert.Contains(t, out, "AgriPrime Broiler")
	assert.Contains(t, out, "Average")
	assert.Contains(t, out, schema.NotAvailable)
	assert.Contains(t, out, "fcr 67.5")
	assert.Contains(t, out, "Showing 2 of 5 feed records")
	assert.Contains(t, out, "Top brand: AgriPrime Broiler")
}

func TestFormatBreakdown(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	tests := []struct {
		name     string
		scores   map[schema.BreakdownKey]float64
		expected string
	}{
		{"ordered", map[schema.BreakdownKey]float64{schema.BreakdownMortality: 80, schema.BreakdownFCR: 50}, "fcr 50.0 | mortality 80.0"},
		{"empty", map[schema.BreakdownKey]float64{}, "Not applicable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatBreakdown(tt.scores, feedBreakdownKeys, fmtFloat))
		})
	}
}

func TestPrintFeedResultsJSONToFile(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "feed.json")

	require.NoError(t, PrintFeedResults(sampleFeedReport(), cfg, time.Second))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var decoded schema.FeedReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "fp-1", decoded.Results[0].Record.ID)
	assert.Nil(t, decoded.Results[1].Record.FCR)
	assert.Equal(t, 5, decoded.Summary.Total)
}

func TestPrintFeedResultsCSVToFile(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.CSVOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "feed.csv")

	require.NoError(t, PrintFeedResults(sampleFeedReport(), cfg, time.Second))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)
}

func TestPrintToInvalidPath(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = "/nonexistent/directory/out.json"
	assert.Error(t, PrintFeedResults(sampleFeedReport(), cfg, time.Second))
}

func TestWriteTrendTableAndCSV(t *testing.T) {
	trends := []schema.BrandTrend{
		{FeedBrand: "AgriPrime Broiler", Records: 4, FCR: schema.Improving, WeightGain: schema.Improving, Mortality: schema.Improving, Score: schema.Improving},
		{FeedBrand: "AgriPrime Layer", Records: 2, FCR: schema.Stable, WeightGain: schema.Declining, Mortality: schema.Stable, Score: schema.Stable},
	}

	var table bytes.Buffer
	require.NoError(t, writeTrendTable(&table, trends, testConfig(), time.Second))
	assert.Contains(t, table.String(), "Improving")
	assert.Contains(t, table.String(), "Declining")
	assert.Contains(t, table.String(), "Trends for 2 brands")

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVResultsForTrends(w, trends))
	w.Flush()
	records := readCSV(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"AgriPrime Layer", "2", "stable", "declining", "stable", "stable"}, records[2])
}

func TestWriteThreatOutputs(t *testing.T) {
	report := schema.CompetitorReport{
		Threats: []schema.Ranked[schema.BrandThreat]{
			{Rank: 1, Record: schema.BrandThreat{
				CompetitorBrand: schema.CompetitorBrand{ID: "b-001", Name: "Apex Feeds", Category: "poultry", MarketShare: 22.5, Regions: []string{"Luzon", "Visayas"}, Sentiment: "positive", MentionVolume: 140},
				Points:          map[schema.BreakdownKey]int{schema.BreakdownMarketShare: 3, schema.BreakdownSwitching: 3, schema.BreakdownSentiment: 2, schema.BreakdownMentions: 3},
				Total:           11,
				Level:           schema.HighLevel,
			}},
		},
		Summary: schema.CompetitorMetrics{TotalBrands: 6, TopThreatBrand: "Apex Feeds", TopThreatPoints: 11},
	}
	cfg := testConfig()
	cfg.Explain = true
	cfg.Detail = true
	fmtFloat, _ := createFormatters(1)

	var table bytes.Buffer
	require.NoError(t, writeThreatTable(&table, report, cfg, fmtFloat, time.Second))
	assert.Contains(t, table.String(), "market_share 3")
	assert.Contains(t, table.String(), "top threat: Apex Feeds with 11 points")

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVResultsForThreats(w, report.Threats, fmtFloat))
	w.Flush()
	records := readCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, "Luzon|Visayas", records[1][6])
	assert.Equal(t, "11", records[1][9])
	assert.Equal(t, "high", records[1][10])
}

func TestWriteIssueOutputs(t *testing.T) {
	report := schema.DealerReport{
		Issues: []schema.Ranked[schema.DealerIssue]{
			{Rank: 1, Record: schema.DealerIssue{ID: "d-002", DealerName: "Cebu Feedmart", Severity: schema.CriticalLevel, Status: schema.IssueInProgress, EstimatedRevenueLoss: 120000, ActionRequired: true}},
			{Rank: 2, Record: schema.DealerIssue{ID: "d-003", DealerName: "Davao Livestock Center", Severity: schema.MediumLevel, Status: schema.IssueResolved, ResolvedDate: "2024-01-25", EstimatedRevenueLoss: 18000}},
		},
		Summary: schema.IssueMetrics{Total: 2, ResolutionRate: 50},
		Trend:   schema.Declining,
	}
	cfg := testConfig()
	cfg.Detail = true
	fmtFloat, _ := createFormatters(1)

	var table bytes.Buffer
	require.NoError(t, writeIssueTable(&table, report, cfg, fmtFloat, time.Second))
	assert.Contains(t, table.String(), "Resolution rate: 50.0%")
	assert.Contains(t, table.String(), "trend: Declining")

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVResultsForIssues(w, report.Issues, fmtFloat))
	w.Flush()
	records := readCSV(t, &buf)
	require.Len(t, records, 3)
	assert.Empty(t, records[1][9])
	assert.Equal(t, "true", records[1][11])
	assert.Equal(t, "2024-01-25", records[2][9])
}

func TestWriteFarmOutputs(t *testing.T) {
	report := schema.FarmReport{
		Farms: []schema.Ranked[schema.FarmHealth]{
			{Rank: 1, Record: schema.FarmHealth{
				FarmRegistration: schema.FarmRegistration{ID: "f-005", FarmName: "Lagoon Aqua Ventures", FarmType: "aqua", Headcount: 40000},
				ScoreBreakdown: schema.ScoreBreakdown{
					Scores: map[schema.BreakdownKey]float64{schema.BreakdownIssueLoad: 50, schema.BreakdownSeverity: 40, schema.BreakdownVerification: 0},
					Score:  30,
					Rating: schema.Critical,
				},
				OpenIssues: 2,
			}},
		},
		Summary: schema.FarmMetrics{Total: 6, OpenIssues: 5},
	}
	cfg := testConfig()
	cfg.Explain = true
	fmtFloat, intFmt := createFormatters(1)

	var table bytes.Buffer
	require.NoError(t, writeFarmTable(&table, report, cfg, fmtFloat, intFmt, time.Second))
	assert.Contains(t, table.String(), "Critical")
	assert.Contains(t, table.String(), "issue_load 50.0")
	assert.Contains(t, table.String(), "Showing 1 of 6 farms")

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVResultsForFarms(w, report.Farms, fmtFloat, intFmt))
	w.Flush()
	records := readCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, "40000", records[1][11])
	assert.Equal(t, "2", records[1][13])
	assert.Equal(t, "critical", records[1][15])
}

func TestWriteSeriesOutputs(t *testing.T) {
	report := schema.SeriesReport{
		Tracker: schema.FeedTracker,
		Field:   schema.FCRField,
		Points: []schema.ChartPoint{
			{Date: "2024-01-01", FormattedLabel: "Jan 1, 2024", Value: 1.7, Count: 2},
			{Date: "2024-01-08", FormattedLabel: "Jan 8, 2024", Value: 1.65, Count: 1},
		},
	}
	fmtFloat, _ := createFormatters(2)

	var table bytes.Buffer
	require.NoError(t, writeSeriesTable(&table, report, fmtFloat, time.Second))
	assert.Contains(t, table.String(), "feed / fcr")
	assert.Contains(t, table.String(), "Jan 8, 2024")
	assert.Contains(t, table.String(), "2 points built")

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVResultsForSeries(w, report, fmtFloat))
	w.Flush()
	records := readCSV(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"feed", "fcr", "2024-01-01", "Jan 1, 2024", "1.70", "2"}, records[1])
}
