package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/agrilens/internal/contract"
	"github.com/huangsam/agrilens/schema"
)

// metricsFactor is one normalized input of a composite score.
type metricsFactor struct {
	Key     schema.BreakdownKey `json:"key"`
	Formula string              `json:"formula"`
	Weight  float64             `json:"weight"`
}

// metricsScore describes one composite score and its rating bands.
type metricsScore struct {
	Name    string          `json:"name"`
	Purpose string          `json:"purpose"`
	Factors []metricsFactor `json:"factors"`
	Formula string          `json:"formula"`
	Bands   []schema.Band   `json:"bands"`
}

// metricsThreat describes the competitor threat points.
type metricsThreat struct {
	MarketShare []schema.PointBucket `json:"marketShare"`
	Switching   []schema.PointBucket `json:"switching"`
	Mentions    []schema.PointBucket `json:"mentions"`
	Sentiment   map[string]int       `json:"sentiment"`
	Cutoffs     schema.ThreatCutoffs `json:"cutoffs"`
}

// metricsRenderModel is everything the metrics view prints.
type metricsRenderModel struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Scores      []metricsScore `json:"scores"`
	Threat      metricsThreat  `json:"threat"`
}

// PrintMetricsDefinitions displays the scoring formulas with the weights and
// thresholds currently in effect. It does not need any records.
func PrintMetricsDefinitions(cfg *contract.Config) error {
	model := buildMetricsRenderModel(cfg.Scoring)
	return dispatch(cfg, view{
		name:  "metrics",
		json:  func(w io.Writer) error { return writeJSON(w, model) },
		csv:   func(w *csv.Writer) error { return writeCSVMetrics(w, model) },
		table: func(w io.Writer) error { return printMetricsText(w, model) },
	})
}

// formatWeights formats weights for display in formulas.
func formatWeights(factors []metricsFactor) string {
	var parts []string
	var total float64
	for _, f := range factors {
		if f.Weight > 0 {
			parts = append(parts, fmt.Sprintf("%.2f*%s", f.Weight, f.Key))
			total += f.Weight
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return fmt.Sprintf("(%s) / %.2f", strings.Join(parts, " + "), total)
}

// weightOf returns the configured weight of key, defaulting to 1.
func weightOf(weights map[schema.BreakdownKey]float64, key schema.BreakdownKey) float64 {
	if w, ok := weights[key]; ok {
		return w
	}
	return 1
}

// buildMetricsRenderModel constructs the complete render model from the scoring config.
func buildMetricsRenderModel(sc schema.ScoringConfig) metricsRenderModel {
	feed := []metricsFactor{
		{Key: schema.BreakdownFCR, Formula: "clamp(100 - (fcr - 1) * 50)"},
		{Key: schema.BreakdownWeightGain, Formula: "clamp(weight_gain * 25)"},
		{Key: schema.BreakdownMortality, Formula: "clamp(100 - mortality * 10)"},
	}
	for i := range feed {
		feed[i].Weight = weightOf(sc.FeedWeights, feed[i].Key)
	}
	farm := []metricsFactor{
		{Key: schema.BreakdownIssueLoad, Formula: "max(0, 100 - 25 * open_issues)"},
		{Key: schema.BreakdownSeverity, Formula: "max(0, 100 - 10 * severity_points)"},
		{Key: schema.BreakdownVerification, Formula: "100 if verified else 0"},
	}
	for i := range farm {
		farm[i].Weight = weightOf(sc.FarmWeights, farm[i].Key)
	}

	return metricsRenderModel{
		Title:       "Dashboard Scoring",
		Description: "Composite scores are weighted means of the sub-scores that have data",
		Scores: []metricsScore{
			{
				Name:    string(schema.FeedTracker),
				Purpose: "Feed performance index per trial observation",
				Factors: feed,
				Formula: formatWeights(feed),
				Bands:   sc.FeedBands,
			},
			{
				Name:    string(schema.FarmTracker),
				Purpose: "Farm health from open issues and verification",
				Factors: farm,
				Formula: formatWeights(farm),
				Bands:   sc.HealthBands,
			},
		},
		Threat: metricsThreat{
			MarketShare: schema.MarketShareBuckets,
			Switching:   schema.SwitchingBuckets,
			Mentions:    schema.MentionBuckets,
			Sentiment:   schema.SentimentPoints,
			Cutoffs:     sc.Threat,
		},
	}
}

// formatBands renders bands as "rating >= min" pairs.
func formatBands(bands []schema.Band) string {
	parts := make([]string, len(bands))
	for i, b := range bands {
		parts[i] = fmt.Sprintf("%s >= %g", b.Rating, b.Min)
	}
	return strings.Join(parts, ", ")
}

// formatBuckets renders point buckets as "min:points" pairs.
func formatBuckets(buckets []schema.PointBucket) string {
	parts := make([]string, len(buckets))
	for i, b := range buckets {
		parts[i] = fmt.Sprintf("%g:%d", b.Min, b.Points)
	}
	return strings.Join(parts, ", ")
}

// printMetricsText displays metrics in human-readable text format.
func printMetricsText(w io.Writer, m metricsRenderModel) error {
	lines := []string{
		"🌾 " + m.Title,
		strings.Repeat("=", len(m.Title)+3),
		"",
		m.Description,
		"",
	}
	for _, s := range m.Scores {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(s.Name), s.Purpose))
		for _, f := range s.Factors {
			lines = append(lines, fmt.Sprintf("   %s = %s", f.Key, f.Formula))
		}
		lines = append(lines,
			fmt.Sprintf("   Formula: Score = %s", s.Formula),
			fmt.Sprintf("   Bands: %s", formatBands(s.Bands)),
			"",
		)
	}
	sentiment := make([]string, 0, len(m.Threat.Sentiment))
	for _, k := range []string{"positive", "neutral", "negative"} {
		sentiment = append(sentiment, fmt.Sprintf("%s:%d", k, m.Threat.Sentiment[k]))
	}
	lines = append(lines,
		"THREAT: Competitor brand points",
		fmt.Sprintf("   market_share: %s", formatBuckets(m.Threat.MarketShare)),
		fmt.Sprintf("   switching: %s", formatBuckets(m.Threat.Switching)),
		fmt.Sprintf("   mentions: %s", formatBuckets(m.Threat.Mentions)),
		fmt.Sprintf("   sentiment: %s", strings.Join(sentiment, ", ")),
		fmt.Sprintf("   Levels: high >= %d, medium >= %d, otherwise low", m.Threat.Cutoffs.High, m.Threat.Cutoffs.Medium),
	)
	return writeLines(w, lines...)
}

// writeCSVMetrics writes one row per factor, band and threshold.
func writeCSVMetrics(w *csv.Writer, m metricsRenderModel) error {
	return writeCSVWithHeader(w, []string{"score", "kind", "key", "value", "formula"}, func(w *csv.Writer) error {
		var rows [][]string
		for _, s := range m.Scores {
			for _, f := range s.Factors {
				rows = append(rows, []string{s.Name, "weight", string(f.Key), strconv.FormatFloat(f.Weight, 'f', -1, 64), f.Formula})
			}
			for _, b := range s.Bands {
				rows = append(rows, []string{s.Name, "band", string(b.Rating), strconv.FormatFloat(b.Min, 'f', -1, 64), ""})
			}
		}
		rows = append(rows,
			[]string{"threat", "cutoff", string(schema.HighLevel), strconv.Itoa(m.Threat.Cutoffs.High), ""},
			[]string{"threat", "cutoff", string(schema.MediumLevel), strconv.Itoa(m.Threat.Cutoffs.Medium), ""},
		)
		return w.WriteAll(rows)
	})
}
