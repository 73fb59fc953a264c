package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/huangsam/agrilens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMetricsRenderModel(t *testing.T) {
	sc := schema.DefaultScoringConfig()
	sc.FeedWeights[schema.BreakdownFCR] = 2
	sc.FeedWeights[schema.BreakdownMortality] = 0

	m := buildMetricsRenderModel(sc)
	require.Len(t, m.Scores, 2)

	feed := m.Scores[0]
	assert.Equal(t, "feed", feed.Name)
	assert.Equal(t, "(2.00*fcr + 1.00*weight_gain) / 3.00", feed.Formula)
	assert.Equal(t, sc.FeedBands, feed.Bands)

	farm := m.Scores[1]
	assert.Equal(t, "(1.00*issue_load + 1.00*severity + 1.00*verification) / 3.00", farm.Formula)
	assert.Equal(t, schema.DefaultThreatCutoffs(), m.Threat.Cutoffs)
}

func TestFormatWeights(t *testing.T) {
	tests := []struct {
		name     string
		factors  []metricsFactor
		expected string
	}{
		{"all zero", []metricsFactor{{Key: schema.BreakdownFCR}}, "0"},
		{"single", []metricsFactor{{Key: schema.BreakdownFCR, Weight: 0.5}}, "(0.50*fcr) / 0.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatWeights(tt.factors))
		})
	}
}

func TestPrintMetricsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printMetricsText(&buf, buildMetricsRenderModel(schema.DefaultScoringConfig())))

	out := buf.String()
	assert.Contains(t, out, "FEED: Feed performance index")
	assert.Contains(t, out, "fcr = clamp(100 - (fcr - 1) * 50)")
	assert.Contains(t, out, "Bands: excellent >= 85, good >= 70, average >= 50, poor >= 0")
	assert.Contains(t, out, "Bands: healthy >= 80, at-risk >= 50, critical >= 0")
	assert.Contains(t, out, "market_share: 20:3, 10:2, 5:1")
	assert.Contains(t, out, "sentiment: positive:2, neutral:1, negative:0")
	assert.Contains(t, out, "Levels: high >= 8, medium >= 5, otherwise low")
}

func TestWriteCSVMetrics(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVMetrics(w, buildMetricsRenderModel(schema.DefaultScoringConfig())))
	w.Flush()

	records := readCSV(t, &buf)
	// header + 6 weights + 7 bands + 2 cutoffs
	require.Len(t, records, 16)
	assert.Equal(t, []string{"feed", "weight", "fcr", "1", "clamp(100 - (fcr - 1) * 50)"}, records[1])
	assert.Equal(t, []string{"threat", "cutoff", "high", "8", ""}, records[14])
}

func TestMetricsRenderModelJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, buildMetricsRenderModel(schema.DefaultScoringConfig())))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Dashboard Scoring", decoded["title"])
	assert.Len(t, decoded["scores"], 2)
}
