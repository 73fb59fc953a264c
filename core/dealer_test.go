package core

import (
	"testing"
	"time"

	"github.com/huangsam/agrilens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterIssues(t *testing.T) {
	issues := seedDataset(t).Issues
	feb1 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	feb29 := time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name     string
		filter   schema.IssueFilter
		expected int
	}{
		{"unconstrained", schema.IssueFilter{}, 6},
		{"severity", schema.IssueFilter{Severity: schema.Eq(schema.MediumLevel)}, 3},
		{"action required", schema.IssueFilter{ActionRequired: schema.Eq(true)}, 3},
		{"no action required", schema.IssueFilter{ActionRequired: schema.Eq(false)}, 3},
		{"type and province", schema.IssueFilter{IssueType: schema.Eq("delivery"), Province: schema.Eq("Pampanga")}, 2},
		{"february", schema.IssueFilter{Dates: schema.DateRange{Start: &feb1, End: &feb29}}, 3},
		{"status", schema.IssueFilter{Status: schema.Eq(schema.IssueOpen)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, FilterIssues(issues, tt.filter), tt.expected)
		})
	}
}

func TestSummarizeIssues(t *testing.T) {
	m := SummarizeIssues(seedDataset(t).Issues)

	assert.Equal(t, 6, m.Total)
	assert.Equal(t, 2, m.Open)
	assert.Equal(t, 3, m.Resolved)
	assert.Equal(t, 3, m.ActionRequired)
	assert.Equal(t, 1, m.CriticalCount)
	assert.InDelta(t, 50.0, m.ResolutionRate, 1e-9)
	assert.InDelta(t, 230000.0, m.RevenueLoss, 1e-6)
	assert.InDelta(t, 230000.0/6, m.AvgRevenueLoss, 1e-6)
	assert.InDelta(t, 17.0/3, m.AvgResolutionDays, 1e-9)

	assert.Equal(t, m.Total, sumCounts(m.ByType))
	assert.Equal(t, m.Total, sumCounts(m.BySeverity))
	assert.Equal(t, m.Total, sumCounts(m.ByStatus))
}

func TestSummarizeIssuesEmpty(t *testing.T) {
	m := SummarizeIssues([]schema.DealerIssue{})
	assert.Equal(t, 0, m.Total)
	assert.Equal(t, 0.0, m.ResolutionRate)
	assert.Equal(t, 0.0, m.AvgRevenueLoss)
	assert.Equal(t, 0.0, m.AvgResolutionDays)
}

func TestResolutionDays(t *testing.T) {
	tests := []struct {
		name     string
		issue    schema.DealerIssue
		expected float64
		ok       bool
	}{
		{"resolved", schema.DealerIssue{ReportedDate: "2024-01-15", ResolvedDate: "2024-01-25"}, 10, true},
		{"same day", schema.DealerIssue{ReportedDate: "2024-01-15", ResolvedDate: "2024-01-15"}, 0, true},
		{"missing resolution", schema.DealerIssue{ReportedDate: "2024-01-15"}, 0, false},
		{"malformed report", schema.DealerIssue{ReportedDate: "15/01/2024", ResolvedDate: "2024-01-25"}, 0, false},
		{"resolved before reported", schema.DealerIssue{ReportedDate: "2024-01-25", ResolvedDate: "2024-01-15"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := ResolutionDays(tt.issue)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, days, 1e-9)
		})
	}
}

func TestRankIssues(t *testing.T) {
	ranked := RankIssues(seedDataset(t).Issues)
	require.Len(t, ranked, 6)
	assert.Equal(t, "d-002", ranked[0].Record.ID)
	assert.Equal(t, "d-004", ranked[5].Record.ID)
}

func TestIssueTrend(t *testing.T) {
	assert.Equal(t, schema.Declining, IssueTrend(seedDataset(t).Issues))
	assert.Equal(t, schema.Stable, IssueTrend(nil))
}

func TestIssueSeries(t *testing.T) {
	points := IssueSeries(seedDataset(t).Issues)
	require.Len(t, points, 6)
	assert.Equal(t, "2024-01-15", points[0].Date)
	assert.Equal(t, "2024-03-06", points[5].Date)
}
