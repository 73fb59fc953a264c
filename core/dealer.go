package core

import (
	"github.com/huangsam/agrilens/core/algo"
	"github.com/huangsam/agrilens/schema"
)

// FilterIssues selects the dealer issues matching every active field of f.
func FilterIssues(issues []schema.DealerIssue, f schema.IssueFilter) []schema.DealerIssue {
	return algo.Filter(issues,
		algo.MatchField(f.IssueType, func(i schema.DealerIssue) string { return i.IssueType }),
		algo.MatchField(f.Severity, func(i schema.DealerIssue) schema.Level { return i.Severity }),
		algo.MatchField(f.Status, func(i schema.DealerIssue) string { return i.Status }),
		algo.MatchField(f.Region, func(i schema.DealerIssue) string { return i.Region }),
		algo.MatchField(f.Province, func(i schema.DealerIssue) string { return i.Province }),
		algo.MatchBool(f.ActionRequired, func(i schema.DealerIssue) bool { return i.ActionRequired }),
		algo.WithinRange(f.Dates, func(i schema.DealerIssue) string { return i.ReportedDate }),
	)
}

// isSettled reports whether an issue is resolved or closed.
func isSettled(i schema.DealerIssue) bool {
	return i.Status == schema.IssueResolved || i.Status == schema.IssueClosed
}

// ResolutionDays returns the whole days between report and resolution.
// The boolean is false when either date is missing or unparseable, or when
// the issue was resolved before it was reported.
func ResolutionDays(i schema.DealerIssue) (float64, bool) {
	reported, ok := schema.ParseDate(i.ReportedDate)
	if !ok {
		return 0, false
	}
	resolved, ok := schema.ParseDate(i.ResolvedDate)
	if !ok || resolved.Before(reported) {
		return 0, false
	}
	return resolved.Sub(reported).Hours() / 24, true
}

// SummarizeIssues reduces dealer issues into the issue metrics snapshot.
// The resolution rate counts resolved and closed issues; the average
// resolution time only covers issues with both dates.
func SummarizeIssues(issues []schema.DealerIssue) schema.IssueMetrics {
	revenue := func(i schema.DealerIssue) float64 { return i.EstimatedRevenueLoss }
	settled := algo.Count(issues, isSettled)
	avgDays, _ := algo.MeanOf(algo.Filter(issues, isSettled), ResolutionDays)

	return schema.IssueMetrics{
		Total:             len(issues),
		Open:              algo.Count(issues, func(i schema.DealerIssue) bool { return i.Status == schema.IssueOpen }),
		Resolved:          settled,
		ActionRequired:    algo.Count(issues, func(i schema.DealerIssue) bool { return i.ActionRequired }),
		CriticalCount:     algo.Count(issues, func(i schema.DealerIssue) bool { return i.Severity == schema.CriticalLevel }),
		ByType:            algo.CountBy(issues, func(i schema.DealerIssue) string { return i.IssueType }),
		BySeverity:        algo.CountBy(issues, func(i schema.DealerIssue) schema.Level { return i.Severity }),
		ByStatus:          algo.CountBy(issues, func(i schema.DealerIssue) string { return i.Status }),
		ResolutionRate:    algo.Rate(settled, len(issues)),
		RevenueLoss:       algo.Sum(issues, revenue),
		AvgRevenueLoss:    algo.Mean(issues, revenue),
		AvgResolutionDays: avgDays,
	}
}

// RankIssues orders dealer issues by estimated revenue loss, highest first.
func RankIssues(issues []schema.DealerIssue) []schema.Ranked[schema.DealerIssue] {
	return algo.Rank(issues, func(i schema.DealerIssue) float64 { return i.EstimatedRevenueLoss }, schema.Desc)
}

// IssueTrend classifies how revenue loss moved over the reporting window.
func IssueTrend(issues []schema.DealerIssue) schema.TrendDirection {
	return algo.Trend(issues, func(i schema.DealerIssue) string { return i.ReportedDate }, algo.Metric[schema.DealerIssue]{
		Value:    func(i schema.DealerIssue) (float64, bool) { return i.EstimatedRevenueLoss, true },
		Polarity: schema.LowerIsBetter,
		Epsilon:  schema.RevenueLossEpsilon,
	})
}

// IssueSeries projects dealer revenue loss into a chart series.
func IssueSeries(issues []schema.DealerIssue) []schema.ChartPoint {
	return algo.ToSeries(issues,
		func(i schema.DealerIssue) string { return i.ReportedDate },
		func(i schema.DealerIssue) (float64, bool) { return i.EstimatedRevenueLoss, true },
	)
}
