package core

import (
	"github.com/huangsam/agrilens/core/algo"
	"github.com/huangsam/agrilens/schema"
)

// FilterFarms selects farm registrations; the date range applies to the registration date.
func FilterFarms(farms []schema.FarmRegistration, f schema.FarmFilter) []schema.FarmRegistration {
	return algo.Filter(farms,
		algo.MatchField(f.FarmType, func(r schema.FarmRegistration) string { return r.FarmType }),
		algo.MatchField(f.Status, func(r schema.FarmRegistration) string { return r.Status }),
		algo.MatchField(f.Region, func(r schema.FarmRegistration) string { return r.Region }),
		algo.MatchField(f.Province, func(r schema.FarmRegistration) string { return r.Province }),
		algo.MatchBool(f.Verified, func(r schema.FarmRegistration) bool { return r.Verified }),
		algo.WithinRange(f.Dates, func(r schema.FarmRegistration) string { return r.RegisteredDate }),
	)
}

// openIssues returns the unresolved issues of a farm.
func openIssues(r schema.FarmRegistration) []schema.FarmIssue {
	return algo.Filter(r.Issues, func(i schema.FarmIssue) bool { return !i.Resolved })
}

// farmSubScores derives the three health sub-scores from open issues and verification.
func farmSubScores(r schema.FarmRegistration, open []schema.FarmIssue) []algo.SubScore {
	severity := 0
	for _, i := range open {
		severity += schema.SeverityPoints[i.Severity]
	}
	verification := 0.0
	if r.Verified {
		verification = 100
	}
	return []algo.SubScore{
		{Key: schema.BreakdownIssueLoad, Value: max(0, 100-25*float64(len(open))), Applicable: true},
		{Key: schema.BreakdownSeverity, Value: max(0, 100-10*float64(severity)), Applicable: true},
		{Key: schema.BreakdownVerification, Value: verification, Applicable: true},
	}
}

// ScoreFarm computes the health score of one farm.
func ScoreFarm(r schema.FarmRegistration, sc schema.ScoringConfig) schema.FarmHealth {
	open := openIssues(r)
	return schema.FarmHealth{
		FarmRegistration: r,
		ScoreBreakdown:   algo.Score(farmSubScores(r, open), sc.FarmWeights, sc.HealthBands),
		OpenIssues:       len(open),
	}
}

// ScoreFarms scores every farm, keeping input order.
func ScoreFarms(farms []schema.FarmRegistration, sc schema.ScoringConfig) []schema.FarmHealth {
	results := make([]schema.FarmHealth, 0, len(farms))
	for _, r := range farms {
		results = append(results, ScoreFarm(r, sc))
	}
	return results
}

// RankFarms orders farms by health score, lowest first, so the farms needing
// attention lead the list.
func RankFarms(farms []schema.FarmHealth) []schema.Ranked[schema.FarmHealth] {
	return algo.Rank(farms, func(f schema.FarmHealth) float64 { return f.Score }, schema.Asc)
}

// SummarizeFarms reduces scored farms into the farm metrics snapshot.
func SummarizeFarms(farms []schema.FarmHealth) schema.FarmMetrics {
	size := func(f schema.FarmHealth) float64 { return f.FarmSize }
	revenue := func(f schema.FarmHealth) float64 { return f.MonthlyRevenue }
	verified := algo.Count(farms, func(f schema.FarmHealth) bool { return f.Verified })

	return schema.FarmMetrics{
		Total:               len(farms),
		Verified:            verified,
		VerificationRate:    algo.Rate(verified, len(farms)),
		ByType:              algo.CountBy(farms, func(f schema.FarmHealth) string { return f.FarmType }),
		ByStatus:            algo.CountBy(farms, func(f schema.FarmHealth) string { return f.Status }),
		ByHealth:            algo.CountBy(farms, func(f schema.FarmHealth) schema.Rating { return f.Rating }),
		TotalFarmSize:       algo.Sum(farms, size),
		AvgFarmSize:         algo.Mean(farms, size),
		TotalHeadcount:      int(algo.Sum(farms, func(f schema.FarmHealth) float64 { return float64(f.Headcount) })),
		TotalMonthlyRevenue: algo.Sum(farms, revenue),
		AvgMonthlyRevenue:   algo.Mean(farms, revenue),
		OpenIssues:          int(algo.Sum(farms, func(f schema.FarmHealth) float64 { return float64(f.OpenIssues) })),
	}
}

// FarmSeries projects a farm field into a chart series keyed by registration date.
func FarmSeries(farms []schema.FarmRegistration, field schema.SeriesField) []schema.ChartPoint {
	return algo.ToSeries(farms,
		func(r schema.FarmRegistration) string { return r.RegisteredDate },
		func(r schema.FarmRegistration) (float64, bool) {
			if field == schema.MonthlyRevenueField {
				return r.MonthlyRevenue, true
			}
			return r.FarmSize, true
		},
	)
}
