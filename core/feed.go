package core

import (
	"slices"

	"github.com/huangsam/agrilens/core/algo"
	"github.com/huangsam/agrilens/schema"
)

// FilterFeed selects the feed observations matching every active field of f.
func FilterFeed(records []schema.FeedPerformance, f schema.FeedFilter) []schema.FeedPerformance {
	return algo.Filter(records,
		algo.MatchField(f.FeedBrand, func(r schema.FeedPerformance) string { return r.FeedBrand }),
		algo.MatchField(f.FeedType, func(r schema.FeedPerformance) string { return r.FeedType }),
		algo.MatchField(f.Region, func(r schema.FeedPerformance) string { return r.Region }),
		algo.MatchField(f.Province, func(r schema.FeedPerformance) string { return r.Province }),
		algo.WithinRange(f.Dates, func(r schema.FeedPerformance) string { return r.Date }),
	)
}

// feedSubScores normalizes the three feed metrics. Missing metrics are not applicable.
func feedSubScores(r schema.FeedPerformance) []algo.SubScore {
	return []algo.SubScore{
		algo.Present(schema.BreakdownFCR, r.FCR, algo.NormalizeFCR),
		algo.Present(schema.BreakdownWeightGain, r.WeightGain, algo.NormalizeWeightGain),
		algo.Present(schema.BreakdownMortality, r.Mortality, algo.NormalizeMortality),
	}
}

// ScoreFeed computes the performance index of a single observation.
func ScoreFeed(r schema.FeedPerformance, sc schema.ScoringConfig) schema.FeedResult {
	return schema.FeedResult{
		FeedPerformance: r,
		ScoreBreakdown:  algo.Score(feedSubScores(r), sc.FeedWeights, sc.FeedBands),
	}
}

// ScoreFeeds scores every observation, keeping input order.
func ScoreFeeds(records []schema.FeedPerformance, sc schema.ScoringConfig) []schema.FeedResult {
	results := make([]schema.FeedResult, 0, len(records))
	for _, r := range records {
		results = append(results, ScoreFeed(r, sc))
	}
	return results
}

// feedMetricValue returns the raw value behind a rank key or series field.
func feedMetricValue(r schema.FeedResult, key schema.BreakdownKey) (float64, bool) {
	deref := func(v *float64) (float64, bool) {
		if v == nil {
			return 0, false
		}
		return *v, true
	}
	switch key {
	case schema.BreakdownFCR:
		return deref(r.FCR)
	case schema.BreakdownWeightGain:
		return deref(r.WeightGain)
	case schema.BreakdownMortality:
		return deref(r.Mortality)
	default:
		return r.Score, true
	}
}

// RankFeed orders scored observations by key. Observations missing the key
// metric are placed after the rest in input order.
func RankFeed(results []schema.FeedResult, key schema.BreakdownKey, dir schema.SortDirection) []schema.Ranked[schema.FeedResult] {
	present := make([]schema.FeedResult, 0, len(results))
	var missing []schema.FeedResult
	for _, r := range results {
		if _, ok := feedMetricValue(r, key); ok {
			present = append(present, r)
		} else {
			missing = append(missing, r)
		}
	}
	ranked := algo.Rank(present, func(r schema.FeedResult) float64 {
		v, _ := feedMetricValue(r, key)
		return v
	}, dir)
	for _, r := range missing {
		ranked = append(ranked, schema.Ranked[schema.FeedResult]{Rank: len(ranked) + 1, Record: r})
	}
	return ranked
}

// SummarizeFeed reduces scored observations into the feed metrics snapshot.
// The top brand is the one with the highest mean score.
func SummarizeFeed(results []schema.FeedResult) schema.FeedMetrics {
	metric := func(key schema.BreakdownKey) float64 {
		v, _ := algo.MeanOf(results, func(r schema.FeedResult) (float64, bool) { return feedMetricValue(r, key) })
		return v
	}

	m := schema.FeedMetrics{
		Total:         len(results),
		AvgFCR:        metric(schema.BreakdownFCR),
		AvgWeightGain: metric(schema.BreakdownWeightGain),
		AvgMortality:  metric(schema.BreakdownMortality),
		AvgScore:      algo.Mean(results, func(r schema.FeedResult) float64 { return r.Score }),
		ByRating:      algo.CountBy(results, func(r schema.FeedResult) schema.Rating { return r.Rating }),
		ByBrand:       algo.CountBy(results, func(r schema.FeedResult) string { return r.FeedBrand }),
		TopBrand:      schema.NotAvailable,
		ExcellentRate: algo.Rate(algo.Count(results, func(r schema.FeedResult) bool { return r.Rating == schema.Excellent }), len(results)),
	}

	type brandScore struct {
		brand string
		mean  float64
	}
	groups, order := algo.GroupBy(results, func(r schema.FeedResult) string { return r.FeedBrand })
	brands := make([]brandScore, 0, len(order))
	for _, brand := range order {
		brands = append(brands, brandScore{
			brand: brand,
			mean:  algo.Mean(groups[brand], func(r schema.FeedResult) float64 { return r.Score }),
		})
	}
	if top, ok := algo.MaxBy(brands, func(b brandScore) float64 { return b.mean }); ok {
		m.TopBrand = top.brand
		m.TopBrandScore = top.mean
	}
	return m
}

// feedTrendMetrics are the per-metric polarity and epsilon used for brand trends.
var feedTrendMetrics = map[schema.BreakdownKey]algo.Metric[schema.FeedResult]{
	schema.BreakdownFCR: {
		Value:    func(r schema.FeedResult) (float64, bool) { return feedMetricValue(r, schema.BreakdownFCR) },
		Polarity: schema.LowerIsBetter,
		Epsilon:  schema.FCREpsilon,
	},
	schema.BreakdownWeightGain: {
		Value:    func(r schema.FeedResult) (float64, bool) { return feedMetricValue(r, schema.BreakdownWeightGain) },
		Polarity: schema.HigherIsBetter,
		Epsilon:  schema.WeightGainEpsilon,
	},
	schema.BreakdownMortality: {
		Value:    func(r schema.FeedResult) (float64, bool) { return feedMetricValue(r, schema.BreakdownMortality) },
		Polarity: schema.LowerIsBetter,
		Epsilon:  schema.MortalityEpsilon,
	},
	schema.BreakdownScore: {
		Value:    func(r schema.FeedResult) (float64, bool) { return r.Score, true },
		Polarity: schema.HigherIsBetter,
		Epsilon:  schema.ScoreEpsilon,
	},
}

// FeedTrends reports the trend of each feed metric per brand, sorted by brand name.
func FeedTrends(results []schema.FeedResult) []schema.BrandTrend {
	groups, order := algo.GroupBy(results, func(r schema.FeedResult) string { return r.FeedBrand })
	brands := slices.Clone(order)
	slices.Sort(brands)

	date := func(r schema.FeedResult) string { return r.Date }
	trends := make([]schema.BrandTrend, 0, len(brands))
	for _, brand := range brands {
		group := groups[brand]
		trends = append(trends, schema.BrandTrend{
			FeedBrand:  brand,
			Records:    len(group),
			FCR:        algo.Trend(group, date, feedTrendMetrics[schema.BreakdownFCR]),
			WeightGain: algo.Trend(group, date, feedTrendMetrics[schema.BreakdownWeightGain]),
			Mortality:  algo.Trend(group, date, feedTrendMetrics[schema.BreakdownMortality]),
			Score:      algo.Trend(group, date, feedTrendMetrics[schema.BreakdownScore]),
		})
	}
	return trends
}

// FeedSeries projects one feed field into a chart series.
func FeedSeries(results []schema.FeedResult, field schema.SeriesField) []schema.ChartPoint {
	key := schema.BreakdownKey(field)
	return algo.ToSeries(results,
		func(r schema.FeedResult) string { return r.Date },
		func(r schema.FeedResult) (float64, bool) { return feedMetricValue(r, key) },
	)
}
