package core

import (
	"github.com/huangsam/agrilens/core/algo"
	"github.com/huangsam/agrilens/schema"
)

// FilterBrands selects the competitor brands matching every active field of f.
// The region constraint matches brands active in that region.
func FilterBrands(brands []schema.CompetitorBrand, f schema.BrandFilter) []schema.CompetitorBrand {
	return algo.Filter(brands,
		algo.MatchField(f.Category, func(b schema.CompetitorBrand) string { return b.Category }),
		algo.MatchField(f.Sentiment, func(b schema.CompetitorBrand) string { return b.Sentiment }),
		algo.MatchField(f.PricePoint, func(b schema.CompetitorBrand) string { return b.PricePoint }),
		algo.MatchAny(f.Region, func(b schema.CompetitorBrand) []string { return b.Regions }),
	)
}

// FilterPromotions selects promotions; the date range matches promotions that
// run at any point inside it.
func FilterPromotions(promos []schema.Promotion, f schema.PromoFilter) []schema.Promotion {
	return algo.Filter(promos,
		algo.MatchField(f.PromoType, func(p schema.Promotion) string { return p.PromoType }),
		algo.MatchField(f.Status, func(p schema.Promotion) string { return p.Status }),
		algo.MatchField(f.Region, func(p schema.Promotion) string { return p.Region }),
		algo.OverlapRange(f.Dates,
			func(p schema.Promotion) string { return p.StartDate },
			func(p schema.Promotion) string { return p.EndDate }),
	)
}

// FilterSwitching selects switching-risk records reported inside the date range.
func FilterSwitching(records []schema.SwitchingRisk, f schema.SwitchingFilter) []schema.SwitchingRisk {
	return algo.Filter(records,
		algo.MatchField(f.RiskLevel, func(r schema.SwitchingRisk) schema.Level { return r.RiskLevel }),
		algo.MatchField(f.Region, func(r schema.SwitchingRisk) string { return r.Region }),
		algo.MatchField(f.Province, func(r schema.SwitchingRisk) string { return r.Province }),
		algo.WithinRange(f.Dates, func(r schema.SwitchingRisk) string { return r.ReportedDate }),
	)
}

// BrandThreat scores one brand. switchingCount is the number of switching-risk
// records naming the brand as the competitor.
func BrandThreat(b schema.CompetitorBrand, switchingCount int, cut schema.ThreatCutoffs) schema.BrandThreat {
	points := map[schema.BreakdownKey]int{
		schema.BreakdownMarketShare: algo.Points(b.MarketShare, schema.MarketShareBuckets),
		schema.BreakdownSwitching:   algo.Points(float64(switchingCount), schema.SwitchingBuckets),
		schema.BreakdownSentiment:   schema.SentimentPoints[b.Sentiment],
		schema.BreakdownMentions:    algo.Points(float64(b.MentionVolume), schema.MentionBuckets),
	}
	total := 0
	for _, p := range points {
		total += p
	}
	return schema.BrandThreat{
		CompetitorBrand: b,
		Points:          points,
		Total:           total,
		Level:           algo.ThreatLevel(total, cut),
	}
}

// BrandThreats scores every brand against the given switching-risk records,
// keeping input order.
func BrandThreats(brands []schema.CompetitorBrand, switching []schema.SwitchingRisk, cut schema.ThreatCutoffs) []schema.BrandThreat {
	named := algo.CountBy(switching, func(r schema.SwitchingRisk) string { return r.CompetitorBrand })
	threats := make([]schema.BrandThreat, 0, len(brands))
	for _, b := range brands {
		threats = append(threats, BrandThreat(b, named[b.Name], cut))
	}
	return threats
}

// RankThreats orders brands by threat points, highest first. Ties keep input order.
func RankThreats(threats []schema.BrandThreat) []schema.Ranked[schema.BrandThreat] {
	return algo.Rank(threats, func(t schema.BrandThreat) float64 { return float64(t.Total) }, schema.Desc)
}

// RankPromotions orders promotions by discount, highest first.
func RankPromotions(promos []schema.Promotion) []schema.Ranked[schema.Promotion] {
	return algo.Rank(promos, func(p schema.Promotion) float64 { return p.DiscountPct }, schema.Desc)
}

// RankSwitching orders switching risks by estimated revenue loss, highest first.
func RankSwitching(records []schema.SwitchingRisk) []schema.Ranked[schema.SwitchingRisk] {
	return algo.Rank(records, func(r schema.SwitchingRisk) float64 { return r.EstimatedRevenueLoss }, schema.Desc)
}

// isHighRisk reports whether a switching risk is high or critical.
func isHighRisk(r schema.SwitchingRisk) bool {
	return r.RiskLevel == schema.HighLevel || r.RiskLevel == schema.CriticalLevel
}

// SwitchingTrend classifies how revenue at risk moved over the reporting window.
func SwitchingTrend(records []schema.SwitchingRisk) schema.TrendDirection {
	return algo.Trend(records, func(r schema.SwitchingRisk) string { return r.ReportedDate }, algo.Metric[schema.SwitchingRisk]{
		Value:    func(r schema.SwitchingRisk) (float64, bool) { return r.EstimatedRevenueLoss, true },
		Polarity: schema.LowerIsBetter,
		Epsilon:  schema.RevenueLossEpsilon,
	})
}

// SummarizeCompetitors reduces threats, promotions and switching risks into the
// competitor metrics snapshot.
func SummarizeCompetitors(threats []schema.BrandThreat, promos []schema.Promotion, switching []schema.SwitchingRisk) schema.CompetitorMetrics {
	revenue := func(r schema.SwitchingRisk) float64 { return r.EstimatedRevenueLoss }
	highRisk := algo.Count(switching, isHighRisk)

	m := schema.CompetitorMetrics{
		TotalBrands:       len(threats),
		AvgMarketShare:    algo.Mean(threats, func(t schema.BrandThreat) float64 { return t.MarketShare }),
		BrandsBySentiment: algo.CountBy(threats, func(t schema.BrandThreat) string { return t.Sentiment }),
		BrandsByThreat:    algo.CountBy(threats, func(t schema.BrandThreat) schema.Level { return t.Level }),
		TopThreatBrand:    schema.NotAvailable,
		TotalPromotions:   len(promos),
		ActivePromotions:  algo.Count(promos, func(p schema.Promotion) bool { return p.Status == schema.PromoActive }),
		PromotionsByType:  algo.CountBy(promos, func(p schema.Promotion) string { return p.PromoType }),
		SwitchingRisks:    len(switching),
		RiskByLevel:       algo.CountBy(switching, func(r schema.SwitchingRisk) schema.Level { return r.RiskLevel }),
		HighRiskCount:     highRisk,
		HighRiskRate:      algo.Rate(highRisk, len(switching)),
		RevenueAtRisk:     algo.Sum(switching, revenue),
		RevenueByBrand:    algo.SumBy(switching, func(r schema.SwitchingRisk) string { return r.CompetitorBrand }, revenue),
	}
	if top, ok := algo.MaxBy(threats, func(t schema.BrandThreat) float64 { return float64(t.Total) }); ok {
		m.TopThreatBrand = top.Name
		m.TopThreatPoints = top.Total
	}
	return m
}

// SummarizePromotions builds the promotion view.
func SummarizePromotions(promos []schema.Promotion) schema.PromotionReport {
	return schema.PromotionReport{
		Promotions: RankPromotions(promos),
		Total:      len(promos),
		Active:     algo.Count(promos, func(p schema.Promotion) bool { return p.Status == schema.PromoActive }),
		ByType:     algo.CountBy(promos, func(p schema.Promotion) string { return p.PromoType }),
	}
}

// SummarizeSwitching builds the switching-risk view.
func SummarizeSwitching(records []schema.SwitchingRisk) schema.SwitchingReport {
	return schema.SwitchingReport{
		Risks:         RankSwitching(records),
		Total:         len(records),
		HighRiskRate:  algo.Rate(algo.Count(records, isHighRisk), len(records)),
		RevenueAtRisk: algo.Sum(records, func(r schema.SwitchingRisk) float64 { return r.EstimatedRevenueLoss }),
		Trend:         SwitchingTrend(records),
	}
}

// SwitchingSeries projects switching revenue at risk into a chart series.
func SwitchingSeries(records []schema.SwitchingRisk) []schema.ChartPoint {
	return algo.ToSeries(records,
		func(r schema.SwitchingRisk) string { return r.ReportedDate },
		func(r schema.SwitchingRisk) (float64, bool) { return r.EstimatedRevenueLoss, true },
	)
}
