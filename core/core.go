// Package core has core logic for filtering, scoring and ranking the dashboard trackers.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/agrilens/core/algo"
	"github.com/huangsam/agrilens/internal/contract"
	"github.com/huangsam/agrilens/internal/parquet"
	"github.com/huangsam/agrilens/schema"
	"go.uber.org/zap"
)

// ExecutorFunc defines the function signature for executing the tracker views.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, src contract.RecordSource, w contract.ResultWriter) error

// loadDataset loads every collection from the source.
func loadDataset(ctx context.Context, src contract.RecordSource) (*schema.Dataset, error) {
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return ds, nil
}

// BuildFeedReport filters, scores and ranks feed observations. The summary
// covers every matching observation, not only the ranked page.
func BuildFeedReport(ds *schema.Dataset, cfg *contract.Config) schema.FeedReport {
	results := ScoreFeeds(FilterFeed(ds.Feed, cfg.Filters.Feed), cfg.Scoring)
	return schema.FeedReport{
		Results: algo.Top(RankFeed(results, cfg.RankBy, cfg.Direction), cfg.ResultLimit),
		Summary: SummarizeFeed(results),
	}
}

// BuildTrends computes the per-brand feed trends.
func BuildTrends(ds *schema.Dataset, cfg *contract.Config) []schema.BrandTrend {
	return FeedTrends(ScoreFeeds(FilterFeed(ds.Feed, cfg.Filters.Feed), cfg.Scoring))
}

// BuildCompetitorReport scores the filtered brands against the filtered switching risks.
func BuildCompetitorReport(ds *schema.Dataset, cfg *contract.Config) schema.CompetitorReport {
	switching := FilterSwitching(ds.Switching, cfg.Filters.Switching)
	promos := FilterPromotions(ds.Promotions, cfg.Filters.Promo)
	threats := BrandThreats(FilterBrands(ds.Brands, cfg.Filters.Brand), switching, cfg.Scoring.Threat)
	return schema.CompetitorReport{
		Threats: algo.Top(RankThreats(threats), cfg.ResultLimit),
		Summary: SummarizeCompetitors(threats, promos, switching),
	}
}

// BuildPromotionReport filters and ranks promotions.
func BuildPromotionReport(ds *schema.Dataset, cfg *contract.Config) schema.PromotionReport {
	report := SummarizePromotions(FilterPromotions(ds.Promotions, cfg.Filters.Promo))
	report.Promotions = algo.Top(report.Promotions, cfg.ResultLimit)
	return report
}

// BuildSwitchingReport filters and ranks switching risks.
func BuildSwitchingReport(ds *schema.Dataset, cfg *contract.Config) schema.SwitchingReport {
	report := SummarizeSwitching(FilterSwitching(ds.Switching, cfg.Filters.Switching))
	report.Risks = algo.Top(report.Risks, cfg.ResultLimit)
	return report
}

// BuildDealerReport filters, summarizes and ranks dealer issues.
func BuildDealerReport(ds *schema.Dataset, cfg *contract.Config) schema.DealerReport {
	issues := FilterIssues(ds.Issues, cfg.Filters.Issue)
	return schema.DealerReport{
		Issues:  algo.Top(RankIssues(issues), cfg.ResultLimit),
		Summary: SummarizeIssues(issues),
		Trend:   IssueTrend(issues),
	}
}

// BuildFarmReport filters, scores and ranks farms.
func BuildFarmReport(ds *schema.Dataset, cfg *contract.Config) schema.FarmReport {
	farms := ScoreFarms(FilterFarms(ds.Farms, cfg.Filters.Farm), cfg.Scoring)
	return schema.FarmReport{
		Farms:   algo.Top(RankFarms(farms), cfg.ResultLimit),
		Summary: SummarizeFarms(farms),
	}
}

// BuildSeries projects the configured tracker field into a chart series.
func BuildSeries(ds *schema.Dataset, cfg *contract.Config) (schema.SeriesReport, error) {
	report := schema.SeriesReport{Tracker: cfg.SeriesTracker, Field: cfg.SeriesField}
	switch cfg.SeriesTracker {
	case schema.FeedTracker:
		report.Points = FeedSeries(ScoreFeeds(FilterFeed(ds.Feed, cfg.Filters.Feed), cfg.Scoring), cfg.SeriesField)
	case schema.DealerTracker:
		report.Points = IssueSeries(FilterIssues(ds.Issues, cfg.Filters.Issue))
	case schema.SwitchingTracker:
		report.Points = SwitchingSeries(FilterSwitching(ds.Switching, cfg.Filters.Switching))
	case schema.FarmTracker:
		report.Points = FarmSeries(FilterFarms(ds.Farms, cfg.Filters.Farm), cfg.SeriesField)
	default:
		return report, fmt.Errorf("tracker %s has no series", cfg.SeriesTracker)
	}
	return report, nil
}

// ExecuteFeed runs the feed performance view.
func ExecuteFeed(ctx context.Context, cfg *contract.Config, src contract.RecordSource, w contract.ResultWriter) error {
	start := time.Now()
	ds, err := loadDataset(ctx, src)
	if err != nil {
		return err
	}
	report := BuildFeedReport(ds, cfg)
	contract.LogDebug("feed scored", zap.Int("matched", report.Summary.Total), zap.String("rankBy", string(cfg.RankBy)))
	return w.WriteFeed(report, cfg, time.Since(start))
}

// ExecuteTrend runs the per-brand feed trend view.
func ExecuteTrend(ctx context.Context, cfg *contract.Config, src contract.RecordSource, w contract.ResultWriter) error {
	start := time.Now()
	ds, err := loadDataset(ctx, src)
	if err != nil {
		return err
	}
	return w.WriteTrends(BuildTrends(ds, cfg), cfg, time.Since(start))
}

// ExecuteCompetitors runs the competitor threat view.
func ExecuteCompetitors(ctx context.Context, cfg *contract.Config, src contract.RecordSource, w contract.ResultWriter) error {
	start := time.Now()
	ds, err := loadDataset(ctx, src)
	if err != nil {
		return err
	}
	report := BuildCompetitorReport(ds, cfg)
	contract.LogDebug("brands scored", zap.Int("matched", report.Summary.TotalBrands), zap.String("top", report.Summary.TopThreatBrand))
	return w.WriteCompetitors(report, cfg, time.Since(start))
}

// ExecutePromotions runs the competitor promotion view.
func ExecutePromotions(ctx context.Context, cfg *contract.Config, src contract.RecordSource, w contract.ResultWriter) error {
	start := time.Now()
	ds, err := loadDataset(ctx, src)
	if err != nil {
		return err
	}
	return w.WritePromotions(BuildPromotionReport(ds, cfg), cfg, time.Since(start))
}

// ExecuteSwitching runs the switching-risk view.
func ExecuteSwitching(ctx context.Context, cfg *contract.Config, src contract.RecordSource, w contract.ResultWriter) error {
	start := time.Now()
	ds, err := loadDataset(ctx, src)
	if err != nil {
		return err
	}
	return w.WriteSwitching(BuildSwitchingReport(ds, cfg), cfg, time.Since(start))
}

// ExecuteDealers runs the dealer issue view.
func ExecuteDealers(ctx context.Context, cfg *contract.Config, src contract.RecordSource, w contract.ResultWriter) error {
	start := time.Now()
	ds, err := loadDataset(ctx, src)
	if err != nil {
		return err
	}
	return w.WriteDealers(BuildDealerReport(ds, cfg), cfg, time.Since(start))
}

// ExecuteFarms runs the farm health view.
func ExecuteFarms(ctx context.Context, cfg *contract.Config, src contract.RecordSource, w contract.ResultWriter) error {
	start := time.Now()
	ds, err := loadDataset(ctx, src)
	if err != nil {
		return err
	}
	return w.WriteFarms(BuildFarmReport(ds, cfg), cfg, time.Since(start))
}

// ExecuteSeries runs the chart series view.
func ExecuteSeries(ctx context.Context, cfg *contract.Config, src contract.RecordSource, w contract.ResultWriter) error {
	start := time.Now()
	ds, err := loadDataset(ctx, src)
	if err != nil {
		return err
	}
	report, err := BuildSeries(ds, cfg)
	if err != nil {
		return err
	}
	return w.WriteSeries(report, cfg, time.Since(start))
}

// ExecuteMetrics prints the formulas, weights and bands in effect.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.RecordSource, w contract.ResultWriter) error {
	return w.WriteMetrics(cfg)
}

// BuildSnapshot scores every tracker with the configured filters into one export snapshot.
func BuildSnapshot(ds *schema.Dataset, cfg *contract.Config, id string, at time.Time) parquet.Snapshot {
	feed := ScoreFeeds(FilterFeed(ds.Feed, cfg.Filters.Feed), cfg.Scoring)
	switching := FilterSwitching(ds.Switching, cfg.Filters.Switching)
	threats := BrandThreats(FilterBrands(ds.Brands, cfg.Filters.Brand), switching, cfg.Scoring.Threat)
	farms := ScoreFarms(FilterFarms(ds.Farms, cfg.Filters.Farm), cfg.Scoring)

	return parquet.Snapshot{
		ID:      id,
		Time:    at,
		Feed:    parquet.ConvertFeedResults(id, at, feed),
		Threats: parquet.ConvertBrandThreats(id, at, threats),
		Issues:  parquet.ConvertDealerIssues(id, at, FilterIssues(ds.Issues, cfg.Filters.Issue)),
		Farms:   parquet.ConvertFarmHealth(id, at, farms),
		Series:  parquet.ConvertSeries(id, schema.FeedTracker, schema.FCRField, FeedSeries(feed, schema.FCRField)),
	}
}

// ExecuteExport writes a scored snapshot of every tracker to Parquet files.
func ExecuteExport(ctx context.Context, cfg *contract.Config, src contract.RecordSource) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	ds, err := loadDataset(ctx, src)
	if err != nil {
		return err
	}

	snapshot := BuildSnapshot(ds, cfg, uuid.NewString(), time.Now())
	paths, err := parquet.WriteSnapshot(snapshot, cfg.OutputFile)
	if err != nil {
		return err
	}

	fmt.Printf("Exported snapshot %s\n", snapshot.ID)
	for _, p := range paths {
		fmt.Printf("  %s\n", p)
	}
	return nil
}
