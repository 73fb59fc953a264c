// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/agrilens/internal/contract"
	"github.com/huangsam/agrilens/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

var _ contract.ResultWriter = (*OutWriter)(nil)

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteFeed prints ranked feed results using the configured output format.
func (ow *OutWriter) WriteFeed(report schema.FeedReport, cfg *contract.Config, duration time.Duration) error {
	return PrintFeedResults(report, cfg, duration)
}

// WriteTrends prints per-brand feed trends using the configured output format.
func (ow *OutWriter) WriteTrends(trends []schema.BrandTrend, cfg *contract.Config, duration time.Duration) error {
	return PrintTrendResults(trends, cfg, duration)
}

// WriteCompetitors prints competitor threats using the configured output format.
func (ow *OutWriter) WriteCompetitors(report schema.CompetitorReport, cfg *contract.Config, duration time.Duration) error {
	return PrintCompetitorResults(report, cfg, duration)
}

// WritePromotions prints competitor promotions using the configured output format.
func (ow *OutWriter) WritePromotions(report schema.PromotionReport, cfg *contract.Config, duration time.Duration) error {
	return PrintPromotionResults(report, cfg, duration)
}

// WriteSwitching prints switching risks using the configured output format.
func (ow *OutWriter) WriteSwitching(report schema.SwitchingReport, cfg *contract.Config, duration time.Duration) error {
	return PrintSwitchingResults(report, cfg, duration)
}

// WriteDealers prints dealer issues using the configured output format.
func (ow *OutWriter) WriteDealers(report schema.DealerReport, cfg *contract.Config, duration time.Duration) error {
	return PrintDealerResults(report, cfg, duration)
}

// WriteFarms prints farm health results using the configured output format.
func (ow *OutWriter) WriteFarms(report schema.FarmReport, cfg *contract.Config, duration time.Duration) error {
	return PrintFarmResults(report, cfg, duration)
}

// WriteSeries prints a chart series using the configured output format.
func (ow *OutWriter) WriteSeries(report schema.SeriesReport, cfg *contract.Config, duration time.Duration) error {
	return PrintSeriesResults(report, cfg, duration)
}

// WriteMetrics prints the scoring definitions using the configured output format.
func (ow *OutWriter) WriteMetrics(cfg *contract.Config) error {
	return PrintMetricsDefinitions(cfg)
}
