// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/agrilens/schema"
)

// RecordSource loads the record collections the trackers run over.
// This allows the core logic to be tested without touching the filesystem.
type RecordSource interface {
	// Load returns every collection. Implementations never cache between calls.
	Load(ctx context.Context) (*schema.Dataset, error)
}

// ResultWriter renders every tracker view in the configured output format.
// This allows the executors to be tested without capturing stdout.
type ResultWriter interface {
	WriteFeed(report schema.FeedReport, cfg *Config, duration time.Duration) error
	WriteTrends(trends []schema.BrandTrend, cfg *Config, duration time.Duration) error
	WriteCompetitors(report schema.CompetitorReport, cfg *Config, duration time.Duration) error
	WritePromotions(report schema.PromotionReport, cfg *Config, duration time.Duration) error
	WriteSwitching(report schema.SwitchingReport, cfg *Config, duration time.Duration) error
	WriteDealers(report schema.DealerReport, cfg *Config, duration time.Duration) error
	WriteFarms(report schema.FarmReport, cfg *Config, duration time.Duration) error
	WriteSeries(report schema.SeriesReport, cfg *Config, duration time.Duration) error
	WriteMetrics(cfg *Config) error
}
