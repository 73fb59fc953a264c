package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/agrilens/internal/outwriter"
	"github.com/huangsam/agrilens/internal/store"
	"github.com/huangsam/agrilens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExecutorsDispatchToWriter(t *testing.T) {
	ds := seedDataset(t)
	tests := []struct {
		name   string
		exec   ExecutorFunc
		method string
	}{
		{"feed", ExecuteFeed, "WriteFeed"},
		{"trend", ExecuteTrend, "WriteTrends"},
		{"competitors", ExecuteCompetitors, "WriteCompetitors"},
		{"promotions", ExecutePromotions, "WritePromotions"},
		{"switching", ExecuteSwitching, "WriteSwitching"},
		{"dealers", ExecuteDealers, "WriteDealers"},
		{"farms", ExecuteFarms, "WriteFarms"},
		{"series", ExecuteSeries, "WriteSeries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(store.MockRecordSource)
			src.On("Load", mock.Anything).Return(ds, nil)
			w := new(outwriter.MockResultWriter)
			w.On(tt.method, mock.Anything, mock.Anything, mock.Anything).Return(nil)

			require.NoError(t, tt.exec(context.Background(), defaultConfig(), src, w))
			src.AssertExpectations(t)
			w.AssertExpectations(t)
		})
	}
}

func TestExecuteFeedLimitsResultsButNotSummary(t *testing.T) {
	src := new(store.MockRecordSource)
	src.On("Load", mock.Anything).Return(seedDataset(t), nil)
	w := new(outwriter.MockResultWriter)
	w.On("WriteFeed", mock.MatchedBy(func(r schema.FeedReport) bool {
		return len(r.Results) == 3 && r.Summary.Total == 12 && r.Results[0].Rank == 1
	}), mock.Anything, mock.Anything).Return(nil)

	cfg := defaultConfig()
	cfg.ResultLimit = 3
	require.NoError(t, ExecuteFeed(context.Background(), cfg, src, w))
	w.AssertExpectations(t)
}

func TestExecutorsPropagateErrors(t *testing.T) {
	t.Run("load failure", func(t *testing.T) {
		src := new(store.MockRecordSource)
		src.On("Load", mock.Anything).Return(nil, errors.New("disk gone"))
		w := new(outwriter.MockResultWriter)

		err := ExecuteDealers(context.Background(), defaultConfig(), src, w)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load records")
		w.AssertNotCalled(t, "WriteDealers", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("writer failure", func(t *testing.T) {
		src := new(store.MockRecordSource)
		src.On("Load", mock.Anything).Return(seedDataset(t), nil)
		w := new(outwriter.MockResultWriter)
		w.On("WriteFarms", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broken pipe"))

		assert.EqualError(t, ExecuteFarms(context.Background(), defaultConfig(), src, w), "broken pipe")
	})

	t.Run("unknown series tracker", func(t *testing.T) {
		src := new(store.MockRecordSource)
		src.On("Load", mock.Anything).Return(seedDataset(t), nil)
		w := new(outwriter.MockResultWriter)

		cfg := defaultConfig()
		cfg.SeriesTracker = schema.CompetitorTracker
		require.Error(t, ExecuteSeries(context.Background(), cfg, src, w))
		w.AssertNotCalled(t, "WriteSeries", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExecuteMetricsSkipsLoading(t *testing.T) {
	src := new(store.MockRecordSource)
	w := new(outwriter.MockResultWriter)
	w.On("WriteMetrics", mock.Anything).Return(nil)

	require.NoError(t, ExecuteMetrics(context.Background(), defaultConfig(), src, w))
	src.AssertNotCalled(t, "Load", mock.Anything)
	w.AssertExpectations(t)
}

func TestBuildSeries(t *testing.T) {
	ds := seedDataset(t)
	tests := []struct {
		name      string
		tracker   schema.Tracker
		field     schema.SeriesField
		points    int
		firstDate string
	}{
		{"feed fcr", schema.FeedTracker, schema.FCRField, 0, "2024-01-01"},
		{"dealer revenue", schema.DealerTracker, schema.RevenueLossField, 6, "2024-01-15"},
		{"switching revenue", schema.SwitchingTracker, schema.RevenueLossField, 5, ""},
		{"farm size", schema.FarmTracker, schema.FarmSizeField, 6, "2023-11-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.SeriesTracker = tt.tracker
			cfg.SeriesField = tt.field

			report, err := BuildSeries(ds, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.tracker, report.Tracker)
			assert.Equal(t, tt.field, report.Field)
			require.NotEmpty(t, report.Points)
			if tt.points > 0 {
				assert.Len(t, report.Points, tt.points)
			}
			if tt.firstDate != "" {
				assert.Equal(t, tt.firstDate, report.Points[0].Date)
			}
		})
	}

	cfg := defaultConfig()
	cfg.SeriesTracker = schema.PromotionTracker
	_, err := BuildSeries(ds, cfg)
	assert.Error(t, err)
}

func TestBuildReportsHonorFilters(t *testing.T) {
	ds := seedDataset(t)
	cfg := defaultConfig()
	cfg.Filters.Issue.Status = schema.Eq(schema.IssueOpen)
	cfg.Filters.Farm.Verified = schema.Eq(false)

	dealers := BuildDealerReport(ds, cfg)
	assert.Equal(t, 2, dealers.Summary.Total)
	assert.Len(t, dealers.Issues, 2)

	farms := BuildFarmReport(ds, cfg)
	require.Len(t, farms.Farms, 2)
	assert.Equal(t, "f-005", farms.Farms[0].Record.ID)
	assert.Equal(t, "f-003", farms.Farms[1].Record.ID)
}

func TestBuildSnapshot(t *testing.T) {
	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	s := BuildSnapshot(seedDataset(t), defaultConfig(), "snap-1", at)

	assert.Equal(t, "snap-1", s.ID)
	assert.Len(t, s.Feed, 12)
	assert.Len(t, s.Threats, 6)
	assert.Len(t, s.Issues, 6)
	assert.Len(t, s.Farms, 6)
	require.NotEmpty(t, s.Series)
	for _, row := range s.Feed {
		assert.Equal(t, "snap-1", row.SnapshotID)
		assert.Equal(t, at, row.ExportTime)
	}
	assert.Equal(t, "fcr", s.Series[0].Field)
}

func TestExecuteExport(t *testing.T) {
	t.Run("writes every table", func(t *testing.T) {
		src := new(store.MockRecordSource)
		src.On("Load", mock.Anything).Return(seedDataset(t), nil)

		cfg := defaultConfig()
		cfg.OutputFile = filepath.Join(t.TempDir(), "dashboard")
		require.NoError(t, ExecuteExport(context.Background(), cfg, src))

		for _, suffix := range []string{".feed_scores", ".brand_threats", ".dealer_issues", ".farm_health", ".series"} {
			_, err := os.Stat(cfg.OutputFile + suffix + ".parquet")
			assert.NoError(t, err, "missing %s", suffix)
		}
	})

	t.Run("requires output file", func(t *testing.T) {
		src := new(store.MockRecordSource)
		err := ExecuteExport(context.Background(), defaultConfig(), src)
		require.Error(t, err)
		src.AssertNotCalled(t, "Load", mock.Anything)
	})
}

func BenchmarkBuildFeedReport(b *testing.B) {
	ds, err := store.Embedded()
	require.NoError(b, err)
	cfg := defaultConfig()

	for b.Loop() {
		BuildFeedReport(ds, cfg)
	}
}
