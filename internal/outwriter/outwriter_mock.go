package outwriter

import (
	"time"

	"github.com/huangsam/agrilens/internal/contract"
	"github.com/huangsam/agrilens/schema"
	"github.com/stretchr/testify/mock"
)

// MockResultWriter is a mock implementation of contract.ResultWriter for testing.
type MockResultWriter struct {
	mock.Mock
}

var _ contract.ResultWriter = (*MockResultWriter)(nil)

// WriteFeed mocks the feed view.
func (m *MockResultWriter) WriteFeed(report schema.FeedReport, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}

// WriteTrends mocks the trend view.
func (m *MockResultWriter) WriteTrends(trends []schema.BrandTrend, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(trends, cfg, duration)
	return args.Error(0)
}

// WriteCompetitors mocks the competitor view.
func (m *MockResultWriter) WriteCompetitors(report schema.CompetitorReport, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}

// WritePromotions mocks the promotion view.
func (m *MockResultWriter) WritePromotions(report schema.PromotionReport, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}

// WriteSwitching mocks the switching view.
func (m *MockResultWriter) WriteSwitching(report schema.SwitchingReport, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}

// WriteDealers mocks the dealer view.
func (m *MockResultWriter) WriteDealers(report schema.DealerReport, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}

// WriteFarms mocks the farm view.
func (m *MockResultWriter) WriteFarms(report schema.FarmReport, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}

// WriteSeries mocks the series view.
func (m *MockResultWriter) WriteSeries(report schema.SeriesReport, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}

// WriteMetrics mocks the metrics view.
func (m *MockResultWriter) WriteMetrics(cfg *contract.Config) error {
	args := m.Called(cfg)
	return args.Error(0)
}
