// Package parquet provides data structures and functions for exporting scored
// dashboard snapshots to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/agrilens/schema"
	"github.com/parquet-go/parquet-go"
)

// FeedScoreRow is one scored feed observation.
type FeedScoreRow struct {
	// SnapshotID groups every row written by one export run
	SnapshotID string `parquet:"snapshot_id,snappy"`

	// ExportTime is when the snapshot was taken (stored as TIMESTAMP with nanosecond precision)
	ExportTime time.Time `parquet:"export_time,snappy"`

	RecordID  string `parquet:"record_id,snappy"`
	FarmID    string `parquet:"farm_id,snappy"`
	FeedBrand string `parquet:"feed_brand,snappy"`
	FeedType  string `parquet:"feed_type,snappy"`
	Region    string `parquet:"region,snappy"`
	Province  string `parquet:"province,snappy"`
	Date      string `parquet:"date,snappy"`

	// FCR, WeightGain and Mortality are null when the observation did not report them
	FCR        *float64 `parquet:"fcr,optional,snappy"`
	WeightGain *float64 `parquet:"weight_gain,optional,snappy"`
	Mortality  *float64 `parquet:"mortality,optional,snappy"`

	Score  float64 `parquet:"score,snappy"`
	Rating string  `parquet:"rating,snappy"`
}

// BrandThreatRow is one competitor brand with its threat points.
type BrandThreatRow struct {
	SnapshotID    string    `parquet:"snapshot_id,snappy"`
	ExportTime    time.Time `parquet:"export_time,snappy"`
	BrandID       string    `parquet:"brand_id,snappy"`
	Name          string    `parquet:"name,snappy"`
	Category      string    `parquet:"category,snappy"`
	PricePoint    string    `parquet:"price_point,snappy"`
	MarketShare   float64   `parquet:"market_share,snappy"`
	Sentiment     string    `parquet:"sentiment,snappy"`
	MentionVolume int32     `parquet:"mention_volume,snappy"`
	ThreatPoints  int32     `parquet:"threat_points,snappy"`
	ThreatLevel   string    `parquet:"threat_level,snappy"`
}

// DealerIssueRow is one dealer issue.
type DealerIssueRow struct {
	SnapshotID   string    `parquet:"snapshot_id,snappy"`
	ExportTime   time.Time `parquet:"export_time,snappy"`
	IssueID      string    `parquet:"issue_id,snappy"`
	DealerName   string    `parquet:"dealer_name,snappy"`
	IssueType    string    `parquet:"issue_type,snappy"`
	Severity     string    `parquet:"severity,snappy"`
	Status       string    `parquet:"status,snappy"`
	Region       string    `parquet:"region,snappy"`
	Province     string    `parquet:"province,snappy"`
	ReportedDate string    `parquet:"reported_date,snappy"`

	// ResolvedDate is null for issues that are still open
	ResolvedDate *string `parquet:"resolved_date,optional,snappy"`

	RevenueLoss    float64 `parquet:"revenue_loss,snappy"`
	ActionRequired bool    `parquet:"action_required,snappy"`
}

// FarmHealthRow is one farm registration with its health score.
type FarmHealthRow struct {
	SnapshotID     string    `parquet:"snapshot_id,snappy"`
	ExportTime     time.Time `parquet:"export_time,snappy"`
	FarmID         string    `parquet:"farm_id,snappy"`
	FarmName       string    `parquet:"farm_name,snappy"`
	FarmType       string    `parquet:"farm_type,snappy"`
	Status         string    `parquet:"status,snappy"`
	Region         string    `parquet:"region,snappy"`
	Province       string    `parquet:"province,snappy"`
	Verified       bool      `parquet:"verified,snappy"`
	FarmSize       float64   `parquet:"farm_size,snappy"`
	MonthlyRevenue float64   `parquet:"monthly_revenue,snappy"`
	OpenIssues     int32     `parquet:"open_issues,snappy"`
	HealthScore    float64   `parquet:"health_score,snappy"`
	HealthRating   string    `parquet:"health_rating,snappy"`
}

// SeriesRow is one chart point of an exported series.
type SeriesRow struct {
	SnapshotID string  `parquet:"snapshot_id,snappy"`
	Tracker    string  `parquet:"tracker,snappy"`
	Field      string  `parquet:"field,snappy"`
	Date       string  `parquet:"date,snappy"`
	Value      float64 `parquet:"value,snappy"`
	Count      int32   `parquet:"count,snappy"`
}

// Snapshot is the full set of rows written by one export run.
type Snapshot struct {
	ID      string
	Time    time.Time
	Feed    []FeedScoreRow
	Threats []BrandThreatRow
	Issues  []DealerIssueRow
	Farms   []FarmHealthRow
	Series  []SeriesRow
}

// writeRows writes a slice of rows to a Parquet file. The schema is derived
// from the struct tags of T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteFeedScoresParquet writes feed score rows to a Parquet file.
func WriteFeedScoresParquet(data []FeedScoreRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteBrandThreatsParquet writes brand threat rows to a Parquet file.
func WriteBrandThreatsParquet(data []BrandThreatRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteDealerIssuesParquet writes dealer issue rows to a Parquet file.
func WriteDealerIssuesParquet(data []DealerIssueRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteFarmHealthParquet writes farm health rows to a Parquet file.
func WriteFarmHealthParquet(data []FarmHealthRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteSeriesParquet writes chart series rows to a Parquet file.
func WriteSeriesParquet(data []SeriesRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteSnapshot writes every table of the snapshot next to prefix and returns
// the paths written, in order.
func WriteSnapshot(s Snapshot, prefix string) ([]string, error) {
	steps := []struct {
		suffix string
		write  func(string) error
	}{
		{".feed_scores.parquet", func(p string) error { return WriteFeedScoresParquet(s.Feed, p) }},
		{".brand_threats.parquet", func(p string) error { return WriteBrandThreatsParquet(s.Threats, p) }},
		{".dealer_issues.parquet", func(p string) error { return WriteDealerIssuesParquet(s.Issues, p) }},
		{".farm_health.parquet", func(p string) error { return WriteFarmHealthParquet(s.Farms, p) }},
		{".series.parquet", func(p string) error { return WriteSeriesParquet(s.Series, p) }},
	}
	paths := make([]string, 0, len(steps))
	for _, step := range steps {
		path := prefix + step.suffix
		if err := step.write(path); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ConvertFeedResults converts scored feed observations to Parquet rows.
func ConvertFeedResults(id string, at time.Time, results []schema.FeedResult) []FeedScoreRow {
	rows := make([]FeedScoreRow, len(results))
	for i, r := range results {
		rows[i] = FeedScoreRow{
			SnapshotID: id,
			ExportTime: at,
			RecordID:   r.ID,
			FarmID:     r.FarmID,
			FeedBrand:  r.FeedBrand,
			FeedType:   r.FeedType,
			Region:     r.Region,
			Province:   r.Province,
			Date:       r.Date,
			FCR:        r.FCR,
			WeightGain: r.WeightGain,
			Mortality:  r.Mortality,
			Score:      r.Score,
			Rating:     string(r.Rating),
		}
	}
	return rows
}

// ConvertBrandThreats converts brand threats to Parquet rows.
func ConvertBrandThreats(id string, at time.Time, threats []schema.BrandThreat) []BrandThreatRow {
	rows := make([]BrandThreatRow, len(threats))
	for i, t := range threats {
		rows[i] = BrandThreatRow{
			SnapshotID:    id,
			ExportTime:    at,
			BrandID:       t.ID,
			Name:          t.Name,
			Category:      t.Category,
			PricePoint:    t.PricePoint,
			MarketShare:   t.MarketShare,
			Sentiment:     t.Sentiment,
			MentionVolume: int32(t.MentionVolume),
			ThreatPoints:  int32(t.Total),
			ThreatLevel:   string(t.Level),
		}
	}
	return rows
}

// ConvertDealerIssues converts dealer issues to Parquet rows.
func ConvertDealerIssues(id string, at time.Time, issues []schema.DealerIssue) []DealerIssueRow {
	rows := make([]DealerIssueRow, len(issues))
	for i, d := range issues {
		var resolved *string
		if d.ResolvedDate != "" {
			resolved = &d.ResolvedDate
		}
		rows[i] = DealerIssueRow{
			SnapshotID:     id,
			ExportTime:     at,
			IssueID:        d.ID,
			DealerName:     d.DealerName,
			IssueType:      d.IssueType,
			Severity:       string(d.Severity),
			Status:         d.Status,
			Region:         d.Region,
			Province:       d.Province,
			ReportedDate:   d.ReportedDate,
			ResolvedDate:   resolved,
			RevenueLoss:    d.EstimatedRevenueLoss,
			ActionRequired: d.ActionRequired,
		}
	}
	return rows
}

// ConvertFarmHealth converts scored farms to Parquet rows.
func ConvertFarmHealth(id string, at time.Time, farms []schema.FarmHealth) []FarmHealthRow {
	rows := make([]FarmHealthRow, len(farms))
	for i, f := range farms {
		rows[i] = FarmHealthRow{
			SnapshotID:     id,
			ExportTime:     at,
			FarmID:         f.ID,
			FarmName:       f.FarmName,
			FarmType:       f.FarmType,
			Status:         f.Status,
			Region:         f.Region,
			Province:       f.Province,
			Verified:       f.Verified,
			FarmSize:       f.FarmSize,
			MonthlyRevenue: f.MonthlyRevenue,
			OpenIssues:     int32(f.OpenIssues),
			HealthScore:    f.Score,
			HealthRating:   string(f.Rating),
		}
	}
	return rows
}

// ConvertSeries converts a chart series to Parquet rows.
func ConvertSeries(id string, tracker schema.Tracker, field schema.SeriesField, points []schema.ChartPoint) []SeriesRow {
	rows := make([]SeriesRow, len(points))
	for i, p := range points {
		rows[i] = SeriesRow{
			SnapshotID: id,
			Tracker:    string(tracker),
			Field:      string(field),
			Date:       p.Date,
			Value:      p.Value,
			Count:      int32(p.Count),
		}
	}
	return rows
}
