package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/agrilens/internal/contract"
	"github.com/huangsam/agrilens/schema"
)

// feedBreakdownKeys is the display order of the feed sub-scores.
var feedBreakdownKeys = []schema.BreakdownKey{schema.BreakdownFCR, schema.BreakdownWeightGain, schema.BreakdownMortality}

// PrintFeedResults outputs the ranked feed results, dispatching based on the output format configured.
func PrintFeedResults(report schema.FeedReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, view{
		name:  "feed results",
		json:  func(w io.Writer) error { return writeJSON(w, report) },
		csv:   func(w *csv.Writer) error { return writeCSVResultsForFeed(w, report.Results, fmtFloat) },
		table: func(w io.Writer) error { return writeFeedTable(w, report, cfg, fmtFloat, duration) },
	})
}

// writeFeedTable generates and writes the human-readable feed table.
func writeFeedTable(w io.Writer, report schema.FeedReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	headers := []string{"Rank", "Brand", "Farm", "Score", "Rating"}
	if cfg.Detail {
		headers = append(headers, "Type", "Date", "FCR", "Gain", "Mort %")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}

	maxWidth := getMaxTableTextWidth(cfg)
	var data [][]string
	for _, r := range report.Results {
		f := r.Record
		row := []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(f.FeedBrand, maxWidth),
			contract.TruncateText(f.FarmName, maxWidth),
			fmtFloat(f.Score),
			contract.Label(cfg, string(f.Rating)),
		}
		if cfg.Detail {
			row = append(row,
				f.FeedType,
				f.Date,
				fmtOptional(f.FCR, fmtFloat, schema.NotAvailable),
				fmtOptional(f.WeightGain, fmtFloat, schema.NotAvailable),
				fmtOptional(f.Mortality, fmtFloat, schema.NotAvailable),
			)
		}
		if cfg.Explain {
			row = append(row, formatBreakdown(f.Scores, feedBreakdownKeys, fmtFloat))
		}
		data = append(data, row)
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}

	s := report.Summary
	return writeLines(w,
		fmt.Sprintf("Showing %d of %d feed records (avg score: %s, avg FCR: %s, excellent: %s%%)",
			len(report.Results), s.Total, fmtFloat(s.AvgScore), fmtFloat(s.AvgFCR), fmtFloat(s.ExcellentRate)),
		fmt.Sprintf("Top brand: %s (%s)", s.TopBrand, fmtFloat(s.TopBrandScore)),
		fmt.Sprintf("Scored in %v", duration),
	)
}

// writeCSVResultsForFeed writes the ranked feed results in CSV format.
// Missing metrics are written as empty cells.
func writeCSVResultsForFeed(w *csv.Writer, results []schema.Ranked[schema.FeedResult], fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"id",
		"farm_id",
		"farm_name",
		"feed_brand",
		"feed_type",
		"region",
		"province",
		"date",
		"fcr",
		"weight_gain",
		"mortality",
		"score",
		"rating",
	}
	return writeCSVWithHeader(w, header, func(w *csv.Writer) error {
		for _, r := range results {
			f := r.Record
			rec := []string{
				strconv.Itoa(r.Rank),
				f.ID,
				f.FarmID,
				f.FarmName,
				f.FeedBrand,
				f.FeedType,
				f.Region,
				f.Province,
				f.Date,
				fmtOptional(f.FCR, fmtFloat, ""),
				fmtOptional(f.WeightGain, fmtFloat, ""),
				fmtOptional(f.Mortality, fmtFloat, ""),
				fmtFloat(f.Score),
				string(f.Rating),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintTrendResults outputs the per-brand trends, dispatching based on the output format configured.
func PrintTrendResults(trends []schema.BrandTrend, cfg *contract.Config, duration time.Duration) error {
	return dispatch(cfg, view{
		name:  "trends",
		json:  func(w io.Writer) error { return writeJSON(w, trends) },
		csv:   func(w *csv.Writer) error { return writeCSVResultsForTrends(w, trends) },
		table: func(w io.Writer) error { return writeTrendTable(w, trends, cfg, duration) },
	})
}

// writeTrendTable prints one row per brand with a colored direction per metric.
func writeTrendTable(w io.Writer, trends []schema.BrandTrend, cfg *contract.Config, duration time.Duration) error {
	headers := []string{"Brand", "Records", "FCR", "Weight Gain", "Mortality", "Score"}
	maxWidth := getMaxTableTextWidth(cfg)
	var data [][]string
	for _, t := range trends {
		data = append(data, []string{
			contract.TruncateText(t.FeedBrand, maxWidth),
			strconv.Itoa(t.Records),
			contract.Label(cfg, string(t.FCR)),
			contract.Label(cfg, string(t.WeightGain)),
			contract.Label(cfg, string(t.Mortality)),
			contract.Label(cfg, string(t.Score)),
		})
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}
	return writeLines(w, fmt.Sprintf("Trends for %d brands computed in %v", len(trends), duration))
}

// writeCSVResultsForTrends writes the per-brand trends in CSV format.
func writeCSVResultsForTrends(w *csv.Writer, trends []schema.BrandTrend) error {
	header := []string{"feed_brand", "records", "fcr", "weight_gain", "mortality", "score"}
	return writeCSVWithHeader(w, header, func(w *csv.Writer) error {
		for _, t := range trends {
			rec := []string{
				t.FeedBrand,
				strconv.Itoa(t.Records),
				string(t.FCR),
				string(t.WeightGain),
				string(t.Mortality),
				string(t.Score),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
