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

// PrintSeriesResults outputs a chart series, dispatching based on the output format configured.
func PrintSeriesResults(report schema.SeriesReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, view{
		name:  "series",
		json:  func(w io.Writer) error { return writeJSON(w, report) },
		csv:   func(w *csv.Writer) error { return writeCSVResultsForSeries(w, report, fmtFloat) },
		table: func(w io.Writer) error { return writeSeriesTable(w, report, fmtFloat, duration) },
	})
}

// writeSeriesTable prints one row per date bucket.
func writeSeriesTable(w io.Writer, report schema.SeriesReport, fmtFloat func(float64) string, duration time.Duration) error {
	if err := writeLines(w, fmt.Sprintf("📈 %s / %s", report.Tracker, report.Field)); err != nil {
		return err
	}
	var data [][]string
	for _, p := range report.Points {
		data = append(data, []string{p.Date, p.FormattedLabel, fmtFloat(p.Value), strconv.Itoa(p.Count)})
	}
	if err := renderTable(w, []string{"Date", "Label", "Value", "Count"}, data); err != nil {
		return err
	}
	return writeLines(w, fmt.Sprintf("%d points built in %v", len(report.Points), duration))
}

// writeCSVResultsForSeries writes the chart series in CSV format.
func writeCSVResultsForSeries(w *csv.Writer, report schema.SeriesReport, fmtFloat func(float64) string) error {
	header := []string{"tracker", "field", "date", "label", "value", "count"}
	return writeCSVWithHeader(w, header, func(w *csv.Writer) error {
		for _, p := range report.Points {
			rec := []string{
				string(report.Tracker),
				string(report.Field),
				p.Date,
				p.FormattedLabel,
				fmtFloat(p.Value),
				strconv.Itoa(p.Count),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
