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

// PrintDealerResults outputs the ranked dealer issues, dispatching based on the output format configured.
func PrintDealerResults(report schema.DealerReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, view{
		name:  "dealer issues",
		json:  func(w io.Writer) error { return writeJSON(w, report) },
		csv:   func(w *csv.Writer) error { return writeCSVResultsForIssues(w, report.Issues, fmtFloat) },
		table: func(w io.Writer) error { return writeIssueTable(w, report, cfg, fmtFloat, duration) },
	})
}

// writeIssueTable prints the dealer issues followed by the tracker summary.
func writeIssueTable(w io.Writer, report schema.DealerReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	headers := []string{"Rank", "Dealer", "Type", "Severity", "Status", "Revenue Loss", "Reported"}
	if cfg.Detail {
		headers = append(headers, "Province", "Resolved", "Action")
	}

	maxWidth := getMaxTableTextWidth(cfg)
	var data [][]string
	for _, r := range report.Issues {
		d := r.Record
		row := []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(d.DealerName, maxWidth),
			d.IssueType,
			contract.Label(cfg, string(d.Severity)),
			d.Status,
			fmtFloat(d.EstimatedRevenueLoss),
			d.ReportedDate,
		}
		if cfg.Detail {
			resolved := d.ResolvedDate
			if resolved == "" {
				resolved = "-"
			}
			action := "no"
			if d.ActionRequired {
				action = "yes"
			}
			row = append(row, d.Province, resolved, action)
		}
		data = append(data, row)
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}

	s := report.Summary
	return writeLines(w,
		fmt.Sprintf("Showing %d of %d issues (%d open, %d critical, %d need action)",
			len(report.Issues), s.Total, s.Open, s.CriticalCount, s.ActionRequired),
		fmt.Sprintf("Resolution rate: %s%%, avg days to resolve: %s, revenue loss: %s (trend: %s)",
			fmtFloat(s.ResolutionRate), fmtFloat(s.AvgResolutionDays), fmtFloat(s.RevenueLoss),
			contract.Label(cfg, string(report.Trend))),
		fmt.Sprintf("Summarized in %v", duration),
	)
}

// writeCSVResultsForIssues writes the ranked dealer issues in CSV format.
func writeCSVResultsForIssues(w *csv.Writer, issues []schema.Ranked[schema.DealerIssue], fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"id",
		"dealer_name",
		"issue_type",
		"severity",
		"status",
		"region",
		"province",
		"reported_date",
		"resolved_date",
		"revenue_loss",
		"action_required",
	}
	return writeCSVWithHeader(w, header, func(w *csv.Writer) error {
		for _, r := range issues {
			d := r.Record
			rec := []string{
				strconv.Itoa(r.Rank),
				d.ID,
				d.DealerName,
				d.IssueType,
				string(d.Severity),
				d.Status,
				d.Region,
				d.Province,
				d.ReportedDate,
				d.ResolvedDate,
				fmtFloat(d.EstimatedRevenueLoss),
				strconv.FormatBool(d.ActionRequired),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
