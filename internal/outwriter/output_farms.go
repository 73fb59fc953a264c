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

// farmBreakdownKeys is the display order of the health sub-scores.
var farmBreakdownKeys = []schema.BreakdownKey{schema.BreakdownIssueLoad, schema.BreakdownSeverity, schema.BreakdownVerification}

// PrintFarmResults outputs the ranked farm health results, dispatching based on the output format configured.
func PrintFarmResults(report schema.FarmReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return dispatch(cfg, view{
		name:  "farm health",
		json:  func(w io.Writer) error { return writeJSON(w, report) },
		csv:   func(w *csv.Writer) error { return writeCSVResultsForFarms(w, report.Farms, fmtFloat, intFmt) },
		table: func(w io.Writer) error { return writeFarmTable(w, report, cfg, fmtFloat, intFmt, duration) },
	})
}

// writeFarmTable prints farms with the ones needing attention first.
func writeFarmTable(w io.Writer, report schema.FarmReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	headers := []string{"Rank", "Farm", "Type", "Status", "Verified", "Open", "Score", "Health"}
	if cfg.Detail {
		headers = append(headers, "Province", "Size (ha)", "Headcount", "Revenue")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}

	maxWidth := getMaxTableTextWidth(cfg)
	var data [][]string
	for _, r := range report.Farms {
		f := r.Record
		verified := "no"
		if f.Verified {
			verified = "yes"
		}
		row := []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(f.FarmName, maxWidth),
			f.FarmType,
			f.Status,
			verified,
			fmt.Sprintf(intFmt, f.OpenIssues),
			fmtFloat(f.Score),
			contract.Label(cfg, string(f.Rating)),
		}
		if cfg.Detail {
			row = append(row,
				f.Province,
				fmtFloat(f.FarmSize),
				fmt.Sprintf(intFmt, f.Headcount),
				fmtFloat(f.MonthlyRevenue),
			)
		}
		if cfg.Explain {
			row = append(row, formatBreakdown(f.Scores, farmBreakdownKeys, fmtFloat))
		}
		data = append(data, row)
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}

	s := report.Summary
	return writeLines(w,
		fmt.Sprintf("Showing %d of %d farms (verified: %s%%, open issues: %d)",
			len(report.Farms), s.Total, fmtFloat(s.VerificationRate), s.OpenIssues),
		fmt.Sprintf("Total size: %s ha, headcount: %d, monthly revenue: %s",
			fmtFloat(s.TotalFarmSize), s.TotalHeadcount, fmtFloat(s.TotalMonthlyRevenue)),
		fmt.Sprintf("Scored in %v", duration),
	)
}

// writeCSVResultsForFarms writes the ranked farm health results in CSV format.
func writeCSVResultsForFarms(w *csv.Writer, farms []schema.Ranked[schema.FarmHealth], fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"id",
		"farm_name",
		"owner_name",
		"farm_type",
		"status",
		"region",
		"province",
		"registered_date",
		"verified",
		"farm_size",
		"headcount",
		"monthly_revenue",
		"open_issues",
		"score",
		"rating",
	}
	return writeCSVWithHeader(w, header, func(w *csv.Writer) error {
		for _, r := range farms {
			f := r.Record
			rec := []string{
				strconv.Itoa(r.Rank),
				f.ID,
				f.FarmName,
				f.OwnerName,
				f.FarmType,
				f.Status,
				f.Region,
				f.Province,
				f.RegisteredDate,
				strconv.FormatBool(f.Verified),
				fmtFloat(f.FarmSize),
				fmt.Sprintf(intFmt, f.Headcount),
				fmtFloat(f.MonthlyRevenue),
				fmt.Sprintf(intFmt, f.OpenIssues),
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
