package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/agrilens/internal/contract"
	"github.com/huangsam/agrilens/schema"
)

// threatBreakdownKeys is the display order of the threat point components.
var threatBreakdownKeys = []schema.BreakdownKey{
	schema.BreakdownMarketShare,
	schema.BreakdownSwitching,
	schema.BreakdownSentiment,
	schema.BreakdownMentions,
}

// PrintCompetitorResults outputs the ranked brand threats, dispatching based on the output format configured.
func PrintCompetitorResults(report schema.CompetitorReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, view{
		name:  "competitor threats",
		json:  func(w io.Writer) error { return writeJSON(w, report) },
		csv:   func(w *csv.Writer) error { return writeCSVResultsForThreats(w, report.Threats, fmtFloat) },
		table: func(w io.Writer) error { return writeThreatTable(w, report, cfg, fmtFloat, duration) },
	})
}

// writeThreatTable generates and writes the human-readable threat table.
func writeThreatTable(w io.Writer, report schema.CompetitorReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	headers := []string{"Rank", "Brand", "Category", "Share %", "Sentiment", "Points", "Threat"}
	if cfg.Detail {
		headers = append(headers, "Price", "Mentions", "Regions")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}

	maxWidth := getMaxTableTextWidth(cfg)
	var data [][]string
	for _, r := range report.Threats {
		b := r.Record
		row := []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(b.Name, maxWidth),
			b.Category,
			fmtFloat(b.MarketShare),
			b.Sentiment,
			strconv.Itoa(b.Total),
			contract.Label(cfg, string(b.Level)),
		}
		if cfg.Detail {
			row = append(row, b.PricePoint, strconv.Itoa(b.MentionVolume), strings.Join(b.Regions, ", "))
		}
		if cfg.Explain {
			row = append(row, formatBreakdown(b.Points, threatBreakdownKeys, strconv.Itoa))
		}
		data = append(data, row)
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}

	s := report.Summary
	return writeLines(w,
		fmt.Sprintf("Showing %d of %d brands (avg share: %s%%, top threat: %s with %d points)",
			len(report.Threats), s.TotalBrands, fmtFloat(s.AvgMarketShare), s.TopThreatBrand, s.TopThreatPoints),
		fmt.Sprintf("Promotions: %d active of %d. Switching risks: %d (%s%% high), revenue at risk: %s",
			s.ActivePromotions, s.TotalPromotions, s.SwitchingRisks, fmtFloat(s.HighRiskRate), fmtFloat(s.RevenueAtRisk)),
		fmt.Sprintf("Scored in %v", duration),
	)
}

// writeCSVResultsForThreats writes the ranked brand threats in CSV format.
func writeCSVResultsForThreats(w *csv.Writer, threats []schema.Ranked[schema.BrandThreat], fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"id",
		"name",
		"category",
		"price_point",
		"market_share",
		"regions",
		"sentiment",
		"mention_volume",
		"threat_points",
		"threat_level",
	}
	return writeCSVWithHeader(w, header, func(w *csv.Writer) error {
		for _, r := range threats {
			b := r.Record
			rec := []string{
				strconv.Itoa(r.Rank),
				b.ID,
				b.Name,
				b.Category,
				b.PricePoint,
				fmtFloat(b.MarketShare),
				strings.Join(b.Regions, "|"),
				b.Sentiment,
				strconv.Itoa(b.MentionVolume),
				strconv.Itoa(b.Total),
				string(b.Level),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintPromotionResults outputs the ranked promotions, dispatching based on the output format configured.
func PrintPromotionResults(report schema.PromotionReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, view{
		name:  "promotions",
		json:  func(w io.Writer) error { return writeJSON(w, report) },
		csv:   func(w *csv.Writer) error { return writeCSVResultsForPromotions(w, report.Promotions, fmtFloat) },
		table: func(w io.Writer) error { return writePromotionTable(w, report, cfg, fmtFloat, duration) },
	})
}

// writePromotionTable prints the promotions with their campaign windows.
func writePromotionTable(w io.Writer, report schema.PromotionReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	headers := []string{"Rank", "Brand", "Type", "Status", "Region", "Discount %", "Window"}
	if cfg.Detail {
		headers = append(headers, "Description")
	}

	maxWidth := getMaxTableTextWidth(cfg)
	var data [][]string
	for _, r := range report.Promotions {
		p := r.Record
		row := []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(p.BrandName, maxWidth),
			p.PromoType,
			p.Status,
			p.Region,
			fmtFloat(p.DiscountPct),
			fmt.Sprintf("%s to %s", p.StartDate, p.EndDate),
		}
		if cfg.Detail {
			row = append(row, contract.TruncateText(p.Description, maxWidth))
		}
		data = append(data, row)
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}
	return writeLines(w,
		fmt.Sprintf("Showing %d of %d promotions (%d active)", len(report.Promotions), report.Total, report.Active),
		fmt.Sprintf("Ranked in %v", duration),
	)
}

// writeCSVResultsForPromotions writes the ranked promotions in CSV format.
func writeCSVResultsForPromotions(w *csv.Writer, promos []schema.Ranked[schema.Promotion], fmtFloat func(float64) string) error {
	header := []string{"rank", "id", "brand_id", "brand_name", "promo_type", "status", "region", "start_date", "end_date", "discount_pct"}
	return writeCSVWithHeader(w, header, func(w *csv.Writer) error {
		for _, r := range promos {
			p := r.Record
			rec := []string{
				strconv.Itoa(r.Rank),
				p.ID,
				p.BrandID,
				p.BrandName,
				p.PromoType,
				p.Status,
				p.Region,
				p.StartDate,
				p.EndDate,
				fmtFloat(p.DiscountPct),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintSwitchingResults outputs the ranked switching risks, dispatching based on the output format configured.
func PrintSwitchingResults(report schema.SwitchingReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, view{
		name:  "switching risks",
		json:  func(w io.Writer) error { return writeJSON(w, report) },
		csv:   func(w *csv.Writer) error { return writeCSVResultsForSwitching(w, report.Risks, fmtFloat) },
		table: func(w io.Writer) error { return writeSwitchingTable(w, report, cfg, fmtFloat, duration) },
	})
}

// writeSwitchingTable prints the farms at risk of switching brands.
func writeSwitchingTable(w io.Writer, report schema.SwitchingReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	headers := []string{"Rank", "Farm", "From", "To", "Risk", "Revenue Loss", "Reported"}
	if cfg.Detail {
		headers = append(headers, "Province", "Reasons")
	}

	maxWidth := getMaxTableTextWidth(cfg)
	var data [][]string
	for _, r := range report.Risks {
		s := r.Record
		row := []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(s.FarmName, maxWidth),
			s.CurrentBrand,
			s.CompetitorBrand,
			contract.Label(cfg, string(s.RiskLevel)),
			fmtFloat(s.EstimatedRevenueLoss),
			s.ReportedDate,
		}
		if cfg.Detail {
			row = append(row, s.Province, contract.TruncateText(strings.Join(s.Reasons, ", "), maxWidth))
		}
		data = append(data, row)
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}
	return writeLines(w,
		fmt.Sprintf("Showing %d of %d switching risks (%s%% high, revenue at risk: %s, trend: %s)",
			len(report.Risks), report.Total, fmtFloat(report.HighRiskRate), fmtFloat(report.RevenueAtRisk),
			contract.Label(cfg, string(report.Trend))),
		fmt.Sprintf("Ranked in %v", duration),
	)
}

// writeCSVResultsForSwitching writes the ranked switching risks in CSV format.
func writeCSVResultsForSwitching(w *csv.Writer, risks []schema.Ranked[schema.SwitchingRisk], fmtFloat func(float64) string) error {
	header := []string{"rank", "id", "farm_name", "current_brand", "competitor_brand", "risk_level", "region", "province", "reported_date", "revenue_loss", "reasons"}
	return writeCSVWithHeader(w, header, func(w *csv.Writer) error {
		for _, r := range risks {
			s := r.Record
			rec := []string{
				strconv.Itoa(r.Rank),
				s.ID,
				s.FarmName,
				s.CurrentBrand,
				s.CompetitorBrand,
				string(s.RiskLevel),
				s.Region,
				s.Province,
				s.ReportedDate,
				fmtFloat(s.EstimatedRevenueLoss),
				strings.Join(s.Reasons, "|"),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
