package cmd

import (
	"github.com/huangsam/agrilens/core"
	"github.com/spf13/cobra"
)

// competitorsCmd ranks competitor brands by threat points.
var competitorsCmd = &cobra.Command{
	Use:   "competitors",
	Short: "Show competitor brands ranked by threat.",
	Long: `Award threat points to each competitor brand for market share, farms
at risk of switching to it, sentiment and mention volume.

Point totals map to a threat level:
- High: 8 points and above
- Medium: 5 points and above
- Low: below 5

Examples:
  # Every brand with its threat level
  agrilens competitors

  # Poultry brands with the point breakdown
  agrilens competitors --category poultry --explain`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteCompetitors, "Cannot run competitors view"),
}

// promosCmd lists competitor promotions.
var promosCmd = &cobra.Command{
	Use:   "promos",
	Short: "Show competitor promotions ranked by discount.",
	Long: `List competitor promotions with the deepest discounts first.

A date range keeps promotions whose campaign window overlaps it.

Examples:
  # Promotions running in March
  agrilens competitors promos --start 2024-03-01 --end 2024-03-31

  # Active discounts only
  agrilens competitors promos --promo-status active --promo-type discount`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecutePromotions, "Cannot run promos view"),
}

// switchingCmd lists farms at risk of switching brands.
var switchingCmd = &cobra.Command{
	Use:   "switching",
	Short: "Show farms at risk of switching, ranked by revenue at risk.",
	Long: `List customer farms at risk of moving to a competitor brand with the
largest estimated revenue loss first, plus the revenue trend.

Examples:
  # All switching risks
  agrilens competitors switching

  # High risks in Luzon as JSON
  agrilens competitors switching --risk-level high --region Luzon --output json`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteSwitching, "Cannot run switching view"),
}
