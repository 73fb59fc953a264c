package cmd

import (
	"github.com/huangsam/agrilens/core"
	"github.com/spf13/cobra"
)

// seriesCmd builds a chart-ready time series.
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Build a chart series of one tracker field over time.",
	Long: `Group a tracker's records by date and average the chosen field per
date, producing points ready for a line chart.

Fields per tracker:
- feed: fcr, weight_gain, mortality, score
- dealers: revenue_loss
- switching: revenue_loss
- farms: farm_size, monthly_revenue

Examples:
  # Mean FCR per trial date
  agrilens series

  # Dealer revenue loss as CSV
  agrilens series --tracker dealers --output csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteSeries, "Cannot build series"),
}
