package cmd

import (
	"github.com/huangsam/agrilens/core"
	"github.com/spf13/cobra"
)

// feedCmd ranks feed trial observations by performance index.
var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show feed trials ranked by performance index.",
	Long: `Score every feed trial observation and rank it by performance index.

Each observation gets sub-scores for FCR, weight gain and mortality. The
index is the weighted mean of the sub-scores that were reported, so a
trial missing one metric is still scored on the others.

Ratings:
- Excellent: 85 and above
- Good: 70 and above
- Average: 50 and above
- Poor: below 50

Examples:
  # Best performing trials
  agrilens feed --limit 10

  # Worst FCR first, with the sub-score breakdown
  agrilens feed --rank-by fcr --direction desc --explain

  # One brand in one province, as CSV
  agrilens feed --feed-brand "AgriPrime Broiler" --province Pampanga --output csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteFeed, "Cannot run feed view"),
}

// trendCmd reports how each brand's feed metrics moved over the window.
var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show the per-brand direction of each feed metric.",
	Long: `Split each brand's trials by date into an older and a recent half and
compare the metric means of the two halves.

A change within the metric's tolerance is stable. Otherwise the direction
follows the metric's polarity: a falling FCR is improving, a falling
weight gain is declining.

Examples:
  # Trends for every brand
  agrilens feed trend

  # Trends since February for finisher feeds
  agrilens feed trend --start 2024-02-01 --feed-type finisher`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteTrend, "Cannot run trend view"),
}
