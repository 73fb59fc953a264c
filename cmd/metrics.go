package cmd

import (
	"github.com/huangsam/agrilens/core"
	"github.com/spf13/cobra"
)

// metricsCmd displays the scoring formulas and thresholds.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the scoring formulas, weights and thresholds in effect",
	Long: `Show how every score is computed, including:
- Sub-score normalization for feed and farm health
- Weights, with any overrides from flags or .agrilens.yaml applied
- Rating bands and threat cut points

No records are loaded - this is purely informational.

Examples:
  # Show default scoring formulas
  agrilens metrics

  # Preview custom weights before using them
  agrilens metrics --weights-override "fcr:2,mortality:0.5"`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteMetrics, "Cannot display metrics"),
}
