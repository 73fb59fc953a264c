package cmd

import (
	"github.com/huangsam/agrilens/core"
	"github.com/spf13/cobra"
)

// dealersCmd summarizes dealer issues.
var dealersCmd = &cobra.Command{
	Use:   "dealers",
	Short: "Show dealer issues ranked by revenue loss.",
	Long: `List dealer issues with the largest estimated revenue loss first and
summarize the tracker: open and critical counts, resolution rate, average
days to resolve and the revenue loss trend.

Examples:
  # Open issues needing action
  agrilens dealers --status open --action-required yes

  # Critical issues reported in February
  agrilens dealers --severity critical --start 2024-02-01 --end 2024-02-29`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteDealers, "Cannot run dealers view"),
}
