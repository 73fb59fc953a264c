package cmd

import (
	"github.com/huangsam/agrilens/core"
	"github.com/spf13/cobra"
)

// farmsCmd ranks farm registrations by health.
var farmsCmd = &cobra.Command{
	Use:   "farms",
	Short: "Show registered farms ranked by health, worst first.",
	Long: `Score each registered farm from its open issues, their severity and its
verification status, and list the farms needing attention first.

Ratings:
- Healthy: 80 and above
- At Risk: 50 and above
- Critical: below 50

Examples:
  # Farms needing attention
  agrilens farms --limit 5 --explain

  # Unverified swine farms with size and revenue
  agrilens farms --farm-type swine --verified no --detail`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteFarms, "Cannot run farms view"),
}
