package cmd

import (
	"github.com/huangsam/agrilens/core"
	"github.com/huangsam/agrilens/internal/contract"
	"github.com/huangsam/agrilens/internal/store"
	"github.com/spf13/cobra"
)

// exportCmd writes a scored snapshot of every tracker to Parquet.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a scored snapshot of every tracker to Parquet files.",
	Long: `Score every tracker with the configured filters and write one Parquet
file per table next to the --output-file prefix:

  <prefix>.feed_scores.parquet
  <prefix>.brand_threats.parquet
  <prefix>.dealer_issues.parquet
  <prefix>.farm_health.parquet
  <prefix>.series.parquet

Every row carries the same snapshot id and export time.

Examples:
  agrilens export --output-file snapshots/2024-03`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, store.NewSource(cfg.DataDir)); err != nil {
			contract.LogFatal("Cannot export snapshot", err)
		}
	},
}
