package cmd

import (
	"runtime"

	"github.com/huangsam/agrilens/internal/store"
	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of agrilens.",
	Long: `Display version information including build details.

Shows:
- Release version
- Git commit hash
- Build timestamp
- Go runtime version
- Size of the embedded seed data`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("agrilens CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
		if ds, err := store.Embedded(); err == nil {
			cmd.Printf("  Seed:    %d feed, %d brands, %d issues, %d farms\n", len(ds.Feed), len(ds.Brands), len(ds.Issues), len(ds.Farms))
		}
	},
}
