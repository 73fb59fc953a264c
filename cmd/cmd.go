// Package cmd defines the command-line interface for agrilens.
package cmd

import (
	"github.com/huangsam/agrilens/internal/contract"
	"github.com/huangsam/agrilens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(competitorsCmd)
	rootCmd.AddCommand(dealersCmd)
	rootCmd.AddCommand(farmsCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the trend subcommand to the parent feed command
	feedCmd.AddCommand(trendCmd)

	// Add the competitor subcommands to the parent competitors command
	competitorsCmd.AddCommand(promosCmd)
	competitorsCmd.AddCommand(switchingCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory with JSON overrides for the embedded seed data")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-record metadata columns")
	rootCmd.PersistentFlags().Bool("explain", false, "Print per-record score breakdown")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug logs to stderr")
	rootCmd.PersistentFlags().String("start", "", "Start date (YYYY-MM-DD or RFC3339)")
	rootCmd.PersistentFlags().String("end", "", "End date (YYYY-MM-DD or RFC3339); a bare date includes the whole day")
	rootCmd.PersistentFlags().String("region", schema.AllOption, "Filter by region")
	rootCmd.PersistentFlags().String("province", schema.AllOption, "Filter by province")
	rootCmd.PersistentFlags().String("weights-override", "", "Custom weights (format: 'fcr:2,mortality:0.5,verification:1')")
	bindFlags("root", rootCmd.PersistentFlags())

	// Feed flags are persistent so feed trend shares them
	feedCmd.PersistentFlags().String("feed-brand", schema.AllOption, "Filter by feed brand")
	feedCmd.PersistentFlags().String("feed-type", schema.AllOption, "Filter by feed type: starter or grower or finisher")
	feedCmd.Flags().String("rank-by", string(schema.BreakdownScore), "Rank key: score or fcr or weight_gain or mortality")
	feedCmd.Flags().String("direction", string(schema.Desc), "Sort direction: asc or desc")
	bindFlags("feed", feedCmd.PersistentFlags())
	bindFlags("feed", feedCmd.Flags())

	// Competitor flags are persistent so promos and switching share them
	competitorsCmd.PersistentFlags().String("category", schema.AllOption, "Filter brands by category")
	competitorsCmd.PersistentFlags().String("sentiment", schema.AllOption, "Filter brands by sentiment")
	competitorsCmd.PersistentFlags().String("price-point", schema.AllOption, "Filter brands by price point")
	competitorsCmd.PersistentFlags().String("promo-type", schema.AllOption, "Filter promotions by type")
	competitorsCmd.PersistentFlags().String("promo-status", schema.AllOption, "Filter promotions by status: active or upcoming or expired")
	competitorsCmd.PersistentFlags().String("risk-level", schema.AllOption, "Filter switching risks by level")
	bindFlags("competitors", competitorsCmd.PersistentFlags())

	dealersCmd.Flags().String("issue-type", schema.AllOption, "Filter by issue type")
	dealersCmd.Flags().String("severity", schema.AllOption, "Filter by severity: low or medium or high or critical")
	dealersCmd.Flags().String("status", schema.AllOption, "Filter by status: open or in-progress or resolved or closed")
	dealersCmd.Flags().String("action-required", schema.AllOption, "Filter by whether action is required (yes/no)")
	bindFlags("dealers", dealersCmd.Flags())

	farmsCmd.Flags().String("farm-type", schema.AllOption, "Filter by farm type")
	farmsCmd.Flags().String("farm-status", schema.AllOption, "Filter by registration status")
	farmsCmd.Flags().String("verified", schema.AllOption, "Filter by verification (yes/no)")
	bindFlags("farms", farmsCmd.Flags())

	seriesCmd.Flags().String("tracker", string(schema.FeedTracker), "Tracker to chart: feed or dealers or switching or farms")
	seriesCmd.Flags().String("field", "", "Field to chart (defaults to the tracker's first field)")
	bindFlags("series", seriesCmd.Flags())
}

// bindFlags binds a flag set to Viper, exiting on failure.
func bindFlags(name string, flags *pflag.FlagSet) {
	if err := viper.BindPFlags(flags); err != nil {
		contract.LogFatal("Error binding "+name+" flags", err)
	}
}
