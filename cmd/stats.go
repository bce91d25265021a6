package cmd

import (
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"stat", "st"},
	Short:   "Show an overview across your challenges",
	Long: `Show totals across all of your challenges: how many are active and
completed, days checked in, your best streak and your completion rate.

Examples:
  mitraa stats
  mitraa stats --format json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	stats, err := ctx.Tracker.Stats(ctx.Ctx, ctx.UserID())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStats(ctx.UserID(), stats)
	}
	ctx.CLIFormatter().PrintStats(stats)
	return nil
}
