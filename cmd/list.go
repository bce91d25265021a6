package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/mitraa/internal/challenge"
	"github.com/manav03panchal/mitraa/internal/errors"
)

// List command flags.
var (
	listFlagActive    bool
	listFlagCompleted bool
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your challenges",
	Long: `List your challenges with their streak and progress.

Examples:
  mitraa list
  mitraa list --active
  mitraa list --completed --format json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listFlagActive, "active", "a", false, "Only challenges in progress")
	listCmd.Flags().BoolVarP(&listFlagCompleted, "completed", "c", false, "Only completed challenges")
	listCmd.MarkFlagsMutuallyExclusive("active", "completed")

	rootCmd.AddCommand(listCmd)
}

func listFilter() challenge.Filter {
	switch {
	case listFlagActive:
		return challenge.FilterActive
	case listFlagCompleted:
		return challenge.FilterCompleted
	default:
		return challenge.FilterAll
	}
}

func runList(cmd *cobra.Command, args []string) error {
	challenges, err := ctx.Tracker.List(ctx.Ctx, ctx.UserID(), listFilter())
	if err != nil {
		return errors.Wrap(err, "list challenges")
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintChallenges(challenges)
	}
	ctx.CLIFormatter().PrintChallengeList(challenges)
	return nil
}
