package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/mitraa/internal/challenge"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/output"
	"github.com/manav03panchal/mitraa/internal/parser"
)

// Show command flags.
var (
	showFlagPeriod string
	showFlagDays   int
)

// showCmd represents the show command.
var showCmd = &cobra.Command{
	Use:   "show CHALLENGE_ID",
	Short: "Show a challenge and its check-ins",
	Long: `Show a challenge's details, badges, recent history and entries.

History legend: ■ completed, □ missed, · no check-in.

Examples:
  mitraa show 0192a1b2
  mitraa show 0192a1b2 --period "this week"
  mitraa show 0192a1b2 --days 30`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeChallengeIDs(challenge.FilterAll),
	RunE:              runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showFlagPeriod, "period", "p", "", "Only show entries in a period (e.g. \"this week\", \"last month\")")
	showCmd.Flags().IntVar(&showFlagDays, "days", 14, "Number of days in the history strip")
	showCmd.RegisterFlagCompletionFunc("period", completePeriods)

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ch, err := ctx.Tracker.Get(ctx.Ctx, ctx.UserID(), args[0])
	if err != nil {
		return err
	}

	now := ctx.Tracker.Controller().Now()
	entries := ch.SortedEntries()
	if showFlagPeriod != "" {
		r, err := parser.ParsePeriod(showFlagPeriod, now)
		if err != nil {
			return err
		}
		entries = filterEntries(entries, r)
	}

	if ctx.IsJSON() {
		out := output.NewChallengeOutput(ch, true)
		out.Entries = entries
		return ctx.Formatter.JSON(out)
	}

	cli := ctx.CLIFormatter()
	cli.PrintChallenge(ch)
	if showFlagDays > 0 {
		cli.Printf("  History:   %s\n", output.History(ch, now, showFlagDays))
	}
	cli.Println()
	cli.Title("Check-ins")
	cli.PrintEntries(entries)
	return nil
}

func filterEntries(entries []model.DailyEntry, r parser.DayRange) []model.DailyEntry {
	out := make([]model.DailyEntry, 0, len(entries))
	for _, e := range entries {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}
