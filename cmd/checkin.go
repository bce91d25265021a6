package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/mitraa/internal/challenge"
	"github.com/manav03panchal/mitraa/internal/errors"
	"github.com/manav03panchal/mitraa/internal/parser"
)

// Checkin command flags.
var (
	checkinFlagDate   string
	checkinFlagMissed bool
	checkinFlagNote   string
	checkinFlagPhoto  string
	checkinFlagMood   int
)

// checkinCmd represents the checkin command.
var checkinCmd = &cobra.Command{
	Use:     "checkin [CHALLENGE_ID]",
	Aliases: []string{"ci", "done"},
	Short:   "Record today's (or another day's) check-in",
	Long: `Record a daily check-in for a challenge.

CHALLENGE_ID may be the full id or any unique prefix. It can be left out
when exactly one challenge is active. Checking in again for the same day
replaces that day's entry.

Examples:
  mitraa checkin 0192a1b2-aaaa
  mitraa checkin 0192a1b2 --note "10 minutes of breathing" --mood 4
  mitraa checkin 0192a1b2 --date yesterday --missed
  mitraa checkin 0192a1b2 --date "3 days ago" --photo https://example.com/walk.jpg`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeChallengeIDs(challenge.FilterAll),
	RunE:              runCheckin,
}

func init() {
	checkinCmd.Flags().StringVar(&checkinFlagDate, "date", "", "Day to check in for (default today, e.g. yesterday, 2025-03-01)")
	checkinCmd.Flags().BoolVar(&checkinFlagMissed, "missed", false, "Record the day as missed")
	checkinCmd.Flags().StringVar(&checkinFlagNote, "note", "", "Reflection for the day")
	checkinCmd.Flags().StringVar(&checkinFlagPhoto, "photo", "", "Photo URL for the day")
	checkinCmd.Flags().IntVar(&checkinFlagMood, "mood", 0, "Mood from 1 (struggling) to 5 (great)")

	rootCmd.AddCommand(checkinCmd)
}

// resolveChallengeArg returns the id argument, or the id of the only
// active challenge when none was given.
func resolveChallengeArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	active, err := ctx.Tracker.List(ctx.Ctx, ctx.UserID(), challenge.FilterActive)
	if err != nil {
		return "", err
	}
	switch len(active) {
	case 1:
		return active[0].ID, nil
	case 0:
		return "", errors.NewValidationError("challenge", "no active challenges",
			"Start one with 'mitraa create --template <name>'")
	default:
		return "", errors.NewValidationError("challenge", "more than one active challenge",
			"Pass a challenge id. Use 'mitraa list --active' to see them.")
	}
}

func runCheckin(cmd *cobra.Command, args []string) error {
	id, err := resolveChallengeArg(args)
	if err != nil {
		return err
	}

	date, err := parser.ParseDate(checkinFlagDate, ctx.Tracker.Controller().Now())
	if err != nil {
		return err
	}

	in := challenge.EntryInput{
		Completed: !checkinFlagMissed,
		Note:      checkinFlagNote,
		Photo:     checkinFlagPhoto,
	}
	if cmd.Flags().Changed("mood") {
		mood := checkinFlagMood
		in.Mood = &mood
	}

	ctx.LogDebug("checkin", "challenge", id, "date", date.Format("2006-01-02"), "missed", checkinFlagMissed)

	result, err := ctx.Tracker.CheckIn(ctx.Ctx, ctx.UserID(), id, date, in)
	if result == nil {
		return err
	}

	if ctx.IsJSON() {
		if perr := ctx.JSONFormatter().PrintCheckIn(result, err); perr != nil {
			return perr
		}
		if err != nil {
			return &reportedError{err: err}
		}
		return nil
	}

	cli := ctx.CLIFormatter()
	cli.PrintCheckIn(result)
	if result.Completion != nil {
		cli.Println()
		cli.PrintCertificate(result.Completion.Challenge, certificateName())
	}
	return err
}

// certificateName is the name printed on certificates: the user id unless
// it is an anonymous one.
func certificateName() string {
	if ctx.Identity.Anonymous() {
		return ""
	}
	return ctx.UserID()
}
