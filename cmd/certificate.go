package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/mitraa/internal/challenge"
	"github.com/manav03panchal/mitraa/internal/errors"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/output"
	"github.com/manav03panchal/mitraa/internal/validate"
)

// Certificate command flags.
var (
	certificateFlagName string
	certificateFlagSave bool
)

// certificateCmd re-renders the certificate of a completed challenge.
var certificateCmd = &cobra.Command{
	Use:     "certificate CHALLENGE_ID",
	Aliases: []string{"cert"},
	Short:   "Show the certificate for a completed challenge",
	Long: `Show the certificate of achievement, your message from the past
and the share text for a completed challenge.

Examples:
  mitraa certificate 0192a1b2
  mitraa certificate 0192a1b2 --name "Priya Sharma"
  mitraa certificate 0192a1b2 --save`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeChallengeIDs(challenge.FilterCompleted),
	RunE:              runCertificate,
}

func init() {
	certificateCmd.Flags().StringVarP(&certificateFlagName, "name", "n", "", "Name on the certificate (default: your user id)")
	certificateCmd.Flags().BoolVarP(&certificateFlagSave, "save", "s", false, "Also save a plain-text copy in the current directory")
	rootCmd.AddCommand(certificateCmd)
}

func runCertificate(cmd *cobra.Command, args []string) error {
	ch, err := ctx.Tracker.Get(ctx.Ctx, ctx.UserID(), args[0])
	if err != nil {
		return err
	}
	if !ch.IsCompleted {
		return errors.Wrapf(errors.ErrNotCompleted, "%s has %d of %d days", ch.Title, ch.TotalDays, ch.TargetDays)
	}

	name := certificateFlagName
	if name == "" {
		name = certificateName()
	}

	if ctx.IsJSON() {
		if name == "" {
			name = "Amazing Individual"
		}
		return ctx.JSONFormatter().PrintCertificate(ch, name)
	}
	cli := ctx.CLIFormatter()
	cli.PrintCertificate(ch, name)
	if certificateFlagSave {
		path, err := saveCertificate(ch, name)
		if err != nil {
			return err
		}
		cli.Println()
		cli.Success("Saved " + path)
	}
	return nil
}

// saveCertificate writes an uncoloured certificate to
// "<title>-certificate.txt" and returns the file name.
func saveCertificate(ch *model.Challenge, name string) (string, error) {
	path := validate.SafeFilename(ch.Title) + "-certificate.txt"
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "save certificate")
	}
	defer f.Close()

	plain := &output.Formatter{Writer: f, Format: output.FormatPlain, ColorMode: output.ColorNever}
	output.NewCLIFormatter(plain).PrintCertificate(ch, name)
	return path, nil
}
