package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/mitraa/internal/challenge"
	"github.com/manav03panchal/mitraa/internal/config"
	"github.com/manav03panchal/mitraa/internal/errors"
	"github.com/manav03panchal/mitraa/internal/model"
)

// Create command flags.
var (
	createFlagTemplate    string
	createFlagTitle       string
	createFlagDescription string
	createFlagCategory    string
	createFlagDays        int
	createFlagColor       string
	createFlagIcon        string
	createFlagMessage     string
)

// createCmd represents the create command.
var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"new", "add"},
	Short:   "Start a new challenge",
	Long: `Start a new challenge, either from scratch or from a template.

Flags given alongside --template override the template's values.
A --message is sealed until you complete the challenge.

Examples:
  mitraa create --template digital-detox
  mitraa create --template "Daily Exercise" --days 45
  mitraa create --title "Journal" --description "Write one page" --category Mindfulness --days 21
  mitraa create --title "Sleep by 11" --description "Lights out" --category "Sleep & Rest" \
      --icon Moon --color-hex "#6366f1" --message "Remember how tired you were in March"`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createFlagTemplate, "template", "t", "", "Start from a template (see 'mitraa templates')")
	createCmd.Flags().StringVar(&createFlagTitle, "title", "", "Challenge title")
	createCmd.Flags().StringVarP(&createFlagDescription, "description", "d", "", "What you will do each day")
	createCmd.Flags().StringVarP(&createFlagCategory, "category", "c", "", "Category (see 'mitraa categories')")
	createCmd.Flags().IntVarP(&createFlagDays, "days", "n", 0, "Target number of completed days (default from MITRAA_DEFAULT_TARGET_DAYS)")
	createCmd.Flags().StringVar(&createFlagColor, "color-hex", "", "Accent colour as #RRGGBB")
	createCmd.Flags().StringVar(&createFlagIcon, "icon", "", "Icon name (see 'mitraa categories')")
	createCmd.Flags().StringVarP(&createFlagMessage, "message", "m", "", "Message to your future self, shown on completion")

	createCmd.RegisterFlagCompletionFunc("template", completeTemplates)
	createCmd.RegisterFlagCompletionFunc("category", completeCategories)
	createCmd.RegisterFlagCompletionFunc("icon", completeIcons)

	rootCmd.AddCommand(createCmd)
}

// buildSpec merges the template (if any) with the explicit flags.
func buildSpec(cmd *cobra.Command) (challenge.Spec, error) {
	var spec challenge.Spec
	if createFlagTemplate != "" {
		t, ok := model.FindTemplate(createFlagTemplate)
		if !ok {
			return spec, errors.Wrapf(errors.ErrTemplateNotFound, "template %q", createFlagTemplate)
		}
		spec = challenge.SpecFromTemplate(t)
	} else {
		spec.TargetDays = config.Global.Challenge.DefaultTargetDays
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		spec.Title = createFlagTitle
	}
	if flags.Changed("description") {
		spec.Description = createFlagDescription
	}
	if flags.Changed("category") {
		spec.Category = createFlagCategory
	}
	if flags.Changed("days") {
		spec.TargetDays = createFlagDays
	}
	if flags.Changed("color-hex") {
		spec.Color = createFlagColor
	}
	if flags.Changed("icon") {
		spec.Icon = createFlagIcon
	}
	spec.FutureMessage = createFlagMessage
	return spec, nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	spec, err := buildSpec(cmd)
	if err != nil {
		return err
	}

	ch, err := ctx.Tracker.Create(ctx.Ctx, ctx.UserID(), spec)
	if ch == nil {
		return err
	}

	if ctx.IsJSON() {
		if perr := ctx.JSONFormatter().PrintCreated(ch); perr != nil {
			return perr
		}
	} else {
		ctx.CLIFormatter().PrintChallengeCreated(ch)
	}
	return err
}
