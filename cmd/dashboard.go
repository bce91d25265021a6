package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/mitraa/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d", "tui"},
	Short:   "Open the interactive TUI dashboard",
	Long: `Open an interactive terminal dashboard for your challenges.

The dashboard shows:
  - Your overview stats
  - Every challenge with its streak and progress
  - The selected challenge's recent history and milestone

Keyboard Controls:
  ↑/k, ↓/j - Select a challenge
  c        - Check in for today
  m        - Mark today as missed
  r        - Refresh data
  q        - Quit dashboard

Examples:
  mitraa dashboard
  mitraa dash
  mitraa tui`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.DashboardConfig{
		Context:         ctx.Ctx,
		Tracker:         ctx.Tracker,
		UserID:          ctx.UserID(),
		RefreshInterval: ctx.Config.Dashboard.RefreshInterval,
	})
}
