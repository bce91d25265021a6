package cmd

import (
	"github.com/spf13/cobra"
)

// whoamiResponse is the JSON form of whoami.
type whoamiResponse struct {
	User      string `json:"user"`
	Source    string `json:"source"`
	Anonymous bool   `json:"anonymous"`
	Backend   string `json:"backend"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
}

// whoamiCmd shows the active identity and where its data lives.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active user id and storage key",
	Long: `Show which user id Mitraa is acting as and where its challenges are stored.

The id comes from --user, then MITRAA_USER, then an anonymous id created
on first use.`,
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	resp := whoamiResponse{
		User:      ctx.UserID(),
		Source:    string(ctx.Identity.Source),
		Anonymous: ctx.Identity.Anonymous(),
		Backend:   ctx.Backend,
		Namespace: ctx.Repo.Namespace(),
		Key:       ctx.Repo.Key(ctx.UserID()),
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(resp)
	}

	cli := ctx.CLIFormatter()
	cli.Printf("User:      %s\n", resp.User)
	cli.Printf("Source:    %s\n", resp.Source)
	cli.Printf("Backend:   %s\n", resp.Backend)
	cli.Printf("Namespace: %s\n", resp.Namespace)
	cli.Printf("Key:       %s\n", resp.Key)
	if resp.Anonymous {
		cli.Muted("Set MITRAA_USER or pass --user to use a named id.")
	}
	return nil
}
