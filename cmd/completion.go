// Package cmd provides the CLI commands for Mitraa.
//
// Mitraa - A Friend Who Cares
// Copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"github.com/spf13/cobra"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for mitraa.

To load completions:

Bash:
  $ source <(mitraa completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ mitraa completion bash > /etc/bash_completion.d/mitraa
  # macOS:
  $ mitraa completion bash > $(brew --prefix)/etc/bash_completion.d/mitraa

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ mitraa completion zsh > "${fpath[1]}/_mitraa"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ mitraa completion fish | source

  # To load completions for each session, execute once:
  $ mitraa completion fish > ~/.config/fish/completions/mitraa.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Annotations:           map[string]string{annotationNoStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
