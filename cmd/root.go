// Package cmd provides the CLI commands for Mitraa.
//
// Mitraa - A Friend Who Cares
// Copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	stderrors "errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/mitraa/internal/challenge"
	"github.com/manav03panchal/mitraa/internal/config"
	"github.com/manav03panchal/mitraa/internal/logging"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/output"
	"github.com/manav03panchal/mitraa/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagUser   string
)

// annotationNoStore marks commands that run without opening the store.
const annotationNoStore = "mitraa/no-store"

// ctx is the shared runtime context.
var ctx *runtime.Context

// reportedError is an error whose details were already written to the
// output, so Execute only needs the exit status.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mitraa",
	Short: "Build habits one day at a time",
	Long: `Mitraa tracks personal challenges: pick a goal, check in every day,
keep your streak alive and earn a certificate when you reach the target.

Examples:
  mitraa create --template gratitude-practice
  mitraa create --title "Evening walk" --category "Physical Health" --days 30
  mitraa checkin 0192a1b2-aaaa --note "walked by the lake" --mood 4
  mitraa checkin 0192a1b2-aaaa --date yesterday --missed
  mitraa list --active
  mitraa dashboard`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands (but allow __complete for dynamic completions)
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}

		if flagDebug {
			logging.InitDebug()
		} else {
			logging.Init(logging.DefaultConfig())
		}

		if _, err := config.LoadDotEnv(); err != nil {
			logging.Warn("could not load .env", logging.KeyError, err)
		}
		config.Global.Reset()
		config.Global.ReloadFromEnv()

		format, err := output.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		colorMode, err := output.ParseColorMode(flagColor)
		if err != nil {
			return err
		}

		if cmd.Annotations[annotationNoStore] != "" {
			return nil
		}

		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug
		opts.User = flagUser

		ctx, err = runtime.New(logging.NewRunContext(), opts)
		if err != nil {
			return err
		}
		ctx.Formatter.Writer = cmd.OutOrStdout()
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRuntime()
	},
	RunE: runOverview,
}

func closeRuntime() error {
	if ctx == nil {
		return nil
	}
	err := ctx.Close()
	ctx = nil
	return err
}

// newFormatter builds a formatter from the global flags for commands that
// run without a runtime context.
func newFormatter(cmd *cobra.Command) *output.Formatter {
	f := output.NewFormatter()
	f.Writer = cmd.OutOrStdout()
	if format, err := output.ParseFormat(flagFormat); err == nil {
		f.Format = format
	}
	if mode, err := output.ParseColorMode(flagColor); err == nil {
		f.ColorMode = mode
	}
	return f
}

// runOverview shows the stats overview and active challenges.
func runOverview(cmd *cobra.Command, args []string) error {
	challenges, err := ctx.Tracker.List(ctx.Ctx, ctx.UserID(), challenge.FilterAll)
	if err != nil {
		return err
	}
	stats, err := ctx.Tracker.Stats(ctx.Ctx, ctx.UserID())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStats(ctx.UserID(), stats)
	}

	var active []*model.Challenge
	for _, ch := range challenges {
		if challenge.FilterActive.Match(ch) {
			active = append(active, ch)
		}
	}

	cli := ctx.CLIFormatter()
	cli.PrintStats(stats)
	cli.Println()
	cli.Title("Active challenges")
	cli.PrintChallengeList(active)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		_ = closeRuntime()
		var reported *reportedError
		if !stderrors.As(err, &reported) {
			reportError(err)
		}
	}
	return err
}

// reportError prints err on stderr, or as a JSON document on stdout when
// --format json is active.
func reportError(err error) {
	f := output.NewFormatter()
	f.Writer = os.Stderr
	if format, perr := output.ParseFormat(flagFormat); perr == nil && format == output.FormatJSON {
		f.Writer = rootCmd.OutOrStdout()
		f.Format = output.FormatJSON
	}
	if mode, perr := output.ParseColorMode(flagColor); perr == nil {
		f.ColorMode = mode
	}
	runtime.PrintError(f, err)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug logging (JSON on stderr)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "",
		"User id to act as (default: MITRAA_USER or your anonymous id)")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{annotationNoStore: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("mitraa %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
		cmd.Println("")
		cmd.Println("Mitraa - A Friend Who Cares")
		cmd.Println("Licensed under SEGV License v1.0")
	},
}
