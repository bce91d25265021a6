package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/mitraa/internal/challenge"
	"github.com/manav03panchal/mitraa/internal/config"
	"github.com/manav03panchal/mitraa/internal/logging"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/output"
	"github.com/manav03panchal/mitraa/internal/runtime"
)

// completionRuntime returns the active runtime, or opens a short-lived one
// since shell completion runs without the persistent pre-run hook.
func completionRuntime() (*runtime.Context, func()) {
	if ctx != nil {
		return ctx, func() {}
	}
	config.Global.ReloadFromEnv()
	opts := runtime.DefaultOptions()
	opts.User = flagUser
	rc, err := runtime.New(logging.NewRunContext(), opts)
	if err != nil {
		return nil, func() {}
	}
	return rc, func() { _ = rc.Close() }
}

// completeChallengeIDs completes the first argument with the user's
// challenge ids, described by title.
func completeChallengeIDs(filter challenge.Filter) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		rc, done := completionRuntime()
		defer done()
		if rc == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		challenges, err := rc.Tracker.List(rc.Ctx, rc.UserID(), filter)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var completions []string
		for _, ch := range challenges {
			id := output.ShortID(ch.ID)
			if strings.HasPrefix(id, toComplete) {
				completions = append(completions, id+"\t"+ch.Title)
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeTemplates completes template slugs.
func completeTemplates(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, t := range model.Templates {
		slug := model.Slug(t.Title)
		if strings.HasPrefix(slug, strings.ToLower(toComplete)) {
			completions = append(completions, slug+"\t"+t.Description)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeCategories completes category names.
func completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(model.Categories, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeIcons completes icon names.
func completeIcons(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(model.IconNames, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completePeriods suggests period expressions for show --period.
func completePeriods(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	periods := []string{
		"today\ttoday's entry",
		"yesterday\tyesterday's entry",
		"this week\tsince Monday",
		"last week\tthe previous week",
		"this month\tthis calendar month",
		"last month\tthe previous month",
	}

	var filtered []string
	for _, p := range periods {
		if strings.HasPrefix(strings.Split(p, "\t")[0], toComplete) {
			filtered = append(filtered, p)
		}
	}
	return filtered, cobra.ShellCompDirectiveNoFileComp
}

func filterPrefix(values []string, prefix string) []string {
	var out []string
	for _, v := range values {
		if strings.HasPrefix(strings.ToLower(v), strings.ToLower(prefix)) {
			out = append(out, v)
		}
	}
	return out
}
