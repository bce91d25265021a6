package cmd

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/mitraa/internal/errors"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/output"
)

// Export command flags.
var (
	exportFlagAll    bool
	exportFlagFormat string
	exportFlagOutput string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"ex", "dump"},
	Short:   "Export challenge data",
	Long: `Export your stored challenges, or every user's with --all.

JSON exports hold the stored challenge records. CSV exports have one row
per check-in.

Examples:
  mitraa export
  mitraa export -o backup.json
  mitraa export --all -o everyone.json
  mitraa export -F csv -o checkins.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportFlagAll, "all", false, "Export every user's collection")
	exportCmd.Flags().StringVarP(&exportFlagFormat, "export-format", "F", "json", "Export format: json, csv")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file (stdout if omitted)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFlagFormat != "json" && exportFlagFormat != "csv" {
		return errors.NewValidationErrorWithValue("export-format", exportFlagFormat,
			"unknown export format", "Use json or csv")
	}

	users := []string{ctx.UserID()}
	if exportFlagAll {
		var err error
		users, err = ctx.Repo.Users(ctx.Ctx)
		if err != nil {
			return err
		}
	}

	doc := output.ExportResponse{
		ExportedAt:  time.Now().Format(time.RFC3339),
		Namespace:   ctx.Repo.Namespace(),
		Collections: make(map[string][]*model.Challenge, len(users)),
	}
	for _, u := range users {
		challenges, err := ctx.Repo.LoadAll(ctx.Ctx, u)
		if err != nil {
			return errors.Wrapf(err, "export %s", u)
		}
		doc.Collections[u] = challenges
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportFlagOutput != "" {
		f, err := os.Create(exportFlagOutput)
		if err != nil {
			return errors.Wrap(err, "create export file")
		}
		defer f.Close()
		w = f
	}

	ctx.LogDebug("export", "users", len(users), "format", exportFlagFormat)

	if exportFlagFormat == "csv" {
		return exportCSV(w, users, doc.Collections)
	}
	return exportJSON(w, doc)
}

func exportJSON(w io.Writer, doc output.ExportResponse) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func exportCSV(w io.Writer, users []string, collections map[string][]*model.Challenge) error {
	writer := csv.NewWriter(w)

	header := []string{"user", "challenge_id", "title", "category", "target_days", "date", "completed", "mood", "note", "photo"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, u := range users {
		for _, ch := range collections[u] {
			for _, e := range ch.SortedEntries() {
				mood := ""
				if e.Mood != nil {
					mood = strconv.Itoa(*e.Mood)
				}
				row := []string{
					u,
					ch.ID,
					ch.Title,
					ch.Category,
					strconv.Itoa(ch.TargetDays),
					e.Date,
					strconv.FormatBool(e.Completed),
					mood,
					e.Note,
					e.Photo,
				}
				if err := writer.Write(row); err != nil {
					return err
				}
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
