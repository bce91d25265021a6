package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/output"
)

// templatesCmd lists the built-in templates.
var templatesCmd = &cobra.Command{
	Use:         "templates",
	Aliases:     []string{"tpl"},
	Short:       "List challenge templates",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		f := newFormatter(cmd)
		if f.Format == output.FormatJSON {
			return f.JSON(output.TemplatesResponse{Templates: model.Templates})
		}
		output.NewCLIFormatter(f).PrintTemplates(model.Templates)
		return nil
	},
}

// categoriesCmd lists the categories, icons and colours for custom challenges.
var categoriesCmd = &cobra.Command{
	Use:         "categories",
	Short:       "List categories, icons and colours",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		f := newFormatter(cmd)
		if f.Format == output.FormatJSON {
			return f.JSON(output.CategoriesResponse{
				Categories: model.Categories,
				Icons:      model.IconNames,
				Colors:     model.Colors,
			})
		}
		output.NewCLIFormatter(f).PrintCategories()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(categoriesCmd)
}
