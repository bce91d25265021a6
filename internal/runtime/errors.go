package runtime

import (
	stderrors "errors"

	"github.com/manav03panchal/mitraa/internal/errors"
	"github.com/manav03panchal/mitraa/internal/output"
	"github.com/manav03panchal/mitraa/internal/parser"
)

// FormatError formats an error for the terminal. Date errors carry their
// own examples; everything else gets the category-specific message and
// suggestion.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var dateErr *parser.DateParseError
	if stderrors.As(err, &dateErr) {
		return dateErr.FormatWithExamples()
	}
	return errors.FormatByCategory(err)
}

// PrintError writes err to f in its configured format.
func PrintError(f *output.Formatter, err error) {
	if err == nil {
		return
	}
	if f.Format == output.FormatJSON {
		_ = output.NewJSONFormatter(f).PrintError(
			err.Error(),
			errors.Classify(err).String(),
			errors.GetSuggestion(err),
		)
		return
	}
	output.NewCLIFormatter(f).Error(FormatError(err))
}
