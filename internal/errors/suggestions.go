package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrChallengeNotFound: "Use 'mitraa list' to see your challenges and their IDs.",
	ErrInvalidDate:       "Try formats like 'today', 'yesterday', '2 days ago' or '2025-01-03'.",
	ErrInvalidColor:      "Use hex color format like '#4a90e2'.",
	ErrInvalidMood:       "Rate your mood from 1 (very low) to 5 (excellent).",
	ErrTemplateNotFound:  "Use 'mitraa templates' to see the available templates.",
	ErrNotCompleted:      "Keep checking in; the certificate unlocks once the target is reached.",

	ErrStoreUnavailable: "Your progress is kept in memory for this run. Check the store and save again.",
	ErrLockHeld:         "Another mitraa instance is running. Close it and try again.",
	ErrPermissionDenied: "Check file permissions in your data directory (~/.local/share/mitraa/).",
	ErrDiskFull:         "Free up some disk space, or set MITRAA_DATABASE to a different location.",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	if ve, ok := AsValidationError(err); ok && ve.Suggestion != "" {
		return ve.Suggestion
	}

	if IsStorageError(err) {
		return "Your progress is kept in memory for this run. Free up space or fix permissions and check in again to retry the save."
	}

	return ""
}
