package logging

import (
	"strings"
)

const (
	// MaskChar is the character used for masking.
	MaskChar = "*"
	// UserIDVisible is how many leading characters of a user id stay readable.
	UserIDVisible = 6
	// MaxValueLength caps long free-text values such as notes and photo data URLs.
	MaxValueLength = 48
)

// sensitiveFields are masked completely.
var sensitiveFields = map[string]bool{
	"token":    true,
	"password": true,
	"secret":   true,
}

// truncatedFields hold user-authored content; they are shortened, never logged whole.
var truncatedFields = map[string]bool{
	"note":           true,
	"photo":          true,
	"future_message": true,
	"description":    true,
}

// MaskUserID keeps the first few characters of an identity and masks the rest.
func MaskUserID(userID string) string {
	if len(userID) <= UserIDVisible {
		return strings.Repeat(MaskChar, len(userID))
	}
	return userID[:UserIDVisible] + strings.Repeat(MaskChar, 3)
}

// Truncate shortens a value to MaxValueLength bytes.
func Truncate(value string) string {
	if len(value) <= MaxValueLength {
		return value
	}
	return value[:MaxValueLength] + "..."
}

// MaskArgs masks sensitive values in a slice of logging arguments.
// Arguments are expected in key-value pairs: key1, value1, key2, value2, ...
func MaskArgs(args []any) []any {
	if len(args) < 2 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 0; i < len(result)-1; i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		strVal, isString := result[i+1].(string)
		lower := strings.ToLower(key)

		switch {
		case sensitiveFields[lower]:
			result[i+1] = strings.Repeat(MaskChar, 8)
		case lower == KeyUser && isString:
			result[i+1] = MaskUserID(strVal)
		case truncatedFields[lower] && isString:
			result[i+1] = Truncate(strVal)
		}
	}

	return result
}
