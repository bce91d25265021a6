// Package validate provides input validation helpers for challenge creation
// and daily check-ins. Every failure is an *errors.ValidationError.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/manav03panchal/mitraa/internal/errors"
	"github.com/manav03panchal/mitraa/internal/model"
)

const (
	// MaxTitleLength is the maximum length for a challenge title.
	MaxTitleLength = 100
	// MaxDescriptionLength is the maximum length for a challenge description.
	MaxDescriptionLength = 500
	// MaxNoteLength is the maximum length for a note or future message.
	MaxNoteLength = 2000
	// MaxUserIDLength is the maximum length for a user identity.
	MaxUserIDLength = 128
	// MaxPhotoLength bounds a photo URI, data URLs included (about 5 MB).
	MaxPhotoLength = 5 << 20
)

var (
	hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	userIDRegex   = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._@-]*$`)
)

// NonEmpty validates that a string is not blank.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidationError(field,
			"cannot be empty",
			"Provide a value for "+field)
	}
	return nil
}

// MaxLength validates that value has at most max characters.
func MaxLength(field, value string, max int) error {
	if n := utf8.RuneCountInString(value); n > max {
		return errors.NewValidationError(field,
			fmt.Sprintf("too long (%d characters)", n),
			fmt.Sprintf("Keep %s to %d characters or fewer", field, max))
	}
	return nil
}

// InRange validates that an integer is within [min, max].
func InRange(field string, value, min, max int) error {
	if value < min || value > max {
		return errors.NewValidationErrorWithValue(field, strconv.Itoa(value),
			"out of range",
			fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return nil
}

// Title validates a challenge title.
func Title(title string) error {
	if err := NonEmpty("title", title); err != nil {
		return err
	}
	return MaxLength("title", title, MaxTitleLength)
}

// Description validates a challenge description.
func Description(description string) error {
	if err := NonEmpty("description", description); err != nil {
		return err
	}
	return MaxLength("description", description, MaxDescriptionLength)
}

// Category validates a challenge category. Custom categories are allowed.
func Category(category string) error {
	if err := NonEmpty("category", category); err != nil {
		return err
	}
	return MaxLength("category", category, MaxTitleLength)
}

// TargetDays validates a target between 1 and max days.
func TargetDays(days, max int) error {
	if max <= 0 {
		max = model.MaxTargetDays
	}
	if days < 1 {
		return errors.NewValidationErrorWithValue("targetDays", strconv.Itoa(days),
			"must be at least 1",
			"Pick a target between 1 and "+strconv.Itoa(max)+" days, 21 is a good start")
	}
	return InRange("targetDays", days, 1, max)
}

// HexColor validates a "#RRGGBB" colour. Empty is allowed and means the default.
func HexColor(color string) error {
	if color == "" {
		return nil
	}
	if !hexColorRegex.MatchString(color) {
		return errors.NewValidationErrorWithValue("color", color,
			"invalid color format",
			"Use 6-digit hex format like '#4a90e2'")
	}
	return nil
}

// Icon validates an icon name. Empty is allowed and means the default.
func Icon(icon string) error {
	if icon == "" {
		return nil
	}
	if _, ok := model.Icons[icon]; !ok {
		return errors.NewValidationErrorWithValue("icon", icon,
			"unknown icon",
			"Choose one of: "+strings.Join(model.IconNames, ", "))
	}
	return nil
}

// Note validates a check-in note or future message.
func Note(note string) error {
	return MaxLength("note", note, MaxNoteLength)
}

// Mood validates an optional mood rating.
func Mood(mood *int) error {
	if mood == nil {
		return nil
	}
	if *mood < model.MoodMin || *mood > model.MoodMax {
		return errors.NewValidationErrorWithValue("mood", strconv.Itoa(*mood),
			"must be between 1 and 5",
			"Rate your mood from 1 (very low) to 5 (excellent)")
	}
	return nil
}

// Photo validates an optional photo reference: a data URL or an
// http(s)/file URI.
func Photo(photo string) error {
	if photo == "" {
		return nil
	}
	if len(photo) > MaxPhotoLength {
		return errors.NewValidationError("photo",
			"too large",
			"Attach a smaller image (5 MB or less)")
	}
	u, err := url.Parse(photo)
	if err != nil {
		return errors.NewValidationError("photo",
			"invalid photo reference",
			"Use a data: URL, an https:// link or a local file path")
	}
	switch u.Scheme {
	case "data":
		if !strings.HasPrefix(photo, "data:image/") {
			return errors.NewValidationError("photo",
				"data URL is not an image",
				"Attach a PNG, JPEG or GIF image")
		}
	case "http", "https", "file":
	default:
		return errors.NewValidationError("photo",
			"unsupported photo scheme",
			"Use a data: URL, an https:// link or a local file path")
	}
	return nil
}

// UserID validates a user identity used in storage keys.
func UserID(id string) error {
	if id == "" {
		return errors.NewValidationError("user", "cannot be empty", "Pass --user or set MITRAA_USER")
	}
	if len(id) > MaxUserIDLength {
		return errors.NewValidationError("user",
			"too long",
			fmt.Sprintf("User ids must be %d characters or fewer", MaxUserIDLength))
	}
	if !userIDRegex.MatchString(id) {
		return errors.NewValidationErrorWithValue("user", id,
			"invalid user id",
			"Use letters, numbers, dots, dashes, underscores or @")
	}
	return nil
}
