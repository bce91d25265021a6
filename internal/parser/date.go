// Package parser turns user-supplied check-in dates into calendar days.
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/mitraa/internal/errors"
	"github.com/manav03panchal/mitraa/internal/model"
)

// DateExamples lists accepted check-in date formats.
var DateExamples = []string{
	"today",
	"yesterday",
	"2025-01-03",
	"3 days ago",
	"last friday",
	"March 3",
}

// DateParseError reports an unparseable date with examples.
type DateParseError struct {
	Input    string
	Message  string
	Examples []string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid date '%s': %s", e.Input, e.Message)
}

// Unwrap lets callers match errors.ErrInvalidDate.
func (e *DateParseError) Unwrap() error {
	return errors.ErrInvalidDate
}

// FormatWithExamples returns the error message followed by valid examples.
func (e *DateParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func newDateParseError(input, message string) *DateParseError {
	return &DateParseError{Input: input, Message: message, Examples: DateExamples}
}

// ParseDate parses input relative to now and returns local midnight of the
// resulting day. An empty input means today.
func ParseDate(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	today := model.StartOfDay(now)

	switch strings.ToLower(input) {
	case "", "today", "now":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if d, err := model.ParseDay(input); err == nil {
		return d, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return time.Time{}, newDateParseError(input, "not a recognizable date")
	}

	return model.StartOfDay(result.Time), nil
}

// ParseDay is ParseDate formatted as "YYYY-MM-DD".
func ParseDay(input string, now time.Time) (string, error) {
	d, err := ParseDate(input, now)
	if err != nil {
		return "", err
	}
	return model.FormatDay(d), nil
}

// periodRegex matches period expressions like "this week", "last month".
var periodRegex = regexp.MustCompile(`(?i)^(this|current|last|previous)\s+(week|month|year)$`)

// DayRange is a half-open range of calendar days [Start, End).
type DayRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the "YYYY-MM-DD" date falls inside the range.
func (r DayRange) Contains(date string) bool {
	d, err := model.ParseDay(date)
	if err != nil {
		return false
	}
	return !d.Before(r.Start) && d.Before(r.End)
}

// ParsePeriod parses "today", "yesterday", "this week", "last month" and
// similar into a DayRange. Weeks start on Monday.
func ParsePeriod(input string, now time.Time) (DayRange, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	today := model.StartOfDay(now)

	switch input {
	case "today":
		return DayRange{Start: today, End: today.AddDate(0, 0, 1)}, nil
	case "yesterday":
		return DayRange{Start: today.AddDate(0, 0, -1), End: today}, nil
	}

	match := periodRegex.FindStringSubmatch(input)
	if match == nil {
		return DayRange{}, newDateParseError(input, "not a recognizable period")
	}
	previous := match[1] == "last" || match[1] == "previous"

	var r DayRange
	switch match[2] {
	case "week":
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday
		}
		r.Start = today.AddDate(0, 0, -weekday+1)
		if previous {
			r.Start = r.Start.AddDate(0, 0, -7)
		}
		r.End = r.Start.AddDate(0, 0, 7)

	case "month":
		r.Start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		if previous {
			r.Start = r.Start.AddDate(0, -1, 0)
		}
		r.End = r.Start.AddDate(0, 1, 0)

	case "year":
		r.Start = time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location())
		if previous {
			r.Start = r.Start.AddDate(-1, 0, 0)
		}
		r.End = r.Start.AddDate(1, 0, 0)
	}

	return r, nil
}
