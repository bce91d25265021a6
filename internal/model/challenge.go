package model

import (
	"sort"
	"time"
)

// DateLayout is the calendar-day format used for entry dates.
const DateLayout = "2006-01-02"

// DailyEntry is one day's check-in for a challenge.
type DailyEntry struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Note      string `json:"note"`
	Photo     string `json:"photo,omitempty"`
	Mood      *int   `json:"mood,omitempty"`
}

// Day parses the entry date as a local calendar day.
func (e DailyEntry) Day() (time.Time, error) {
	return ParseDay(e.Date)
}

// Challenge is a user-defined habit goal with daily check-ins.
type Challenge struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	TargetDays    int          `json:"targetDays"`
	Color         string       `json:"color"`
	Icon          string       `json:"icon"`
	StartDate     time.Time    `json:"startDate"`
	IsActive      bool         `json:"isActive"`
	IsCompleted   bool         `json:"isCompleted"`
	CompletedAt   *time.Time   `json:"completedAt,omitempty"`
	CurrentStreak int          `json:"currentStreak"`
	LongestStreak int          `json:"longestStreak"`
	TotalDays     int          `json:"totalDays"`
	DailyEntries  []DailyEntry `json:"dailyEntries"`
	FutureMessage string       `json:"futureMessage,omitempty"`
}

// Clone returns a deep copy of the challenge.
func (c *Challenge) Clone() *Challenge {
	if c == nil {
		return nil
	}
	out := *c
	if c.CompletedAt != nil {
		at := *c.CompletedAt
		out.CompletedAt = &at
	}
	out.DailyEntries = make([]DailyEntry, len(c.DailyEntries))
	for i, e := range c.DailyEntries {
		out.DailyEntries[i] = e
		if e.Mood != nil {
			m := *e.Mood
			out.DailyEntries[i].Mood = &m
		}
	}
	return &out
}

// EntryIndex returns the index of the entry for date, or -1.
func (c *Challenge) EntryIndex(date string) int {
	for i, e := range c.DailyEntries {
		if e.Date == date {
			return i
		}
	}
	return -1
}

// Entry returns the entry recorded for date, if any.
func (c *Challenge) Entry(date string) (DailyEntry, bool) {
	if i := c.EntryIndex(date); i >= 0 {
		return c.DailyEntries[i], true
	}
	return DailyEntry{}, false
}

// SortedEntries returns the entries ordered by date, oldest first.
// The receiver is not modified.
func (c *Challenge) SortedEntries() []DailyEntry {
	entries := make([]DailyEntry, len(c.DailyEntries))
	copy(entries, c.DailyEntries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return entries
}

// Status returns a short lifecycle label.
func (c *Challenge) Status() string {
	switch {
	case c.IsCompleted:
		return "completed"
	case c.IsActive:
		return "active"
	default:
		return "paused"
	}
}

// ParseDay parses a "YYYY-MM-DD" string as local midnight.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// FormatDay formats a time as its local calendar day.
func FormatDay(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
