// Package progress derives streaks and completion figures from a challenge's
// daily entries. Everything here is a pure function of its inputs; stored
// counters on a challenge are caches of these values.
package progress

import (
	"math"
	"sort"
	"time"

	"github.com/manav03panchal/mitraa/internal/model"
)

// dayNumber converts a "YYYY-MM-DD" date to a count of days since the Unix
// epoch, so consecutive calendar days differ by exactly one regardless of
// time zone or DST.
func dayNumber(date string) (int64, bool) {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return 0, false
	}
	return t.Unix() / 86400, true
}

type datedEntry struct {
	day       int64
	completed bool
}

// dated returns entries with parseable dates sorted oldest first.
// Entries with malformed dates are ignored.
func dated(entries []model.DailyEntry) []datedEntry {
	out := make([]datedEntry, 0, len(entries))
	for _, e := range entries {
		if n, ok := dayNumber(e.Date); ok {
			out = append(out, datedEntry{day: n, completed: e.Completed})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].day < out[j].day })
	return out
}

// CurrentStreak counts consecutive completed days ending at the most recent
// recorded entry. The count stops at the first calendar gap or the first
// incomplete entry, and is zero when the latest entry is incomplete.
func CurrentStreak(entries []model.DailyEntry) int {
	days := dated(entries)
	if len(days) == 0 {
		return 0
	}

	last := days[len(days)-1]
	if !last.completed {
		return 0
	}

	streak := 1
	prev := last.day
	for i := len(days) - 2; i >= 0; i-- {
		d := days[i]
		if d.day == prev {
			continue
		}
		if !d.completed || d.day != prev-1 {
			break
		}
		streak++
		prev = d.day
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed days.
func LongestStreak(entries []model.DailyEntry) int {
	best, run := 0, 0
	var prev int64
	for _, d := range dated(entries) {
		switch {
		case !d.completed:
			run = 0
		case run > 0 && d.day == prev:
			// duplicate day, already counted
		case run > 0 && d.day == prev+1:
			run++
		default:
			run = 1
		}
		prev = d.day
		if run > best {
			best = run
		}
	}
	return best
}

// TotalDays counts completed entries.
func TotalDays(entries []model.DailyEntry) int {
	n := 0
	for _, e := range entries {
		if e.Completed {
			n++
		}
	}
	return n
}

// Percentage returns round(100 * totalDays / targetDays). It is not clamped,
// so it may exceed 100 after corrective entries on a completed challenge.
func Percentage(totalDays, targetDays int) float64 {
	if targetDays <= 0 {
		return 0
	}
	return math.Round(float64(totalDays) / float64(targetDays) * 100)
}

// ClampedPercentage is Percentage limited to [0, 100] for progress bars.
func ClampedPercentage(totalDays, targetDays int) float64 {
	return math.Max(0, math.Min(100, Percentage(totalDays, targetDays)))
}

// DaysRemaining returns max(0, targetDays - totalDays).
func DaysRemaining(targetDays, totalDays int) int {
	if r := targetDays - totalDays; r > 0 {
		return r
	}
	return 0
}

// Summary bundles the derived values shown for a single challenge.
type Summary struct {
	CurrentStreak int           `json:"current_streak"`
	LongestStreak int           `json:"longest_streak"`
	TotalDays     int           `json:"total_days"`
	TargetDays    int           `json:"target_days"`
	Percentage    float64       `json:"percentage"`
	DaysRemaining int           `json:"days_remaining"`
	IsComplete    bool          `json:"is_complete"`
	Milestone     string        `json:"milestone"`
	Badges        []model.Badge `json:"badges"`
}

// Summarize derives a Summary from a challenge's entries. Stored counters
// are ignored.
func Summarize(c *model.Challenge) Summary {
	total := TotalDays(c.DailyEntries)
	current := CurrentStreak(c.DailyEntries)
	longest := LongestStreak(c.DailyEntries)
	return Summary{
		CurrentStreak: current,
		LongestStreak: longest,
		TotalDays:     total,
		TargetDays:    c.TargetDays,
		Percentage:    Percentage(total, c.TargetDays),
		DaysRemaining: DaysRemaining(c.TargetDays, total),
		IsComplete:    c.IsCompleted,
		Milestone:     model.MilestoneFor(current).Title,
		Badges:        model.Badges(longest),
	}
}

// Stats is the overview across all of a user's challenges.
type Stats struct {
	Challenges     int     `json:"challenges"`
	Active         int     `json:"active"`
	Completed      int     `json:"completed"`
	TotalStreaks   int     `json:"total_streaks"`
	TotalDays      int     `json:"total_days"`
	BestStreak     int     `json:"best_streak"`
	CompletionRate float64 `json:"completion_rate"`
}

// Overview aggregates Stats over challenges. A challenge counts as active
// only while it is active and not completed.
func Overview(challenges []*model.Challenge) Stats {
	s := Stats{Challenges: len(challenges)}
	for _, c := range challenges {
		if c.IsActive && !c.IsCompleted {
			s.Active++
		}
		if c.IsCompleted {
			s.Completed++
		}
		s.TotalStreaks += c.CurrentStreak
		s.TotalDays += c.TotalDays
		if c.LongestStreak > s.BestStreak {
			s.BestStreak = c.LongestStreak
		}
	}
	if s.Challenges > 0 {
		s.CompletionRate = math.Round(float64(s.Completed) / float64(s.Challenges) * 100)
	}
	return s
}
