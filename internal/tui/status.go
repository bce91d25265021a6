package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/output"
	"github.com/manav03panchal/mitraa/internal/progress"
)

// historyDays is how many days the detail view's history strip covers.
const historyDays = 14

// StatsComponent displays the overview across challenges.
type StatsComponent struct {
	Stats progress.Stats
	Width int
}

// NewStatsComponent creates a new stats component.
func NewStatsComponent(stats progress.Stats, width int) *StatsComponent {
	return &StatsComponent{Stats: stats, Width: width}
}

// View renders the stats component.
func (sc *StatsComponent) View() string {
	cells := []string{
		fmt.Sprintf("Active %d", sc.Stats.Active),
		fmt.Sprintf("Completed %d", sc.Stats.Completed),
		StyleStreak.Render(fmt.Sprintf("🔥 %d", sc.Stats.TotalStreaks)),
		fmt.Sprintf("Days %d", sc.Stats.TotalDays),
		fmt.Sprintf("Best %d", sc.Stats.BestStreak),
	}
	box := StyleStatsBox.Width(sc.Width - 4)
	return box.Render(strings.Join(cells, "   "))
}

// ListComponent displays the challenge list with a cursor.
type ListComponent struct {
	Challenges []*model.Challenge
	Selected   int
	Width      int
}

// NewListComponent creates a new list component.
func NewListComponent(challenges []*model.Challenge, selected, width int) *ListComponent {
	return &ListComponent{Challenges: challenges, Selected: selected, Width: width}
}

// View renders the list component.
func (lc *ListComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render("Challenges"))
	content.WriteString("\n")

	if len(lc.Challenges) == 0 {
		content.WriteString(StyleMuted.Render("No challenges yet"))
		content.WriteString("\n")
		content.WriteString(StyleSubtitle.Render("Create one with 'mitraa create --template gratitude-practice'"))
	} else {
		for i, ch := range lc.Challenges {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(lc.renderRow(i, ch))
		}
	}

	box := StyleListBox.Width(lc.Width - 4)
	return box.Render(content.String())
}

func (lc *ListComponent) renderRow(i int, ch *model.Challenge) string {
	cursor := "  "
	if i == lc.Selected {
		cursor = StyleSelected.Render("▸ ")
	}
	pct := progress.ClampedPercentage(ch.TotalDays, ch.TargetDays)

	status := StyleStreak.Render(fmt.Sprintf("🔥 %d", ch.CurrentStreak))
	if ch.IsCompleted {
		status = StyleSuccess.Render("✓ done")
	}
	return fmt.Sprintf("%s%s  %s  %s %s",
		cursor, ChallengeName(ch), status, ProgressBar(pct, 12), output.FormatPercent(pct))
}

// DetailComponent displays the selected challenge.
type DetailComponent struct {
	Challenge *model.Challenge
	Now       time.Time
	Width     int
}

// NewDetailComponent creates a new detail component.
func NewDetailComponent(ch *model.Challenge, now time.Time, width int) *DetailComponent {
	return &DetailComponent{Challenge: ch, Now: now, Width: width}
}

// View renders the detail component.
func (dc *DetailComponent) View() string {
	if dc.Challenge == nil {
		return ""
	}
	ch := dc.Challenge
	s := progress.Summarize(ch)

	var content strings.Builder
	content.WriteString(ChallengeName(ch))
	content.WriteString("\n")
	if ch.Description != "" {
		content.WriteString(StyleSubtitle.Render(ch.Description))
		content.WriteString("\n")
	}

	barWidth := dc.Width - 12
	if barWidth < 10 {
		barWidth = 10
	}
	content.WriteString("\n")
	content.WriteString(ProgressBar(progress.ClampedPercentage(s.TotalDays, s.TargetDays), barWidth))
	content.WriteString("\n")
	content.WriteString(StyleSubtitle.Render(fmt.Sprintf("%d / %d days (%s)",
		s.TotalDays, s.TargetDays, output.FormatPercent(s.Percentage))))
	content.WriteString("\n\n")

	content.WriteString(StyleStreak.Render(fmt.Sprintf("🔥 %s", output.FormatDays(s.CurrentStreak))))
	content.WriteString(StyleSubtitle.Render(fmt.Sprintf("  best %d  ·  %s", s.LongestStreak, s.Milestone)))
	content.WriteString("\n")
	content.WriteString(StyleSubtitle.Render("Last 14 days: "))
	content.WriteString(output.History(ch, dc.Now, historyDays))

	if entry, ok := ch.Entry(model.FormatDay(dc.Now)); ok && entry.Note != "" {
		content.WriteString("\n\n")
		content.WriteString(StyleNote.Render(fmt.Sprintf("\"%s\"", entry.Note)))
	}

	box := StyleDetailBox.Width(dc.Width - 4)
	if s.IsComplete {
		content.WriteString("\n\n")
		content.WriteString(StyleSuccess.Render("✓ Challenge completed! Run 'mitraa certificate " + output.ShortID(ch.ID) + "'"))
		box = StyleCompleteBox.Width(dc.Width - 4)
	}
	return box.Render(content.String())
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "select"},
		{"c", "check in"},
		{"m", "missed"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}
