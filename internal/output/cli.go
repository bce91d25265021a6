package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/manav03panchal/mitraa/internal/challenge"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/progress"
	"github.com/manav03panchal/mitraa/internal/validate"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#4a90e2") // Mitraa blue
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorStreak  = lipgloss.Color("#ff9f43") // Orange

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleStreak = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorStreak)

	styleNote = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMuted)

	styleCertificate = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				Padding(1, 4).
				Align(lipgloss.Center)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// Note formats a note.
func (c *CLIFormatter) Note(text string) string {
	return c.render(styleNote, text)
}

// Streak formats a streak count.
func (c *CLIFormatter) Streak(n int) string {
	return c.render(styleStreak, fmt.Sprintf("🔥 %s", FormatDays(n)))
}

// ChallengeName formats a challenge's icon and title in its own colour.
func (c *CLIFormatter) ChallengeName(ch *model.Challenge) string {
	name := model.IconGlyph(ch.Icon) + " " + ch.Title
	if ch.Color == "" {
		return c.render(styleBold, name)
	}
	return c.render(styleBold.Foreground(lipgloss.Color(ch.Color)), name)
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return bar
}

func (c *CLIFormatter) progressLine(ch *model.Challenge) string {
	pct := progress.ClampedPercentage(ch.TotalDays, ch.TargetDays)
	return fmt.Sprintf("%s %s  %d/%d days",
		ProgressBar(pct, 20), FormatPercent(pct), ch.TotalDays, ch.TargetDays)
}

// PrintChallengeCreated prints the confirmation for a new challenge.
func (c *CLIFormatter) PrintChallengeCreated(ch *model.Challenge) {
	c.Success("Challenge created")
	c.Printf("  %s\n", c.ChallengeName(ch))
	c.Printf("  ID:       %s\n", ch.ID)
	c.Printf("  Category: %s\n", ch.Category)
	c.Printf("  Target:   %s\n", FormatDays(ch.TargetDays))
	c.Printf("  Started:  %s\n", FormatDate(ch.StartDate))
	if ch.FutureMessage != "" {
		c.Muted("  A message to your future self is sealed until you finish.")
	}
	c.Muted(fmt.Sprintf("  Check in with 'mitraa checkin %s'.", ShortID(ch.ID)))
}

// listTitleWidth caps the CHALLENGE column.
const listTitleWidth = 32

// PrintChallengeList prints challenges as a table.
func (c *CLIFormatter) PrintChallengeList(challenges []*model.Challenge) {
	if len(challenges) == 0 {
		c.Muted("No challenges yet.")
		c.Muted("Use 'mitraa create --template digital-detox' or 'mitraa templates' to begin.")
		return
	}

	rows := make([]TableRow, 0, len(challenges))
	for _, ch := range challenges {
		pct := progress.ClampedPercentage(ch.TotalDays, ch.TargetDays)
		rows = append(rows, TableRow{Columns: []string{
			ShortID(ch.ID),
			model.IconGlyph(ch.Icon) + " " + validate.TruncateString(ch.Title, listTitleWidth),
			fmt.Sprintf("%d", ch.CurrentStreak),
			fmt.Sprintf("%s %s", ProgressBar(pct, 10), FormatPercent(pct)),
			fmt.Sprintf("%d/%d", ch.TotalDays, ch.TargetDays),
			ch.Status(),
		}})
	}
	c.PrintTable([]string{"ID", "CHALLENGE", "STREAK", "PROGRESS", "DAYS", "STATUS"}, rows)
}

// PrintChallenge prints a challenge's details and badges.
func (c *CLIFormatter) PrintChallenge(ch *model.Challenge) {
	s := progress.Summarize(ch)

	c.Println(c.ChallengeName(ch))
	if ch.Description != "" {
		c.Muted(ch.Description)
	}
	c.Println()
	c.Printf("  ID:        %s\n", ch.ID)
	c.Printf("  Category:  %s\n", ch.Category)
	c.Printf("  Started:   %s\n", FormatDate(ch.StartDate))
	c.Printf("  Status:    %s\n", ch.Status())
	if ch.CompletedAt != nil {
		c.Printf("  Completed: %s\n", FormatDate(*ch.CompletedAt))
	}
	c.Printf("  Progress:  %s\n", c.progressLine(ch))
	c.Printf("  Streak:    %s (best %d)\n", c.Streak(s.CurrentStreak), s.LongestStreak)
	c.Printf("  Milestone: %s\n", s.Milestone)
	if !s.IsComplete {
		c.Printf("  Remaining: %s\n", FormatDays(s.DaysRemaining))
	}

	var earned []string
	for _, b := range s.Badges {
		if b.Earned {
			earned = append(earned, "🏅 "+b.Name)
		}
	}
	if len(earned) > 0 {
		c.Printf("  Badges:    %s\n", strings.Join(earned, "  "))
	}
}

// PrintEntries prints check-in entries oldest first.
func (c *CLIFormatter) PrintEntries(entries []model.DailyEntry) {
	if len(entries) == 0 {
		c.Muted("No check-ins recorded.")
		return
	}
	for _, e := range entries {
		mark := c.render(styleSuccess, "✓")
		if !e.Completed {
			mark = c.render(styleError, "✗")
		}
		line := fmt.Sprintf("  %s  %s", e.Date, mark)
		if e.Mood != nil {
			line += fmt.Sprintf("  mood: %s", model.MoodLabel(*e.Mood))
		}
		if e.Photo != "" {
			line += "  📷"
		}
		if e.Note != "" {
			line += "  " + c.Note(e.Note)
		}
		c.Println(line)
	}
}

// History returns a strip of the n days ending at end: ■ completed,
// □ missed, · no check-in.
func History(ch *model.Challenge, end time.Time, n int) string {
	var b strings.Builder
	start := model.StartOfDay(end).AddDate(0, 0, -(n - 1))
	for i := 0; i < n; i++ {
		day := model.FormatDay(start.AddDate(0, 0, i))
		e, ok := ch.Entry(day)
		switch {
		case !ok:
			b.WriteString("·")
		case e.Completed:
			b.WriteString("■")
		default:
			b.WriteString("□")
		}
	}
	return b.String()
}

// PrintCheckIn prints the result of a check-in.
func (c *CLIFormatter) PrintCheckIn(r *challenge.CheckInResult) {
	verb := "Checked in"
	if r.Replaced {
		verb = "Updated check-in"
	}
	if r.Entry.Completed {
		c.Success(fmt.Sprintf("%s for %s on %s", verb, r.Challenge.Title, r.Entry.Date))
	} else {
		c.Warning(fmt.Sprintf("%s for %s on %s (missed)", verb, r.Challenge.Title, r.Entry.Date))
	}
	if r.Entry.Mood != nil {
		c.Printf("  Mood:      %s\n", model.MoodLabel(*r.Entry.Mood))
	}
	if r.Entry.Note != "" {
		c.Printf("  Note:      %s\n", c.Note(r.Entry.Note))
	}
	c.Printf("  Streak:    %s\n", c.Streak(r.Summary.CurrentStreak))
	c.Printf("  Progress:  %s\n", c.progressLine(r.Challenge))
	c.Printf("  Milestone: %s\n", r.Milestone)

	if r.Celebrate && r.Completion == nil {
		c.Println()
		if r.Summary.CurrentStreak == 1 {
			c.Println(c.render(styleStreak, "🎉 Day one done. Every streak starts here!"))
		} else {
			c.Println(c.render(styleStreak, fmt.Sprintf("🎉 %d-day streak! Keep it going!", r.Summary.CurrentStreak)))
		}
	}
}

// ShareText returns the message a user can post about a completed challenge.
func ShareText(ch *model.Challenge) string {
	return fmt.Sprintf("Just completed my %d-day %s challenge on Mitraa! 🎉 #MitraaProgress #MentalHealthJourney",
		ch.TargetDays, ch.Title)
}

// Certificate renders the certificate of achievement for a completed challenge.
func (c *CLIFormatter) Certificate(ch *model.Challenge, name string) string {
	if name == "" {
		name = "Amazing Individual"
	}
	awarded := ch.StartDate
	if ch.CompletedAt != nil {
		awarded = *ch.CompletedAt
	}

	lines := []string{
		c.render(styleTitle, "🏆 Certificate of Achievement"),
		"",
		"This certifies that",
		c.render(styleBold, name),
		"has successfully completed the",
		c.ChallengeName(ch),
		"challenge",
		"",
		"demonstrating exceptional commitment and perseverance over",
		fmt.Sprintf("%d days", ch.TargetDays),
		"",
		fmt.Sprintf("Total days: %d   Best streak: %d   Target: %d",
			ch.TotalDays, ch.LongestStreak, ch.TargetDays),
		"",
		"Awarded on " + FormatLongDate(awarded) + " by",
		c.render(styleBold, "Mitraa - A Friend Who Cares"),
	}

	box := styleCertificate
	if c.IsColorEnabled() {
		accent := colorPrimary
		if ch.Color != "" {
			accent = lipgloss.Color(ch.Color)
		}
		box = box.BorderForeground(accent)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// PrintCertificate prints the certificate, the sealed future message and
// the share text.
func (c *CLIFormatter) PrintCertificate(ch *model.Challenge, name string) {
	c.Println(c.Certificate(ch, name))
	if ch.FutureMessage != "" {
		c.Println()
		c.Title("💌 Message from Past You")
		c.Printf("  \"%s\"\n", ch.FutureMessage)
		c.Muted("  - Written when you started this challenge")
	}
	c.Println()
	c.Title("Congratulations!")
	c.Println("You've shown incredible dedication and self-discipline.")
	c.Println()
	c.Muted("Share your achievement:")
	c.Println("  " + ShareText(ch))
}

// PrintStats prints the overview across challenges.
func (c *CLIFormatter) PrintStats(s progress.Stats) {
	c.Title("Your progress")
	c.Printf("  Active challenges:    %d\n", s.Active)
	c.Printf("  Completed:            %d\n", s.Completed)
	c.Printf("  Total streak days:    %d\n", s.TotalStreaks)
	c.Printf("  Days checked in:      %d\n", s.TotalDays)
	c.Printf("  Best streak:          %d\n", s.BestStreak)
	if s.Challenges > 0 {
		c.Printf("  Completion rate:      %s\n", FormatPercent(s.CompletionRate))
	}
}

// PrintTemplates prints the built-in challenge templates.
func (c *CLIFormatter) PrintTemplates(templates []model.Template) {
	c.Title("Challenge templates")
	for _, t := range templates {
		c.Println()
		c.Printf("  %s %s  %s\n", model.IconGlyph(t.Icon), c.render(styleBold, t.Title), c.render(styleMuted, "("+model.Slug(t.Title)+")"))
		c.Printf("    %s\n", t.Description)
		c.Printf("    %s · %s\n", t.Category, FormatDays(t.TargetDays))
		c.Printf("    Tip: %s\n", c.Note(t.Tips))
	}
	c.Println()
	c.Muted("Start one with 'mitraa create --template <name>'.")
}

// PrintCategories prints the categories, icons and colour palette.
func (c *CLIFormatter) PrintCategories() {
	c.Title("Categories")
	for _, cat := range model.Categories {
		c.Printf("  %s\n", cat)
	}
	c.Println()
	c.Title("Icons")
	for _, name := range model.IconNames {
		c.Printf("  %s %s\n", model.IconGlyph(name), name)
	}
	c.Println()
	c.Title("Colors")
	for _, hex := range model.Colors {
		c.Printf("  %s %s\n", c.render(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)), "●"), hex)
	}
}

// Table helpers for CLI output.
type TableRow struct {
	Columns []string
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// PrintTable prints a simple table. Widths are measured in terminal cells.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) {
				if w := lipgloss.Width(col); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]) + "  ")
	}
	c.Println(c.render(styleBold, headerLine.String()))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(sep.String())

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(pad(col, widths[i]) + "  ")
			}
		}
		c.Println(rowLine.String())
	}
}
