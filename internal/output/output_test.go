package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/manav03panchal/mitraa/internal/challenge"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI() (*CLIFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf, Format: FormatCLI, ColorMode: ColorNever}
	return NewCLIFormatter(f), &buf
}

func sampleChallenge() *model.Challenge {
	mood := 4
	completedAt := time.Date(2025, 3, 21, 18, 0, 0, 0, time.Local)
	return &model.Challenge{
		ID:            "0192a1b2-aaaa-7000-8000-000000000001",
		Title:         "Digital Detox",
		Description:   "Reduce screen time",
		Category:      "Digital Wellness",
		TargetDays:    3,
		Color:         "#10b981",
		Icon:          "Smartphone",
		StartDate:     time.Date(2025, 3, 19, 9, 0, 0, 0, time.Local),
		IsActive:      true,
		CurrentStreak: 2,
		LongestStreak: 2,
		TotalDays:     2,
		DailyEntries: []model.DailyEntry{
			{Date: "2025-03-20", Completed: true, Note: "phone in drawer", Mood: &mood},
			{Date: "2025-03-19", Completed: false},
			{Date: "2025-03-21", Completed: true},
		},
		FutureMessage: "You did it!",
		CompletedAt:   &completedAt,
	}
}

// =============================================================================
// Formatter Tests
// =============================================================================

func TestNewFormatter(t *testing.T) {
	f := NewFormatter()
	assert.NotNil(t, f)
	assert.Equal(t, FormatCLI, f.Format)
	assert.Equal(t, ColorAuto, f.ColorMode)
	assert.False(t, f.NoNewline)
}

func TestFormatterIsColorEnabled(t *testing.T) {
	t.Run("color_always", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways}
		assert.True(t, f.IsColorEnabled())
	})

	t.Run("color_never", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorNever}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("color_auto_non_terminal", func(t *testing.T) {
		var buf bytes.Buffer
		f := &Formatter{Writer: &buf, ColorMode: ColorAuto}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("plain_format_never_colors", func(t *testing.T) {
		f := &Formatter{Format: FormatPlain, ColorMode: ColorAlways}
		assert.False(t, f.IsColorEnabled())
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"cli", FormatCLI, false},
		{"JSON", FormatJSON, false},
		{" plain ", FormatPlain, false},
		{"", FormatCLI, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorMode(t *testing.T) {
	m, err := ParseColorMode("Always")
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, m)

	m, err = ParseColorMode("")
	require.NoError(t, err)
	assert.Equal(t, ColorAuto, m)

	_, err = ParseColorMode("rainbow")
	assert.Error(t, err)
}

func TestFormatterPrint(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Print("hello")
	f.Println(" world")
	f.Printf("%d", 7)
	assert.Equal(t, "hello world\n7", buf.String())
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	require.NoError(t, f.PrintJSON(map[string]int{"streak": 3}))
	assert.Contains(t, buf.String(), "\"streak\": 3")
}

// =============================================================================
// Helper Tests
// =============================================================================

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "0 days", FormatDays(0))
	assert.Equal(t, "1 day", FormatDays(1))
	assert.Equal(t, "21 days", FormatDays(21))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "67%", FormatPercent(66.6))
	assert.Equal(t, "100%", FormatPercent(100))
}

func TestFormatLongDate(t *testing.T) {
	d := time.Date(2025, 1, 3, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "January 3, 2025", FormatLongDate(d))
	assert.Equal(t, "2025-01-03", FormatDate(d))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0192a1b2-aaaa", ShortID("0192a1b2-aaaa-7000-8000-000000000001"))
	assert.Equal(t, "abc", ShortID("abc"))
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want string
	}{
		{"empty", 0, "░░░░░░░░░░"},
		{"half", 50, "█████░░░░░"},
		{"full", 100, "██████████"},
		{"over", 150, "██████████"},
		{"negative", -10, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressBar(tt.pct, 10))
		})
	}
}

func TestHistory(t *testing.T) {
	ch := sampleChallenge()
	end := time.Date(2025, 3, 22, 10, 0, 0, 0, time.Local)
	assert.Equal(t, "·□■■·", History(ch, end, 5))
}

func TestShareText(t *testing.T) {
	text := ShareText(sampleChallenge())
	assert.True(t, strings.HasPrefix(text, "Just completed my 3-day Digital Detox challenge on Mitraa! 🎉"))
}

// =============================================================================
// CLI Formatter Tests
// =============================================================================

func TestCLIMessages(t *testing.T) {
	c, buf := newTestCLI()
	c.Success("saved")
	c.Warning("careful")
	c.Error("failed")
	c.Muted("quiet")
	c.Title("Heading")

	out := buf.String()
	assert.Contains(t, out, "✓ saved")
	assert.Contains(t, out, "⚠ careful")
	assert.Contains(t, out, "✗ failed")
	assert.Contains(t, out, "quiet\n")
	assert.Contains(t, out, "Heading\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrintChallengeList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		c, buf := newTestCLI()
		c.PrintChallengeList(nil)
		assert.Contains(t, buf.String(), "No challenges yet.")
	})

	t.Run("rows", func(t *testing.T) {
		c, buf := newTestCLI()
		c.PrintChallengeList([]*model.Challenge{sampleChallenge()})

		out := buf.String()
		assert.Contains(t, out, "CHALLENGE")
		assert.Contains(t, out, "0192a1b2-aaaa")
		assert.Contains(t, out, "📱 Digital Detox")
		assert.Contains(t, out, "2/3")
		assert.Contains(t, out, "67%")
	})

	t.Run("long_title", func(t *testing.T) {
		c, buf := newTestCLI()
		ch := sampleChallenge()
		ch.Title = strings.Repeat("long ", 20)
		c.PrintChallengeList([]*model.Challenge{ch})
		assert.Contains(t, buf.String(), strings.Repeat("long ", 5)+"long...")
	})
}

func TestPrintTableAlignsWideCells(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintTable([]string{"A", "B"}, []TableRow{
		{Columns: []string{"🎯 x", "1"}},
		{Columns: []string{"abcd", "2"}},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[2][:strings.Index(lines[2], "1")]), strings.Index(lines[3], "2"))
}

func TestPrintChallenge(t *testing.T) {
	c, buf := newTestCLI()
	ch := sampleChallenge()
	ch.IsCompleted = true
	c.PrintChallenge(ch)

	out := buf.String()
	assert.Contains(t, out, "Digital Detox")
	assert.Contains(t, out, "Reduce screen time")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "best 2")
	assert.Contains(t, out, "First Step")
	assert.NotContains(t, out, "Week Warrior")
}

func TestPrintEntries(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintEntries(sampleChallenge().SortedEntries())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "2025-03-19")
	assert.Contains(t, lines[0], "✗")
	assert.Contains(t, lines[1], "mood: Good")
	assert.Contains(t, lines[1], "phone in drawer")
}

func TestPrintCheckIn(t *testing.T) {
	ch := sampleChallenge()
	ch.CompletedAt = nil

	t.Run("celebration", func(t *testing.T) {
		c, buf := newTestCLI()
		c.PrintCheckIn(&challenge.CheckInResult{
			Challenge: ch,
			Entry:     model.DailyEntry{Date: "2025-03-21", Completed: true},
			Celebrate: true,
			Milestone: "Getting Started",
			Summary:   progress.Summary{CurrentStreak: 1},
		})
		out := buf.String()
		assert.Contains(t, out, "Checked in for Digital Detox on 2025-03-21")
		assert.Contains(t, out, "Day one done")
	})

	t.Run("missed_replaced", func(t *testing.T) {
		c, buf := newTestCLI()
		c.PrintCheckIn(&challenge.CheckInResult{
			Challenge: ch,
			Entry:     model.DailyEntry{Date: "2025-03-21"},
			Replaced:  true,
			Milestone: "Getting Started",
		})
		out := buf.String()
		assert.Contains(t, out, "Updated check-in")
		assert.Contains(t, out, "(missed)")
		assert.NotContains(t, out, "🎉")
	})
}

func TestCertificate(t *testing.T) {
	c, buf := newTestCLI()
	ch := sampleChallenge()
	ch.IsCompleted = true
	c.PrintCertificate(ch, "anonymous")

	out := buf.String()
	assert.Contains(t, out, "Certificate of Achievement")
	assert.Contains(t, out, "anonymous")
	assert.Contains(t, out, "Awarded on March 21, 2025 by")
	assert.Contains(t, out, "Message from Past You")
	assert.Contains(t, out, "You did it!")
	assert.Contains(t, out, ShareText(ch))
	assert.Contains(t, out, "═")
}

func TestCertificateDefaultName(t *testing.T) {
	c, _ := newTestCLI()
	assert.Contains(t, c.Certificate(sampleChallenge(), ""), "Amazing Individual")
}

func TestPrintStats(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintStats(progress.Stats{Challenges: 2, Active: 1, Completed: 1, TotalStreaks: 5, TotalDays: 30, BestStreak: 21, CompletionRate: 50})

	out := buf.String()
	assert.Regexp(t, `Active challenges:\s+1\n`, out)
	assert.Regexp(t, `Best streak:\s+21\n`, out)
	assert.Contains(t, out, "50%")
}

func TestPrintTemplatesAndCategories(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintTemplates(model.Templates)
	c.PrintCategories()

	out := buf.String()
	assert.Contains(t, out, "(digital-detox)")
	assert.Contains(t, out, "Sleep & Rest")
	assert.Contains(t, out, "TreePine")
	assert.Contains(t, out, "#4a90e2")
}

// =============================================================================
// JSON Formatter Tests
// =============================================================================

func TestNewChallengeOutput(t *testing.T) {
	ch := sampleChallenge()

	out := NewChallengeOutput(ch, false)
	assert.Equal(t, ch.ID, out.ID)
	assert.Equal(t, "active", out.Status)
	assert.Empty(t, out.Entries)
	assert.NotEmpty(t, out.CompletedAt)
	assert.Equal(t, 2, out.Summary.TotalDays)

	withEntries := NewChallengeOutput(ch, true)
	require.Len(t, withEntries.Entries, 3)
	assert.Equal(t, "2025-03-19", withEntries.Entries[0].Date)
}

func TestJSONCheckIn(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatJSON})
	ch := sampleChallenge()

	result := &challenge.CheckInResult{
		Challenge: ch,
		Entry:     model.DailyEntry{Date: "2025-03-21", Completed: true},
		Completion: &challenge.CompletionEvent{
			ChallengeID:   ch.ID,
			CompletedAt:   *ch.CompletedAt,
			FutureMessage: ch.FutureMessage,
		},
	}
	require.NoError(t, j.PrintCheckIn(result, errors.New("storage save failed")))

	var resp CheckInResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.Completion)
	assert.Equal(t, "You did it!", resp.Completion.FutureMessage)
	assert.Contains(t, resp.Completion.ShareText, "3-day Digital Detox")
	assert.Equal(t, "storage save failed", resp.Warning)
}

func TestJSONChallenges(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatJSON})
	require.NoError(t, j.PrintChallenges([]*model.Challenge{sampleChallenge()}))

	var resp ChallengesResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Digital Detox", resp.Challenges[0].Title)
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatJSON})
	require.NoError(t, j.PrintError("challenge not found", "user", "Run 'mitraa list'"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "user", resp.Category)
}
