package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/manav03panchal/mitraa/internal/challenge"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 21, 20, 0, 0, 0, time.Local)

type fakeTracker struct {
	challenges []*model.Challenge
	listErr    error
	checkErr   error
	result     *challenge.CheckInResult
	checkIns   []string
}

func (f *fakeTracker) List(_ context.Context, _ string, _ challenge.Filter) ([]*model.Challenge, error) {
	return f.challenges, f.listErr
}

func (f *fakeTracker) CheckIn(_ context.Context, _ string, id string, date time.Time, in challenge.EntryInput) (*challenge.CheckInResult, error) {
	f.checkIns = append(f.checkIns, id)
	if f.result != nil {
		return f.result, f.checkErr
	}
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	for _, ch := range f.challenges {
		if ch.ID == id {
			updated := ch.Clone()
			updated.DailyEntries = append(updated.DailyEntries, model.DailyEntry{Date: model.FormatDay(date), Completed: in.Completed})
			return &challenge.CheckInResult{Challenge: updated, Summary: progress.Summarize(updated)}, nil
		}
	}
	return nil, errors.New("not found")
}

func testChallenges() []*model.Challenge {
	return []*model.Challenge{
		{ID: "a", Title: "Better Sleep", Icon: "Moon", Color: "#6366f1", TargetDays: 21, IsActive: true, CurrentStreak: 3, TotalDays: 3},
		{ID: "b", Title: "Hydration", Icon: "Coffee", TargetDays: 2, IsCompleted: true, TotalDays: 2, LongestStreak: 2},
	}
}

func newTestDashboard(tr *fakeTracker) *DashboardModel {
	m := NewDashboardModel(DashboardConfig{
		Tracker: tr,
		UserID:  "tester",
		Now:     func() time.Time { return fixedNow },
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(refreshMsg{})
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// =============================================================================
// ProgressBar Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		width      int
	}{
		{"zero", 0, 10},
		{"half", 50, 10},
		{"full", 100, 10},
		{"over", 150, 10},
		{"negative", -10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.percentage, tt.width)
			assert.Equal(t, tt.width, lipgloss.Width(bar))
		})
	}
}

func TestChallengeName(t *testing.T) {
	name := ChallengeName(testChallenges()[0])
	assert.Contains(t, name, "🌙")
	assert.Contains(t, name, "Better Sleep")
}

// =============================================================================
// Component Tests
// =============================================================================

func TestStatsComponentView(t *testing.T) {
	view := NewStatsComponent(progress.Overview(testChallenges()), 80).View()
	assert.Contains(t, view, "Active 1")
	assert.Contains(t, view, "Completed 1")
	assert.Contains(t, view, "Best 2")
}

func TestListComponentView(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		view := NewListComponent(nil, 0, 80).View()
		assert.Contains(t, view, "No challenges yet")
	})

	t.Run("rows", func(t *testing.T) {
		view := NewListComponent(testChallenges(), 1, 100).View()
		assert.Contains(t, view, "Better Sleep")
		assert.Contains(t, view, "Hydration")
		assert.Contains(t, view, "✓ done")
		assert.Contains(t, view, "▸")
	})
}

func TestDetailComponentView(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, "", NewDetailComponent(nil, fixedNow, 80).View())
	})

	t.Run("active", func(t *testing.T) {
		ch := &model.Challenge{
			ID: "a", Title: "Gratitude", Icon: "Heart", TargetDays: 21,
			DailyEntries: []model.DailyEntry{
				{Date: "2025-03-20", Completed: true},
				{Date: "2025-03-21", Completed: true, Note: "three good things"},
			},
		}
		view := NewDetailComponent(ch, fixedNow, 100).View()
		assert.Contains(t, view, "Gratitude")
		assert.Contains(t, view, "2 / 21 days")
		assert.Contains(t, view, "2 days")
		assert.Contains(t, view, "three good things")
		assert.NotContains(t, view, "Challenge completed")
	})

	t.Run("completed", func(t *testing.T) {
		ch := testChallenges()[1]
		view := NewDetailComponent(ch, fixedNow, 100).View()
		assert.Contains(t, view, "Challenge completed")
	})
}

func TestHelpBar(t *testing.T) {
	help := HelpBar()
	for _, want := range []string{"check in", "missed", "refresh", "quit"} {
		assert.Contains(t, help, want)
	}
}

// =============================================================================
// Dashboard Tests
// =============================================================================

func TestDashboardLoading(t *testing.T) {
	m := NewDashboardModel(DashboardConfig{Tracker: &fakeTracker{}})
	assert.Equal(t, "Loading...", m.View())
	assert.Equal(t, 30*time.Second, m.refreshInterval)
}

func TestDashboardRefresh(t *testing.T) {
	tr := &fakeTracker{challenges: testChallenges()}
	m := newTestDashboard(tr)

	require.Len(t, m.challenges, 2)
	assert.Equal(t, 1, m.stats.Active)

	view := m.View()
	assert.Contains(t, view, "Mitraa Dashboard")
	assert.Contains(t, view, "Better Sleep")
}

func TestDashboardListError(t *testing.T) {
	tr := &fakeTracker{listErr: errors.New("store offline")}
	m := newTestDashboard(tr)
	assert.Contains(t, m.View(), "store offline")
}

func TestDashboardNavigation(t *testing.T) {
	m := newTestDashboard(&fakeTracker{challenges: testChallenges()})

	assert.Equal(t, "a", m.Selected().ID)
	m.Update(key("j"))
	assert.Equal(t, "b", m.Selected().ID)
	m.Update(key("j"))
	assert.Equal(t, "b", m.Selected().ID)
	m.Update(key("k"))
	m.Update(key("k"))
	assert.Equal(t, "a", m.Selected().ID)
}

func TestDashboardCheckIn(t *testing.T) {
	t.Run("records_selected", func(t *testing.T) {
		tr := &fakeTracker{challenges: testChallenges()}
		m := newTestDashboard(tr)

		m.Update(key("c"))
		assert.Equal(t, []string{"a"}, tr.checkIns)
		assert.Equal(t, "Checked in", m.message)
		assert.Len(t, m.Selected().DailyEntries, 1)
	})

	t.Run("missed", func(t *testing.T) {
		tr := &fakeTracker{challenges: testChallenges()}
		m := newTestDashboard(tr)

		m.Update(key("m"))
		assert.Equal(t, "Marked as missed", m.message)
	})

	t.Run("completion_survives_save_failure", func(t *testing.T) {
		done := testChallenges()[0].Clone()
		done.IsCompleted = true
		tr := &fakeTracker{
			challenges: testChallenges(),
			result:     &challenge.CheckInResult{Challenge: done, Completion: &challenge.CompletionEvent{ChallengeID: "a"}},
			checkErr:   errors.New("save failed"),
		}
		m := newTestDashboard(tr)

		m.Update(key("c"))
		assert.Contains(t, m.message, "complete")
		assert.EqualError(t, m.err, "save failed")
		assert.True(t, m.Selected().IsCompleted)
	})

	t.Run("no_selection", func(t *testing.T) {
		tr := &fakeTracker{}
		m := newTestDashboard(tr)

		m.Update(key("c"))
		assert.Empty(t, tr.checkIns)
		assert.Equal(t, "No challenge selected", m.message)
	})
}

func TestDashboardQuit(t *testing.T) {
	m := newTestDashboard(&fakeTracker{})
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDashboardMessageExpires(t *testing.T) {
	now := fixedNow
	m := NewDashboardModel(DashboardConfig{
		Tracker: &fakeTracker{},
		Now:     func() time.Time { return now },
	})
	m.Update(key("r"))
	assert.Equal(t, "Refreshed", m.message)

	now = now.Add(2 * time.Second)
	m.Update(tickMsg(now))
	assert.Empty(t, m.message)
}
