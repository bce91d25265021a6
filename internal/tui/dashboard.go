package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/manav03panchal/mitraa/internal/challenge"
	"github.com/manav03panchal/mitraa/internal/logging"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/progress"
)

// Tracker is the part of the challenge service the dashboard uses.
type Tracker interface {
	List(ctx context.Context, userID string, filter challenge.Filter) ([]*model.Challenge, error)
	CheckIn(ctx context.Context, userID, challengeID string, date time.Time, in challenge.EntryInput) (*challenge.CheckInResult, error)
}

// tickMsg is sent when the refresh timer fires.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	// Data
	challenges []*model.Challenge
	stats      progress.Stats
	selected   int

	tracker Tracker
	userID  string
	ctx     context.Context
	now     func() time.Time

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	refreshInterval time.Duration
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Context         context.Context
	Tracker         Tracker
	UserID          string
	RefreshInterval time.Duration
	Now             func() time.Time
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = 30 * time.Second
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Context == nil {
		config.Context = context.Background()
	}

	return &DashboardModel{
		tracker:         config.Tracker,
		userID:          config.UserID,
		ctx:             config.Context,
		now:             config.Now,
		refreshInterval: config.RefreshInterval,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.messageExp.IsZero() && m.now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		m.loadData()
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down", "j":
		if m.selected < len(m.challenges)-1 {
			m.selected++
		}
		return m, nil

	case "c":
		m.checkIn(true)
		return m, nil

	case "m":
		m.checkIn(false)
		return m, nil

	case "r":
		m.loadData()
		m.setMessage("Refreshed", time.Second)
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	sections = append(sections, NewStatsComponent(m.stats, m.width).View())
	sections = append(sections, NewListComponent(m.challenges, m.selected, m.width).View())

	if sel := m.Selected(); sel != nil {
		sections = append(sections, NewDetailComponent(sel, m.now(), m.width).View())
	}

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Selected returns the highlighted challenge, or nil.
func (m *DashboardModel) Selected() *model.Challenge {
	if m.selected < 0 || m.selected >= len(m.challenges) {
		return nil
	}
	return m.challenges[m.selected]
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("Mitraa Dashboard")
	now := m.now().Format("Mon Jan 2, 15:04")
	timeStr := StyleSubtitle.Render(now)

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", timeStr) + "\n"
}

// loadData reloads the user's challenges.
func (m *DashboardModel) loadData() {
	challenges, err := m.tracker.List(m.ctx, m.userID, challenge.FilterAll)
	if err != nil {
		m.err = err
		return
	}
	m.setChallenges(challenges)
	m.err = nil
}

func (m *DashboardModel) setChallenges(challenges []*model.Challenge) {
	m.challenges = challenges
	m.stats = progress.Overview(challenges)
	if m.selected >= len(challenges) {
		m.selected = len(challenges) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// checkIn records today's entry for the selected challenge.
func (m *DashboardModel) checkIn(completed bool) {
	sel := m.Selected()
	if sel == nil {
		m.setMessage("No challenge selected", 2*time.Second)
		return
	}

	result, err := m.tracker.CheckIn(m.ctx, m.userID, sel.ID, m.now(), challenge.EntryInput{Completed: completed})
	if result == nil {
		m.err = err
		return
	}

	// Keep the in-memory result even when the save failed.
	updated := make([]*model.Challenge, len(m.challenges))
	copy(updated, m.challenges)
	updated[m.selected] = result.Challenge
	m.setChallenges(updated)

	if err != nil {
		logging.WarnContext(m.ctx, "dashboard check-in not saved", logging.KeyError, err)
		m.err = err
	} else {
		m.err = nil
	}

	switch {
	case result.Completion != nil:
		m.setMessage(fmt.Sprintf("🏆 %s complete! Run 'mitraa certificate' to see your certificate", result.Challenge.Title), 10*time.Second)
	case result.Celebrate:
		m.setMessage(fmt.Sprintf("🎉 %d-day streak!", result.Summary.CurrentStreak), 5*time.Second)
	case completed:
		m.setMessage("Checked in", 2*time.Second)
	default:
		m.setMessage("Marked as missed", 2*time.Second)
	}
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = m.now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	model := NewDashboardModel(config)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(model.ctx))
	_, err := p.Run()
	return err
}
