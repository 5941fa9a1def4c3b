package cli

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tterrag131/reimagined-disco/internal/cli/formatter"
	"github.com/tterrag131/reimagined-disco/internal/domain"
	"github.com/tterrag131/reimagined-disco/internal/session"
)

// ── tabs ─────────────────────────────────────────────────────────────────────

type dashTab int

const (
	tabPlan dashTab = iota
	tabTrajectory
	tabLedger
	tabCount
)

func (t dashTab) title() string {
	switch t {
	case tabPlan:
		return "Plan"
	case tabTrajectory:
		return "Trajectory"
	case tabLedger:
		return "Ledger"
	}
	return ""
}

// ── messages ─────────────────────────────────────────────────────────────────

// refreshDoneMsg signals that a refresh pass finished and state is applied.
type refreshDoneMsg struct {
	outcome session.RefreshOutcome
}

// refreshDroppedMsg signals a trigger that lost to an in-flight refresh.
type refreshDroppedMsg struct{}

// refreshTickMsg fires on the periodic refresh interval.
type refreshTickMsg struct{}

// ── model ────────────────────────────────────────────────────────────────────

// dashboardModel is the root bubbletea model. One model, three tabs; a huh
// form overlays the active tab while the operator edits an input.
type dashboardModel struct {
	app *App

	tab        dashTab
	shiftIdx   int
	quarterIdx int

	form     *huh.Form
	formDone func()

	refreshing bool
	outcome    session.RefreshOutcome
	spin       spinner.Model

	width  int
	height int

	quitting bool
}

func newDashboardModel(app *App) dashboardModel {
	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(formatter.ColorHeader)),
	)
	// Seed the first load with a solved plan; the trigger clears once the
	// initial fetch applies it.
	app.Session.RequestAutoBalance()
	return dashboardModel{
		app:        app,
		outcome:    app.Session.LastOutcome(),
		spin:       sp,
		refreshing: true,
	}
}

// runDashboard starts the full-screen dashboard program.
func runDashboard(app *App) error {
	p := tea.NewProgram(newDashboardModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m dashboardModel) refreshEvery() time.Duration {
	minutes := m.app.Config.RefreshMinutes
	if minutes <= 0 {
		minutes = 5
	}
	return time.Duration(minutes) * time.Minute
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m dashboardModel) refreshCmd() tea.Cmd {
	sess := m.app.Session
	return func() tea.Msg {
		outcome, err := sess.Refresh(context.Background())
		if errors.Is(err, session.ErrRefreshInFlight) {
			return refreshDroppedMsg{}
		}
		return refreshDoneMsg{outcome: outcome}
	}
}

func (m dashboardModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.refreshEvery(), func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.scheduleTick(), m.spin.Tick)
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case refreshTickMsg:
		// Drop the trigger while a refresh is in flight; ticks keep coming
		// so the next idle interval picks it up again.
		cmds := []tea.Cmd{m.scheduleTick()}
		if !m.refreshing {
			m.refreshing = true
			cmds = append(cmds, m.refreshCmd())
		}
		return m, tea.Batch(cmds...)

	case refreshDoneMsg:
		m.refreshing = false
		m.outcome = msg.outcome
		// A balance armed during the fetch applies against the fresh data.
		m.app.Session.ApplyAutoBalance()
		return m, nil

	case refreshDroppedMsg:
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// ── key handling ─────────────────────────────────────────────────────────────

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.tab = (m.tab + 1) % tabCount
		return m, nil
	case "shift+tab":
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil

	case "r":
		if !m.refreshing {
			m.refreshing = true
			return m, m.refreshCmd()
		}
		return m, nil

	case "b":
		sess := m.app.Session
		sess.RequestAutoBalance()
		if !m.refreshing {
			sess.ApplyAutoBalance()
		}
		return m, nil

	case "t":
		return m.openTargetRateForm()
	}

	if m.tab == tabPlan {
		return m.handlePlanKey(msg)
	}
	return m, nil
}

func (m dashboardModel) handlePlanKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	shifts := domain.Shifts()
	quarters := shifts[m.shiftIdx].Quarters

	switch msg.String() {
	case "left", "h":
		if m.shiftIdx > 0 {
			m.shiftIdx--
			m.quarterIdx = 0
		}
	case "right", "l":
		if m.shiftIdx < len(shifts)-1 {
			m.shiftIdx++
			m.quarterIdx = 0
		}
	case "up", "k":
		if m.quarterIdx > 0 {
			m.quarterIdx--
		}
	case "down", "j":
		if m.quarterIdx < len(quarters)-1 {
			m.quarterIdx++
		}
	case "e", "enter":
		return m.openPlanForm(quarters[m.quarterIdx])
	}
	return m, nil
}

// ── form overlay ─────────────────────────────────────────────────────────────

func (m dashboardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		m.formDone = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if m.formDone != nil {
			m.formDone()
		}
		m.form = nil
		m.formDone = nil
	}
	return m, cmd
}
