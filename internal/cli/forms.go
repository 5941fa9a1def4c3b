package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tterrag131/reimagined-disco/internal/cli/formatter"
	"github.com/tterrag131/reimagined-disco/internal/domain"
)

func prodplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateNonNegativeFloat(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validatePositiveFloat(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

// parseFloatOr parses s, falling back when empty or malformed.
func parseFloatOr(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

// openPlanForm opens the hours/rate editor for one quarter. Submitting
// replaces the quarter's plan entry whole.
func (m dashboardModel) openPlanForm(q domain.QuarterDefinition) (tea.Model, tea.Cmd) {
	current := m.app.Session.Plans().Plan(q.ID)

	// Inputs start empty; the current value shows as the placeholder and
	// an empty submit keeps it.
	var hours, rate string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Planned hours for %s (%s)", q.ID, q.Label)).
				Placeholder(strconv.FormatFloat(current.Hours, 'f', -1, 64)).
				Value(&hours).
				Validate(validateNonNegativeFloat),
			huh.NewInput().
				Title("Rate (units per labor hour)").
				Placeholder(strconv.FormatFloat(current.Rate, 'f', -1, 64)).
				Value(&rate).
				Validate(validatePositiveFloat),
		),
	).WithTheme(prodplanHuhTheme()).WithShowHelp(false)

	sess := m.app.Session
	m.form = form
	m.formDone = func() {
		sess.Plans().SetPlan(q.ID, domain.QuarterPlan{
			Hours: parseFloatOr(hours, current.Hours),
			Rate:  parseFloatOr(rate, current.Rate),
		})
	}
	return m, form.Init()
}

// openTargetRateForm opens the target throughput editor.
func (m dashboardModel) openTargetRateForm() (tea.Model, tea.Cmd) {
	current := m.app.Session.TargetRate()
	var rate string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target rate (units per labor hour)").
				Placeholder(strconv.FormatFloat(current, 'f', -1, 64)).
				Value(&rate).
				Validate(validatePositiveFloat),
		),
	).WithTheme(prodplanHuhTheme()).WithShowHelp(false)

	sess := m.app.Session
	m.form = form
	m.formDone = func() {
		sess.SetTargetRate(parseFloatOr(rate, current))
	}
	return m, form.Init()
}
