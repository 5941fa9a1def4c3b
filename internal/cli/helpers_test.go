package cli

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"github.com/tterrag131/reimagined-disco/internal/session"
	"github.com/tterrag131/reimagined-disco/internal/snapshot"
)

// dashVIZ covers the current-day morning quarters (CD1 and CD2 derive 300
// units each) and carries a 500-unit backlog.
const dashVIZ = `{
  "time": "2025-03-15T14:00",
  "current_day": {"date": "2025-03-15", "network_prediction": 12000},
  "extended_predictions": {"predictions": [
    {"Time": "2025-03-15T05:00", "Predicted_Workable": 100},
    {"Time": "2025-03-15T08:00", "Predicted_Workable": 400},
    {"Time": "2025-03-15T11:00", "Predicted_Workable": 700}
  ]},
  "Ledger_Information": {
    "timePoints": ["06:00", "07:00"],
    "metrics": {
      "AvailableToPick": [100, 300],
      "Eligible": [50, 200],
      "Shipped": [0, 150]
    }
  }
}`

type stubFetcher struct {
	res *snapshot.Result
	err error
}

func (f *stubFetcher) Fetch(ctx context.Context) (*snapshot.Result, error) {
	return f.res, f.err
}

func testApp(t *testing.T) *App {
	t.Helper()
	snap, err := snapshot.Decode([]byte(dashVIZ))
	require.NoError(t, err)

	fetcher := &stubFetcher{res: &snapshot.Result{
		Snapshot:  snap,
		Payload:   []byte(dashVIZ),
		Candidate: "2025-03-15_14",
	}}
	clock := func() time.Time {
		return time.Date(2025, 3, 15, 14, 20, 0, 0, time.UTC)
	}
	return &App{
		Session: session.New(fetcher, nil, clock),
		Config:  snapshot.Config{RefreshMinutes: 5},
	}
}

// refreshed loads the live snapshot into the session and hands the model
// the matching done message, as a completed fetch pass would.
func refreshed(t *testing.T, app *App) dashboardModel {
	t.Helper()
	outcome, err := app.Session.Refresh(context.Background())
	require.NoError(t, err)

	m := newDashboardModel(app)
	next, _ := m.Update(refreshDoneMsg{outcome: outcome})
	return next.(dashboardModel)
}

func pressKey(t *testing.T, m dashboardModel, key string) (dashboardModel, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(dashboardModel), cmd
}
