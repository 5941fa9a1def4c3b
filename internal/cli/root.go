package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tterrag131/reimagined-disco/internal/session"
	"github.com/tterrag131/reimagined-disco/internal/snapshot"
)

// App holds everything the CLI commands need: the live session, the fetch
// configuration, and the terminal probe used to decide between the TUI and
// plain output.
type App struct {
	Session *session.Session
	Config  snapshot.Config

	// IsInteractive reports whether stdin is a terminal. Nil means not
	// interactive.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "prodplan" command. Run without a
// subcommand on a terminal it opens the dashboard; otherwise it prints the
// shift plan once and exits.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "prodplan",
		Short: "Warehouse throughput planning dashboard",
		Long: `Derives per-shift and per-quarter volume expectations from the
forecasting pipeline's hourly snapshots, tracks operator staffing
inputs, and projects the backlog across upcoming shifts.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runDashboard(app)
			}
			return runPlan(cmd, app, "", false, 0)
		},
	}

	root.AddCommand(
		newPlanCmd(app),
		newBacklogCmd(app),
		newFetchCmd(app),
	)

	return root
}

// refreshSession runs one refresh pass and reports a warning line on
// stderr-style output when the live fetch failed but a fallback applied.
func refreshSession(cmd *cobra.Command, app *App) (session.RefreshOutcome, error) {
	outcome, err := app.Session.Refresh(cmd.Context())
	if err != nil {
		return outcome, err
	}
	if outcome.FetchErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: live fetch failed (%v), showing %s data\n",
			outcome.FetchErr, outcome.Source)
	}
	return outcome, nil
}
