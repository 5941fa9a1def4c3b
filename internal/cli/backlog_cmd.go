package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tterrag131/reimagined-disco/internal/cli/formatter"
)

func newBacklogCmd(app *App) *cobra.Command {
	var balance bool
	var rate float64

	cmd := &cobra.Command{
		Use:   "backlog",
		Short: "Project the backlog across upcoming shifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := refreshSession(cmd, app)
			if err != nil {
				return err
			}

			sess := app.Session
			if rate > 0 {
				sess.SetTargetRate(rate)
			}
			if balance {
				sess.RequestAutoBalance()
				sess.ApplyAutoBalance()
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatSnapshotSummary(string(outcome.Source), outcome.Candidate, sess.Snapshot()))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatTrajectory(sess.Snapshot().Ledger.Backlog(), sess.Trajectory()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&balance, "balance", false, "Auto-balance planned hours before projecting")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Target throughput rate in units per labor hour")

	return cmd
}
