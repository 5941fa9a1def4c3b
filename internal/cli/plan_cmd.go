package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tterrag131/reimagined-disco/internal/cli/formatter"
	"github.com/tterrag131/reimagined-disco/internal/domain"
)

func newPlanCmd(app *App) *cobra.Command {
	var shiftName string
	var balance bool
	var rate float64

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the derived shift plan",
		Long: `Fetches the latest snapshot and prints the shift-level plan rollup.
With --shift, prints that shift's quarter breakdown instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, app, shiftName, balance, rate)
		},
	}

	cmd.Flags().StringVar(&shiftName, "shift", "", "Show one shift's quarter breakdown (e.g. \"Current Day\")")
	cmd.Flags().BoolVar(&balance, "balance", false, "Auto-balance planned hours to the target rate before printing")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Target throughput rate in units per labor hour")

	return cmd
}

func runPlan(cmd *cobra.Command, app *App, shiftName string, balance bool, rate float64) error {
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

	if shiftName != "" {
		shift, ok := domain.ShiftByName(shiftName)
		if !ok {
			return fmt.Errorf("unknown shift %q", shiftName)
		}
		fmt.Fprint(out, formatter.FormatQuarterTable(shift.Name, quarterRows(app, shift)))
		return nil
	}

	aggs := make([]domain.ShiftAggregate, 0, len(domain.Shifts()))
	for _, s := range domain.Shifts() {
		aggs = append(aggs, sess.ShiftPlan(s))
	}
	fmt.Fprint(out, formatter.FormatShiftTable(aggs))
	return nil
}

func quarterRows(app *App, shift domain.ShiftDefinition) []formatter.QuarterRow {
	rows := make([]formatter.QuarterRow, 0, len(shift.Quarters))
	for _, q := range shift.Quarters {
		rows = append(rows, formatter.QuarterRow{
			ID:     q.ID,
			Label:  q.Label,
			Volume: app.Session.QuarterVolume(q),
			Plan:   app.Session.Plans().Plan(q.ID),
		})
	}
	return rows
}
