package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tterrag131/reimagined-disco/internal/cli/formatter"
)

func newFetchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the latest snapshot and print its headline figures",
		Long: `Probes the pipeline's hourly upload folders starting from the current
hour and stepping back until a document is found, then prints where it
came from and what it contains. Useful for checking pipeline health.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := refreshSession(cmd, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(),
				formatter.FormatSnapshotSummary(string(outcome.Source), outcome.Candidate, app.Session.Snapshot()))
			return nil
		},
	}
}
