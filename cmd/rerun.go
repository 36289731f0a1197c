package cmd

import (
	"github.com/spf13/cobra"

	"gridlab/segment/internal/harness"
)

var rerunCmd = &cobra.Command{
	Use:   "rerun <run-id>",
	Short: "Re-score the cases stored for a run and record a new run",
	Long:  "Resolves the original run from its ID (prefix or full), rebuilds its case groups from the database and scores them under the order the run used.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase(false)
		if err != nil {
			return err
		}
		run, err := ResolveRun(d, args[0])
		if err != nil {
			d.Close()
			return err
		}
		groups, order, err := harness.GroupsFromDB(d, run.ID)
		// scoreAndReport opens its own handle for recording.
		d.Close()
		if err != nil {
			return err
		}

		loggerFromContext(cmd.Context()).Info("rerunning", "run", shortID(run.ID), "source", run.Source, "cases", run.Total)
		return scoreAndReport(cmd, groups, order, "rerun:"+run.ID)
	},
}

func init() {
	rerunCmd.Flags().IntVar(&testWorkers, "workers", 1, "Cases scored concurrently")
	rerunCmd.Flags().BoolVar(&testStrict, "strict", false, "Exit non-zero when any case fails")
	rerunCmd.Flags().BoolVar(&testNoRecord, "no-record", false, "Do not store the new run")
	rerunCmd.Flags().BoolVar(&testJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(rerunCmd)
}
