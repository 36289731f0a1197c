package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gridlab/segment/internal/harness"
)

var (
	exportFailed bool
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Write the cases stored for a run as a case file",
	Long:  "Rebuilds the case groups of a recorded run and writes them in the layout 'segment test' reads. Expected pairs are written in the run's order.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase(false)
		if err != nil {
			return err
		}
		defer d.Close()

		run, err := ResolveRun(d, args[0])
		if err != nil {
			return err
		}

		load := harness.GroupsFromDB
		if exportFailed {
			load = harness.FailedGroupsFromDB
		}
		groups, order, err := load(d, run.ID)
		if err != nil {
			return err
		}

		data, err := harness.EncodeCases(groups)
		if err != nil {
			return err
		}

		if exportOutput == "" || exportOutput == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOutput, err)
		}
		cases := 0
		for _, g := range groups {
			cases += len(g.Cases)
		}
		printSuccess(cmd.ErrOrStderr(), "Wrote %d cases in %d groups to %s (order %s)", cases, len(groups), exportOutput, order)
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportFailed, "failed", false, "Only export failed cases")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
