package cmd

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a recorded run and its case results",
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
		if err := d.DeleteRun(run.ID); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Deleted run %s (%d cases)", shortID(run.ID), run.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
