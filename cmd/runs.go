package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"gridlab/segment/internal/db"
)

var (
	runsLimit int
	runsJSON  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded harness runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase(false)
		if err != nil {
			return err
		}
		defer d.Close()

		runs, err := d.ListRuns(runsLimit)
		if err != nil {
			return fmt.Errorf("listing runs: %w", err)
		}

		w := cmd.OutOrStdout()
		if runsJSON {
			if runs == nil {
				runs = []db.Run{}
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(runs)
		}

		printRuns(w, runs)
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum runs to list")
	runsCmd.Flags().BoolVar(&runsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(runsCmd)
}

func printRuns(w io.Writer, runs []db.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	for _, r := range runs {
		fmt.Fprintf(w, "  %s %s %s  %-10s %-14s %s\n",
			shortID(r.ID), passMark(r.Passed == r.Total),
			styleNumber.Render(fmt.Sprintf("%4d/%-4d", r.Passed, r.Total)),
			r.OrderMode, humanize.Time(time.UnixMilli(r.StartedAt)), r.Source)
	}
	fmt.Fprintf(w, "\n%d run(s)\n", len(runs))
}
