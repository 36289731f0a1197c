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
	showFailed bool
	showJSON   bool
)

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the case results of a recorded run",
	Long:  "Resolves a run by full ID or unique prefix (at least 4 characters) and prints its per-case results.",
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

		var results []db.CaseResult
		if showFailed {
			results, err = d.FailedCases(run.ID)
		} else {
			results, err = d.CaseResults(run.ID)
		}
		if err != nil {
			return fmt.Errorf("loading case results: %w", err)
		}

		w := cmd.OutOrStdout()
		if showJSON {
			if results == nil {
				results = []db.CaseResult{}
			}
			output := struct {
				Run     *db.Run         `json:"run"`
				Results []db.CaseResult `json:"results"`
				Count   int             `json:"count"`
			}{run, results, len(results)}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(output)
		}

		printRun(w, run, results)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showFailed, "failed", false, "Only list failed cases")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(showCmd)
}

func printRun(w io.Writer, run *db.Run, results []db.CaseResult) {
	started := time.UnixMilli(run.StartedAt)
	fmt.Fprintf(w, "Run %s  %s\n", styleTitle.Render(shortID(run.ID)), run.Source)
	fmt.Fprintf(w, "  started %s (%s), took %dms, order %s\n",
		started.Format(time.DateTime), humanize.Time(started), run.DurationMs, run.OrderMode)
	fmt.Fprintf(w, "  score %d / %d\n\n", run.Passed, run.Total)

	if len(results) == 0 {
		if showFailed {
			fmt.Fprintln(w, "No failed cases.")
		} else {
			fmt.Fprintln(w, "No case results stored.")
		}
		return
	}

	for _, c := range results {
		line := fmt.Sprintf("  %s group %d case %-3d N=%-4d distinct %d/%d  largest (%d,%d)/(%d,%d)",
			passMark(c.Passed), c.GroupIdx+1, c.CaseIdx+1, c.N,
			c.GotDistinct, c.ExpectedDistinct,
			c.GotSize, c.GotColor, c.ExpectedSize, c.ExpectedColor)
		fmt.Fprintln(w, line)
		if c.Error != nil {
			printDetail(w, "  %s", *c.Error)
		}
	}
	fmt.Fprintf(w, "\n%d case(s) shown; pairs are (size,color) got/want\n", len(results))
}
