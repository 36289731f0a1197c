package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"gridlab/segment/internal/harness"
)

var (
	testOrder    string
	testWorkers  int
	testStrict   bool
	testNoRecord bool
	testJSON     bool
)

// testOutput is the --json form of test and rerun
type testOutput struct {
	RunID   string           `json:"run_id,omitempty"`
	Source  string           `json:"source"`
	Summary *harness.Summary `json:"summary"`
}

var testCmd = &cobra.Command{
	Use:   "test <cases.json>",
	Short: "Score the analyzer against a JSON case file",
	Long: `Test runs every case of a case file (an array of {"data": [case...]}
groups) and prints a score per group. The run is recorded in the database
unless --no-record is given or harness.record is false.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := harness.LoadCasesFile(args[0])
		if err != nil {
			return err
		}

		orderName := cfg.Harness.Order
		if cmd.Flags().Changed("order") {
			orderName = testOrder
		}
		order, err := harness.ParseOrder(orderName)
		if err != nil {
			return err
		}

		source := args[0]
		if abs, err := filepath.Abs(source); err == nil {
			source = abs
		}
		return scoreAndReport(cmd, groups, order, source)
	},
}

func init() {
	testCmd.Flags().StringVar(&testOrder, "order", "size-color", "LargestSegment pair order: size-color or color-size")
	testCmd.Flags().IntVar(&testWorkers, "workers", 1, "Cases scored concurrently")
	testCmd.Flags().BoolVar(&testStrict, "strict", false, "Exit non-zero when any case fails")
	testCmd.Flags().BoolVar(&testNoRecord, "no-record", false, "Do not store the run")
	testCmd.Flags().BoolVar(&testJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(testCmd)
}

// scoreAndReport runs groups, records the run when enabled and prints the
// result. Shared by test and rerun, which register the same flags.
func scoreAndReport(cmd *cobra.Command, groups []harness.Group, order harness.Order, source string) error {
	logger := loggerFromContext(cmd.Context())

	workers := cfg.Harness.Workers
	if cmd.Flags().Changed("workers") {
		workers = testWorkers
	}

	p := newProgress(logger)
	summary, err := harness.NewRunner(order, workers, logger).Run(cmd.Context(), groups)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Scored %d cases", summary.Total))

	var runID string
	if cfg.Harness.Record && !testNoRecord {
		d, err := OpenDatabase(true)
		if err != nil {
			return err
		}
		defer d.Close()
		runID, err = harness.RecordSummary(d, source, summary)
		if err != nil {
			return err
		}
		logger.Debug("run recorded", "id", runID, "db", d.Path)
	}

	w := cmd.OutOrStdout()
	if testJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(testOutput{RunID: runID, Source: source, Summary: summary}); err != nil {
			return err
		}
	} else {
		printSummary(w, summary, runID)
	}

	if testStrict && summary.Passed < summary.Total {
		return fmt.Errorf("%d of %d cases failed", summary.Total-summary.Passed, summary.Total)
	}
	return nil
}

func printSummary(w io.Writer, s *harness.Summary, runID string) {
	fmt.Fprint(w, s.String())
	fmt.Fprintln(w)

	for _, c := range s.Failed() {
		if c.Err != "" {
			printError(w, "group %d case %d: %s", c.Group+1, c.Index+1, c.Err)
			continue
		}
		printError(w, "group %d case %d (N=%d)", c.Group+1, c.Index+1, c.N)
		printDetail(w, "distinct: got %d, want %d", c.GotDistinct, c.ExpectedDistinct)
		printDetail(w, "largest:  got size %d color %d, want size %d color %d",
			c.Got.Size, c.Got.Color, c.Expected.Size, c.Expected.Color)
	}

	if s.Passed == s.Total {
		printSuccess(w, "%d/%d cases passed (order %s)", s.Passed, s.Total, s.Order)
	} else {
		printWarning(w, "%d/%d cases passed (order %s)", s.Passed, s.Total, s.Order)
	}
	if runID != "" {
		printInfo(w, "Recorded run %s", shortID(runID))
	}
}
