package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gridlab/segment/internal/segment"
)

var demoGrids = [][][]int{
	{
		{0, 0, 0},
		{0, 1, 1},
		{0, 0, 1},
	},
	{
		{0, 0, 0, 3, 0},
		{0, 2, 3, 3, 0},
		{1, 2, 2, 0, 0},
		{1, 2, 2, 1, 1},
		{0, 0, 1, 1, 1},
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Analyze the two built-in example grids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(w io.Writer) error {
	for i, grid := range demoGrids {
		a, err := segment.NewAnalyzer(len(grid), grid)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Example %d:\n", i+1)
		distinct := a.CountDistinctSegments()
		printAnswers(w, distinct, a.FindLargestSegment())
	}
	return nil
}
