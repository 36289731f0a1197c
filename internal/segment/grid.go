// Package segment computes connected-component statistics over labeled
// square grids. Cell value 0 is background; any positive value is a color.
// Two cells belong to the same segment when a path of up/down/left/right
// steps over cells of their color joins them.
package segment

import "fmt"

// Background is the cell value that never belongs to a segment.
const Background = 0

// Cell addresses one grid position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ValidateGrid checks that grid is an n×n matrix of non-negative values.
func ValidateGrid(n int, grid [][]int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	if len(grid) != n {
		return fmt.Errorf("%w: N=%d, rows=%d", ErrDimensionMismatch, n, len(grid))
	}
	for r, row := range grid {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d cells, N=%d", ErrNonSquare, r, len(row), n)
		}
		for c, v := range row {
			if v < 0 {
				return fmt.Errorf("%w: cell (%d,%d) is %d", ErrNegativeColor, r, c, v)
			}
		}
	}
	return nil
}

// cloneGrid deep-copies grid so the caller can no longer mutate it.
func cloneGrid(grid [][]int) [][]int {
	out := make([][]int, len(grid))
	for r, row := range grid {
		out[r] = make([]int, len(row))
		copy(out[r], row)
	}
	return out
}
