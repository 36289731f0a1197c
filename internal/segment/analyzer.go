package segment

// Largest is the answer of FindLargestSegment, size first.
type Largest struct {
	Size  int `json:"size"`
	Color int `json:"color"`
}

// Analyzer owns one immutable grid and the union-find state merging its
// same-colored 4-adjacent cells. It is not safe for concurrent use; analyze
// independent grids with independent Analyzers.
type Analyzer struct {
	n      int
	image  [][]int
	uf     *DisjointSet
	colors []int // distinct colors in first-seen order; index is the ordinal
	merged bool
}

// NewAnalyzer validates grid as an n×n matrix and copies it.
// Errors wrap ErrInvalidSize, ErrDimensionMismatch, ErrNonSquare or ErrNegativeColor.
func NewAnalyzer(n int, grid [][]int) (*Analyzer, error) {
	if err := ValidateGrid(n, grid); err != nil {
		return nil, err
	}
	return &Analyzer{
		n:     n,
		image: cloneGrid(grid),
		uf:    NewDisjointSet(n * n),
	}, nil
}

// N returns the grid side length
func (a *Analyzer) N() int {
	return a.n
}

// Color returns the value stored at (row, col)
func (a *Analyzer) Color(row, col int) int {
	return a.image[row][col]
}

func (a *Analyzer) index(row, col int) int {
	return row*a.n + col
}

// CountDistinctSegments scans the grid in row-major order, merging every
// non-background cell with its upper and left neighbors of the same color,
// and returns the number of distinct colors present.
//
// The count is of colors, not of connected segments: one color split over
// two regions counts once. The color bookkeeping restarts on every call,
// and repeated merges are no-ops, so calling it again returns the same value.
func (a *Analyzer) CountDistinctSegments() int {
	ordinals := make(map[int]int)
	a.colors = a.colors[:0]
	for i := 0; i < a.n; i++ {
		for j := 0; j < a.n; j++ {
			color := a.image[i][j]
			if color == Background {
				continue
			}
			if _, seen := ordinals[color]; !seen {
				ordinals[color] = len(a.colors)
				a.colors = append(a.colors, color)
			}
			if i > 0 && a.image[i-1][j] == color {
				a.uf.Union(a.index(i, j), a.index(i-1, j))
			}
			if j > 0 && a.image[i][j-1] == color {
				a.uf.Union(a.index(i, j), a.index(i, j-1))
			}
		}
	}
	a.merged = true
	return len(a.colors)
}

// FindLargestSegment returns the size and color of the largest segment.
// A strictly larger size wins; equal sizes go to the smaller color.
// An all-background grid yields the zero Largest.
func (a *Analyzer) FindLargestSegment() Largest {
	a.ensureMerged()
	var best Largest
	for i := 0; i < a.n; i++ {
		for j := 0; j < a.n; j++ {
			color := a.image[i][j]
			if color == Background {
				continue
			}
			size := a.uf.Size(a.index(i, j))
			if size > best.Size || (size == best.Size && color < best.Color) {
				best = Largest{Size: size, Color: color}
			}
		}
	}
	return best
}

// Colors returns the distinct colors in the order the scan first met them.
func (a *Analyzer) Colors() []int {
	a.ensureMerged()
	out := make([]int, len(a.colors))
	copy(out, a.colors)
	return out
}

// Root returns the linear index of the representative of (row, col)'s segment.
func (a *Analyzer) Root(row, col int) int {
	a.ensureMerged()
	return a.uf.Find(a.index(row, col))
}

// SameSegment reports whether two cells were merged into one segment.
func (a *Analyzer) SameSegment(r1, c1, r2, c2 int) bool {
	a.ensureMerged()
	return a.uf.Connected(a.index(r1, c1), a.index(r2, c2))
}

// ensureMerged runs the union pass once so queries never depend on call order.
func (a *Analyzer) ensureMerged() {
	if !a.merged {
		a.CountDistinctSegments()
	}
}
