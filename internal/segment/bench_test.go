package segment_test

import (
	"math/rand"
	"testing"

	"gridlab/segment/internal/segment"
)

func randomGrid(n, colors int) [][]int {
	rng := rand.New(rand.NewSource(42))
	grid := make([][]int, n)
	for y := 0; y < n; y++ {
		row := make([]int, n)
		for x := 0; x < n; x++ {
			row[x] = rng.Intn(colors + 1)
		}
		grid[y] = row
	}
	return grid
}

// BenchmarkCountDistinctSegments measures a full union pass on a fresh
// 1000×1000 analyzer per iteration.
func BenchmarkCountDistinctSegments(b *testing.B) {
	const n = 1000
	grid := randomGrid(n, 4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a, err := segment.NewAnalyzer(n, grid)
		if err != nil {
			b.Fatalf("NewAnalyzer failed: %v", err)
		}
		_ = a.CountDistinctSegments()
	}
}

// BenchmarkFindLargestSegment measures the second scan after the merge.
func BenchmarkFindLargestSegment(b *testing.B) {
	const n = 1000
	a, err := segment.NewAnalyzer(n, randomGrid(n, 2))
	if err != nil {
		b.Fatalf("NewAnalyzer failed: %v", err)
	}
	a.CountDistinctSegments()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.FindLargestSegment()
	}
}
