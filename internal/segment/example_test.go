package segment_test

import (
	"fmt"

	"gridlab/segment/internal/segment"
)

// ExampleAnalyzer counts the colors of a 5×5 image and picks its largest
// segment. Colors 1 and 2 both own a 5-cell region, so the smaller color wins.
func ExampleAnalyzer() {
	image := [][]int{
		{0, 0, 0, 3, 0},
		{0, 2, 3, 3, 0},
		{1, 2, 2, 0, 0},
		{1, 2, 2, 1, 1},
		{0, 0, 1, 1, 1},
	}
	a, err := segment.NewAnalyzer(5, image)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Number of Distinct Segments:", a.CountDistinctSegments())
	largest := a.FindLargestSegment()
	fmt.Println("Size of the Largest Segment:", largest.Size)
	fmt.Println("Color of the Largest Segment:", largest.Color)

	// Output:
	// Number of Distinct Segments: 3
	// Size of the Largest Segment: 5
	// Color of the Largest Segment: 1
}

// ExampleBuildReport lists every connected segment, which differs from the
// distinct count when one color is split into several regions.
func ExampleBuildReport() {
	a, _ := segment.NewAnalyzer(3, [][]int{
		{1, 0, 1},
		{0, 0, 0},
		{2, 2, 1},
	})
	r := segment.BuildReport(a, -1)
	fmt.Println("distinct:", r.DistinctSegments, "connected:", r.ConnectedSegments)
	for _, s := range r.Segments {
		fmt.Printf("color %d size %d at (%d,%d)\n", s.Color, s.Size, s.First.Row, s.First.Col)
	}

	// Output:
	// distinct: 2 connected: 4
	// color 2 size 2 at (2,0)
	// color 1 size 1 at (0,0)
	// color 1 size 1 at (0,2)
	// color 1 size 1 at (2,2)
}
