package segment

import "sort"

// Bounds is the inclusive bounding box of a segment
type Bounds struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// Segment is one materialized connected region
type Segment struct {
	Root   int    `json:"root"`
	Color  int    `json:"color"`
	Size   int    `json:"size"`
	First  Cell   `json:"first"` // first cell in row-major order
	Bounds Bounds `json:"bounds"`
}

// ColorSummary aggregates all segments sharing one color
type ColorSummary struct {
	Color    int `json:"color"`
	Segments int `json:"segments"`
	Cells    int `json:"cells"`
	Largest  int `json:"largest"`
}

// SizeBucket is one bucket in the segment size histogram
type SizeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Report contains segment analysis results
type Report struct {
	Side              int            `json:"n"`
	TotalCells        int            `json:"total_cells"`
	BackgroundCells   int            `json:"background_cells"`
	DistinctSegments  int            `json:"distinct_segments"`
	Largest           Largest        `json:"largest"`
	ConnectedSegments int            `json:"connected_segments"`
	SmallestSegment   int            `json:"smallest_segment"`
	Colors            []ColorSummary `json:"colors"`
	SizeHistogram     []SizeBucket   `json:"size_histogram"`
	Segments          []Segment      `json:"segments"`
}

// BuildReport runs both queries on a and materializes its segments.
// Segments are ordered by size descending, then color, then first cell;
// at most topN are kept, all of them when topN is negative.
func BuildReport(a *Analyzer, topN int) *Report {
	distinct := a.CountDistinctSegments()
	largest := a.FindLargestSegment()

	total := a.n * a.n
	report := &Report{
		Side:             a.n,
		TotalCells:       total,
		DistinctSegments: distinct,
		Largest:          largest,
		SizeHistogram:    defaultHistogram(),
		Colors:           []ColorSummary{},
		Segments:         []Segment{},
	}

	var segments []Segment
	for _, members := range a.uf.Components() {
		first := members[0]
		color := a.image[first/a.n][first%a.n]
		if color == Background {
			report.BackgroundCells += len(members)
			continue
		}
		segments = append(segments, a.materialize(members, color))
	}

	report.ConnectedSegments = len(segments)
	if len(segments) == 0 {
		return report
	}

	byColor := make(map[int]*ColorSummary)
	buckets := [6]int{}
	smallest := total
	for _, s := range segments {
		if s.Size < smallest {
			smallest = s.Size
		}
		buckets[sizeBucket(s.Size)]++
		cs, ok := byColor[s.Color]
		if !ok {
			cs = &ColorSummary{Color: s.Color}
			byColor[s.Color] = cs
		}
		cs.Segments++
		cs.Cells += s.Size
		if s.Size > cs.Largest {
			cs.Largest = s.Size
		}
	}
	report.SmallestSegment = smallest
	for i := range report.SizeHistogram {
		report.SizeHistogram[i].Count = buckets[i]
	}

	for _, cs := range byColor {
		report.Colors = append(report.Colors, *cs)
	}
	sort.Slice(report.Colors, func(i, j int) bool { return report.Colors[i].Color < report.Colors[j].Color })

	sort.Slice(segments, func(i, j int) bool {
		if segments[i].Size != segments[j].Size {
			return segments[i].Size > segments[j].Size
		}
		if segments[i].Color != segments[j].Color {
			return segments[i].Color < segments[j].Color
		}
		return a.index(segments[i].First.Row, segments[i].First.Col) < a.index(segments[j].First.Row, segments[j].First.Col)
	})
	if topN >= 0 && len(segments) > topN {
		segments = segments[:topN]
	}
	report.Segments = append(report.Segments, segments...)

	return report
}

// materialize builds a Segment from ascending member indexes.
func (a *Analyzer) materialize(members []int, color int) Segment {
	first := members[0]
	s := Segment{
		Root:   a.uf.Find(first),
		Color:  color,
		Size:   len(members),
		First:  Cell{Row: first / a.n, Col: first % a.n},
		Bounds: Bounds{Top: a.n, Left: a.n, Bottom: -1, Right: -1},
	}
	for _, m := range members {
		row, col := m/a.n, m%a.n
		if row < s.Bounds.Top {
			s.Bounds.Top = row
		}
		if row > s.Bounds.Bottom {
			s.Bounds.Bottom = row
		}
		if col < s.Bounds.Left {
			s.Bounds.Left = col
		}
		if col > s.Bounds.Right {
			s.Bounds.Right = col
		}
	}
	return s
}

func defaultHistogram() []SizeBucket {
	return []SizeBucket{
		{Label: "1"}, {Label: "2-3"}, {Label: "4-7"},
		{Label: "8-15"}, {Label: "16-31"}, {Label: "32+"},
	}
}

func sizeBucket(size int) int {
	switch {
	case size <= 1:
		return 0
	case size <= 3:
		return 1
	case size <= 7:
		return 2
	case size <= 15:
		return 3
	case size <= 31:
		return 4
	default:
		return 5
	}
}
