package harness

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"gridlab/segment/internal/segment"
)

// Order names which position of a case's LargestSegment pair holds the size.
type Order string

const (
	// OrderSizeColor reads [size, color]; this is how the assignment grader compares.
	OrderSizeColor Order = "size-color"
	// OrderColorSize reads [color, size].
	OrderColorSize Order = "color-size"
)

// ParseOrder validates an order name
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case OrderSizeColor, OrderColorSize:
		return Order(s), nil
	case "":
		return OrderSizeColor, nil
	default:
		return "", fmt.Errorf("unknown largest-segment order %q (want %s or %s)", s, OrderSizeColor, OrderColorSize)
	}
}

// Expected interprets a raw pair under o
func (o Order) Expected(pair [2]int) segment.Largest {
	if o == OrderColorSize {
		return segment.Largest{Color: pair[0], Size: pair[1]}
	}
	return segment.Largest{Size: pair[0], Color: pair[1]}
}

// Pair encodes l back into the raw positional form under o
func (o Order) Pair(l segment.Largest) [2]int {
	if o == OrderColorSize {
		return [2]int{l.Color, l.Size}
	}
	return [2]int{l.Size, l.Color}
}

// CaseResult is the outcome of one case
type CaseResult struct {
	Group            int             `json:"group"` // 0-based
	Index            int             `json:"index"` // 0-based within the group
	N                int             `json:"n"`
	Image            [][]int         `json:"image"`
	ExpectedDistinct int             `json:"expected_distinct"`
	Expected         segment.Largest `json:"expected_largest"`
	GotDistinct      int             `json:"got_distinct"`
	Got              segment.Largest `json:"got_largest"`
	Passed           bool            `json:"passed"`
	Err              string          `json:"error,omitempty"`
}

// GroupResult tallies one group
type GroupResult struct {
	Index  int          `json:"index"`
	Passed int          `json:"passed"`
	Total  int          `json:"total"`
	Cases  []CaseResult `json:"cases"`
}

// Summary is the outcome of a harness run
type Summary struct {
	Order     Order         `json:"order"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Passed    int           `json:"passed"`
	Total     int           `json:"total"`
	Groups    []GroupResult `json:"groups"`
}

// String renders the per-group score lines of the original console report.
func (s *Summary) String() string {
	var b strings.Builder
	for _, g := range s.Groups {
		fmt.Fprintf(&b, "Case %d\n", g.Index+1)
		fmt.Fprintf(&b, "Score: %d / %d \n", g.Passed, g.Total)
	}
	return b.String()
}

// Results flattens all case results in input order
func (s *Summary) Results() []CaseResult {
	var out []CaseResult
	for _, g := range s.Groups {
		out = append(out, g.Cases...)
	}
	return out
}

// Failed returns the failing case results in input order
func (s *Summary) Failed() []CaseResult {
	var out []CaseResult
	for _, g := range s.Groups {
		for _, c := range g.Cases {
			if !c.Passed {
				out = append(out, c)
			}
		}
	}
	return out
}

// Runner scores cases against the analyzer. Each case gets its own Analyzer,
// so up to Workers cases run concurrently.
type Runner struct {
	Order   Order
	Workers int
	Logger  *log.Logger
}

// NewRunner creates a Runner; workers below 1 mean sequential execution.
func NewRunner(order Order, workers int, logger *log.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{Order: order, Workers: workers, Logger: logger}
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

// RunCase builds an analyzer for c and compares both answers. A grid the
// analyzer rejects fails the case without aborting the run.
func (r *Runner) RunCase(group, index int, c Case) CaseResult {
	res := CaseResult{
		Group:            group,
		Index:            index,
		N:                c.N,
		Image:            c.Image,
		ExpectedDistinct: c.DistinctSegments,
		Expected:         r.Order.Expected(c.LargestSegment),
	}

	a, err := segment.NewAnalyzer(c.N, c.Image)
	if err != nil {
		res.Err = err.Error()
		r.logger().Warn("case rejected", "group", group+1, "case", index+1, "err", err)
		return res
	}

	res.GotDistinct = a.CountDistinctSegments()
	res.Got = a.FindLargestSegment()
	res.Passed = res.GotDistinct == res.ExpectedDistinct && res.Got == res.Expected
	if !res.Passed {
		r.logger().Debug("case failed",
			"group", group+1, "case", index+1,
			"distinct", res.GotDistinct, "want_distinct", res.ExpectedDistinct,
			"size", res.Got.Size, "want_size", res.Expected.Size,
			"color", res.Got.Color, "want_color", res.Expected.Color)
	}
	return res
}

// Run scores every case of every group. Results keep input order.
func (r *Runner) Run(ctx context.Context, groups []Group) (*Summary, error) {
	start := time.Now()
	results := make([][]CaseResult, len(groups))
	for gi, g := range groups {
		results[gi] = make([]CaseResult, len(g.Cases))
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.Workers)
	for gi, g := range groups {
		for ci, c := range g.Cases {
			if egCtx.Err() != nil {
				break
			}
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				results[gi][ci] = r.RunCase(gi, ci, c)
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("running cases: %w", err)
	}
	// Cancelled after the last case was scheduled.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("running cases: %w", err)
	}

	summary := &Summary{
		Order:     r.Order,
		StartedAt: start,
		Groups:    make([]GroupResult, len(groups)),
	}
	for gi, cases := range results {
		gr := GroupResult{Index: gi, Total: len(cases), Cases: cases}
		for _, c := range cases {
			if c.Passed {
				gr.Passed++
			}
		}
		summary.Groups[gi] = gr
		summary.Passed += gr.Passed
		summary.Total += gr.Total
	}
	summary.Duration = time.Since(start)

	r.logger().Info("harness finished", "groups", len(groups), "passed", summary.Passed, "total", summary.Total)
	return summary, nil
}
