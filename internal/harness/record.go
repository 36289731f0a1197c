package harness

import (
	"encoding/json"
	"fmt"

	"gridlab/segment/internal/db"
	"gridlab/segment/internal/segment"
)

// RecordSummary stores s as a run in the database and returns the run ID
func RecordSummary(d *db.DB, source string, s *Summary) (string, error) {
	run := db.Run{
		Source:     source,
		OrderMode:  string(s.Order),
		StartedAt:  s.StartedAt.UnixMilli(),
		DurationMs: s.Duration.Milliseconds(),
		Passed:     s.Passed,
		Total:      s.Total,
	}

	results := make([]db.CaseResult, 0, s.Total)
	for _, c := range s.Results() {
		image, err := json.Marshal(c.Image)
		if err != nil {
			return "", fmt.Errorf("encoding image of case %d/%d: %w", c.Group+1, c.Index+1, err)
		}
		var errText *string
		if c.Err != "" {
			e := c.Err
			errText = &e
		}
		results = append(results, db.CaseResult{
			GroupIdx:         c.Group,
			CaseIdx:          c.Index,
			N:                c.N,
			Image:            string(image),
			ExpectedDistinct: c.ExpectedDistinct,
			ExpectedSize:     c.Expected.Size,
			ExpectedColor:    c.Expected.Color,
			GotDistinct:      c.GotDistinct,
			GotSize:          c.Got.Size,
			GotColor:         c.Got.Color,
			Passed:           c.Passed,
			Error:            errText,
		})
	}

	id, err := d.RecordRun(run, results)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}

// GroupsFromDB rebuilds the case groups of a stored run together with the
// order it was scored under.
func GroupsFromDB(d *db.DB, runID string) ([]Group, Order, error) {
	return groupsFromDB(d, runID, false)
}

// FailedGroupsFromDB is GroupsFromDB restricted to the cases that failed.
// Groups keep their index; one without failures is empty and trailing ones
// without failures are dropped.
func FailedGroupsFromDB(d *db.DB, runID string) ([]Group, Order, error) {
	return groupsFromDB(d, runID, true)
}

func groupsFromDB(d *db.DB, runID string, failedOnly bool) ([]Group, Order, error) {
	run, err := d.GetRun(runID)
	if err != nil {
		return nil, "", fmt.Errorf("loading run %s: %w", runID, err)
	}
	order, err := ParseOrder(run.OrderMode)
	if err != nil {
		return nil, "", fmt.Errorf("run %s: %w", runID, err)
	}

	var rows []db.CaseResult
	if failedOnly {
		rows, err = d.FailedCases(runID)
	} else {
		rows, err = d.CaseResults(runID)
	}
	if err != nil {
		return nil, "", fmt.Errorf("loading cases of run %s: %w", runID, err)
	}

	var groups []Group
	for _, r := range rows {
		for len(groups) <= r.GroupIdx {
			groups = append(groups, Group{})
		}
		var image [][]int
		if err := json.Unmarshal([]byte(r.Image), &image); err != nil {
			return nil, "", fmt.Errorf("decoding image of case %d/%d: %w", r.GroupIdx+1, r.CaseIdx+1, err)
		}
		groups[r.GroupIdx].Cases = append(groups[r.GroupIdx].Cases, Case{
			N:                r.N,
			Image:            image,
			DistinctSegments: r.ExpectedDistinct,
			LargestSegment:   order.Pair(segment.Largest{Size: r.ExpectedSize, Color: r.ExpectedColor}),
		})
	}
	return groups, order, nil
}
