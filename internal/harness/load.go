// Package harness loads grids and JSON test-case files and scores the
// segment analyzer against them.
package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidJSON indicates input that is not valid JSON where JSON is required.
	ErrInvalidJSON = errors.New("harness: invalid JSON")
	// ErrMalformedCases indicates a case file that does not follow the group/case layout.
	ErrMalformedCases = errors.New("harness: malformed case file")
	// ErrMalformedGrid indicates grid input that is not a matrix of integers.
	ErrMalformedGrid = errors.New("harness: malformed grid")
)

// Case is one test record: a grid plus the expected answers.
type Case struct {
	N                int     `json:"N"`
	Image            [][]int `json:"image"`
	DistinctSegments int     `json:"DistinctSegments"`
	// LargestSegment is the raw two-element pair; Order decides which
	// position holds the size.
	LargestSegment [2]int `json:"LargestSegment"`
}

// Group is an ordered list of cases scored together.
type Group struct {
	Cases []Case `json:"data"`
}

// ParseCases decodes a case file: a JSON array of groups, each holding its
// cases under "data".
func ParseCases(data []byte) ([]Group, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: top level must be an array of groups", ErrMalformedCases)
	}

	var groups []Group
	for gi, g := range root.Array() {
		cases := g.Get("data")
		if !cases.IsArray() {
			return nil, fmt.Errorf("%w: group %d: \"data\" must be an array", ErrMalformedCases, gi+1)
		}
		group := Group{}
		for ci, c := range cases.Array() {
			parsed, err := parseCase(c)
			if err != nil {
				return nil, fmt.Errorf("%w: group %d case %d: %v", ErrMalformedCases, gi+1, ci+1, err)
			}
			group.Cases = append(group.Cases, parsed)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// LoadCasesFile reads and parses a case file
func LoadCasesFile(path string) ([]Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading case file: %w", err)
	}
	return ParseCases(data)
}

func parseCase(c gjson.Result) (Case, error) {
	var out Case
	var err error
	if out.N, err = intField(c, "N"); err != nil {
		return out, err
	}
	if out.DistinctSegments, err = intField(c, "DistinctSegments"); err != nil {
		return out, err
	}
	if out.Image, err = matrix(c.Get("image")); err != nil {
		return out, fmt.Errorf("image: %w", err)
	}

	pair := c.Get("LargestSegment")
	if !pair.IsArray() || len(pair.Array()) != 2 {
		return out, errors.New("LargestSegment must be a two-element array")
	}
	for i, v := range pair.Array() {
		n, ok := asInt(v)
		if !ok {
			return out, fmt.Errorf("LargestSegment[%d] is not an integer", i)
		}
		out.LargestSegment[i] = n
	}
	return out, nil
}

func intField(obj gjson.Result, name string) (int, error) {
	v := obj.Get(name)
	if !v.Exists() {
		return 0, fmt.Errorf("missing %q", name)
	}
	n, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("%q is not an integer: %s", name, v.Raw)
	}
	return n, nil
}

func asInt(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number || v.Num != float64(v.Int()) {
		return 0, false
	}
	return int(v.Int()), true
}

func matrix(v gjson.Result) ([][]int, error) {
	if !v.IsArray() {
		return nil, errors.New("must be an array of rows")
	}
	rows := v.Array()
	grid := make([][]int, len(rows))
	for r, row := range rows {
		if !row.IsArray() {
			return nil, fmt.Errorf("row %d is not an array", r)
		}
		cells := row.Array()
		grid[r] = make([]int, len(cells))
		for c, cell := range cells {
			n, ok := asInt(cell)
			if !ok {
				return nil, fmt.Errorf("cell (%d,%d) is not an integer: %s", r, c, cell.Raw)
			}
			grid[r][c] = n
		}
	}
	return grid, nil
}

// ParseGrid decodes a single grid. Accepted forms are a JSON matrix, a JSON
// object with "image" and optional "N", or whitespace-separated text rows.
// When N is absent it is the number of rows.
func ParseGrid(data []byte) (int, [][]int, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return 0, nil, fmt.Errorf("%w: empty input", ErrMalformedGrid)
	}

	switch trimmed[0] {
	case '[', '{':
		if !gjson.ValidBytes(trimmed) {
			return 0, nil, ErrInvalidJSON
		}
		root := gjson.ParseBytes(trimmed)
		image := root
		if root.IsObject() {
			image = root.Get("image")
		}
		grid, err := matrix(image)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %v", ErrMalformedGrid, err)
		}
		n := len(grid)
		if root.IsObject() && root.Get("N").Exists() {
			if n, err = intField(root, "N"); err != nil {
				return 0, nil, fmt.Errorf("%w: %v", ErrMalformedGrid, err)
			}
		}
		return n, grid, nil
	default:
		grid, err := textGrid(string(trimmed))
		if err != nil {
			return 0, nil, err
		}
		return len(grid), grid, nil
	}
}

// LoadGridFile reads and parses a grid file
func LoadGridFile(path string) (int, [][]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, fmt.Errorf("reading grid file: %w", err)
	}
	return ParseGrid(data)
}

func textGrid(text string) ([][]int, error) {
	var grid [][]int
	for r, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := make([]int, len(fields))
		for c, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d field %d: %q is not an integer", ErrMalformedGrid, r+1, c+1, f)
			}
			row[c] = n
		}
		grid = append(grid, row)
	}
	return grid, nil
}
