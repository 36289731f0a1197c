package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := OpenDB(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func strPtr(s string) *string { return &s }

func sampleResults() []CaseResult {
	return []CaseResult{
		{GroupIdx: 0, CaseIdx: 0, N: 3, Image: "[[0,0,0],[0,1,1],[0,0,1]]",
			ExpectedDistinct: 1, ExpectedSize: 3, ExpectedColor: 1,
			GotDistinct: 1, GotSize: 3, GotColor: 1, Passed: true},
		{GroupIdx: 0, CaseIdx: 1, N: 1, Image: "[[2]]",
			ExpectedDistinct: 1, ExpectedSize: 2, ExpectedColor: 2,
			GotDistinct: 1, GotSize: 1, GotColor: 2, Passed: false},
		{GroupIdx: 1, CaseIdx: 0, N: 2, Image: "[[0]]",
			ExpectedDistinct: 0, ExpectedSize: 0, ExpectedColor: 0,
			Passed: false, Error: strPtr("segment: grid row count does not match N")},
	}
}

func TestOpenDB_CreatesSchema(t *testing.T) {
	d := setupTestDB(t)
	for _, table := range []string{"runs", "case_results"} {
		var name string
		err := d.Conn().QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestOpenDB_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	d, err := OpenDB(path)
	require.NoError(t, err)
	_, err = d.RecordRun(Run{ID: "keep", Source: "a.json", OrderMode: "size-color", StartedAt: 1}, nil)
	require.NoError(t, err)
	require.NoError(t, d.Close())

	d, err = OpenDB(path)
	require.NoError(t, err)
	defer d.Close()
	run, err := d.GetRun("keep")
	require.NoError(t, err)
	assert.Equal(t, "a.json", run.Source)
}

func TestRecordRun_RoundTrip(t *testing.T) {
	d := setupTestDB(t)
	id, err := d.RecordRun(Run{
		Source: "cases.json", OrderMode: "size-color",
		StartedAt: 1700000000000, DurationMs: 12, Passed: 1, Total: 3,
	}, sampleResults())
	require.NoError(t, err)
	assert.Len(t, id, 36, "generated ID should be a UUID")

	run, err := d.GetRun(id)
	require.NoError(t, err)
	assert.Equal(t, "cases.json", run.Source)
	assert.Equal(t, 1, run.Passed)
	assert.Equal(t, 3, run.Total)
	assert.Equal(t, int64(12), run.DurationMs)

	results, err := d.CaseResults(id)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].Passed)
	assert.Equal(t, "[[0,0,0],[0,1,1],[0,0,1]]", results[0].Image)
	assert.Nil(t, results[0].Error)
	assert.Equal(t, 1, results[2].GroupIdx)
	require.NotNil(t, results[2].Error)
	assert.Contains(t, *results[2].Error, "row count")

	failed, err := d.FailedCases(id)
	require.NoError(t, err)
	require.Len(t, failed, 2)
	assert.Equal(t, 1, failed[0].CaseIdx)
}

func TestRecordRun_DuplicateCaseRollsBack(t *testing.T) {
	d := setupTestDB(t)
	dup := []CaseResult{{GroupIdx: 0, CaseIdx: 0, Image: "[]"}, {GroupIdx: 0, CaseIdx: 0, Image: "[]"}}
	_, err := d.RecordRun(Run{ID: "dup", Source: "x", OrderMode: "size-color"}, dup)
	require.Error(t, err)

	_, err = d.GetRun("dup")
	assert.True(t, errors.Is(err, sql.ErrNoRows), "failed transaction must not leave the run behind")
}

func TestListRuns_NewestFirst(t *testing.T) {
	d := setupTestDB(t)
	for i, id := range []string{"aaaa-old", "bbbb-mid", "cccc-new"} {
		_, err := d.RecordRun(Run{ID: id, Source: "s", OrderMode: "size-color", StartedAt: int64(i)}, nil)
		require.NoError(t, err)
	}

	runs, err := d.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "cccc-new", runs[0].ID)
	assert.Equal(t, "bbbb-mid", runs[1].ID)
}

func TestSearchRunsByIDPrefix(t *testing.T) {
	d := setupTestDB(t)
	for _, id := range []string{"abc123-1", "abc123-2", "def456-1"} {
		_, err := d.RecordRun(Run{ID: id, Source: "s", OrderMode: "size-color"}, nil)
		require.NoError(t, err)
	}

	matches, err := d.SearchRunsByIDPrefix("abc1", 10)
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = d.SearchRunsByIDPrefix("def", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "def456-1", matches[0].ID)
}

func TestDeleteRun_Cascades(t *testing.T) {
	d := setupTestDB(t)
	id, err := d.RecordRun(Run{Source: "s", OrderMode: "size-color"}, sampleResults())
	require.NoError(t, err)

	require.NoError(t, d.DeleteRun(id))
	results, err := d.CaseResults(id)
	require.NoError(t, err)
	assert.Empty(t, results)

	assert.Error(t, d.DeleteRun(id), "deleting twice should report not found")
}
