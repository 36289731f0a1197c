package db

import (
	"fmt"

	"github.com/google/uuid"
)

// RecordRun stores a run and its case results in one transaction and returns
// the run ID. A new UUID is assigned when run.ID is empty.
func (d *DB) RecordRun(run Run, results []CaseResult) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.OrderMode, run.StartedAt, run.DurationMs, run.Passed, run.Total)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO case_results (` + caseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("preparing case insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range results {
		_, err := stmt.Exec(
			run.ID, c.GroupIdx, c.CaseIdx, c.N, c.Image,
			c.ExpectedDistinct, c.ExpectedSize, c.ExpectedColor,
			c.GotDistinct, c.GotSize, c.GotColor, c.Passed, c.Error,
		)
		if err != nil {
			return "", fmt.Errorf("inserting case %d/%d: %w", c.GroupIdx+1, c.CaseIdx+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return run.ID, nil
}

// DeleteRun deletes a run. Case results are cascade-deleted by SQLite.
func (d *DB) DeleteRun(id string) error {
	res, err := d.conn.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting run %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}
