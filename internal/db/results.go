package db

const caseColumns = `run_id, group_idx, case_idx, n, image,
	expected_distinct, expected_size, expected_color,
	got_distinct, got_size, got_color, passed, error`

// scanCaseResult scans a row into a CaseResult. The row must have all 13 columns in standard order.
func scanCaseResult(scanner interface{ Scan(dest ...any) error }) (CaseResult, error) {
	var c CaseResult
	err := scanner.Scan(
		&c.RunID, &c.GroupIdx, &c.CaseIdx, &c.N, &c.Image,
		&c.ExpectedDistinct, &c.ExpectedSize, &c.ExpectedColor,
		&c.GotDistinct, &c.GotSize, &c.GotColor, &c.Passed, &c.Error,
	)
	return c, err
}

func (d *DB) queryCaseResults(query string, args ...any) ([]CaseResult, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []CaseResult
	for rows.Next() {
		c, err := scanCaseResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// CaseResults returns all case results of a run in group/case order
func (d *DB) CaseResults(runID string) ([]CaseResult, error) {
	return d.queryCaseResults(`
		SELECT `+caseColumns+`
		FROM case_results WHERE run_id = ?
		ORDER BY group_idx, case_idx
	`, runID)
}

// FailedCases returns the failing case results of a run in group/case order
func (d *DB) FailedCases(runID string) ([]CaseResult, error) {
	return d.queryCaseResults(`
		SELECT `+caseColumns+`
		FROM case_results WHERE run_id = ? AND passed = 0
		ORDER BY group_idx, case_idx
	`, runID)
}
