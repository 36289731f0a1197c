package db

const runColumns = `id, source, order_mode, started_at, duration_ms, passed, total`

// scanRun scans a row into a Run. The row must have all 7 columns in standard order.
func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var r Run
	err := scanner.Scan(
		&r.ID, &r.Source, &r.OrderMode, &r.StartedAt,
		&r.DurationMs, &r.Passed, &r.Total,
	)
	return r, err
}

func (d *DB) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListRuns returns up to limit runs ordered by started_at descending
func (d *DB) ListRuns(limit int) ([]Run, error) {
	return d.queryRuns(`
		SELECT `+runColumns+`
		FROM runs ORDER BY started_at DESC, id LIMIT ?
	`, limit)
}

// GetRun returns a single run by ID
func (d *DB) GetRun(id string) (*Run, error) {
	row := d.conn.QueryRow(`
		SELECT `+runColumns+`
		FROM runs WHERE id = ?
	`, id)

	r, err := scanRun(row)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SearchRunsByIDPrefix finds runs whose ID starts with the given prefix.
func (d *DB) SearchRunsByIDPrefix(prefix string, limit int) ([]Run, error) {
	return d.queryRuns(`
		SELECT `+runColumns+`
		FROM runs WHERE id LIKE ? ORDER BY started_at DESC LIMIT ?
	`, prefix+"%", limit)
}
