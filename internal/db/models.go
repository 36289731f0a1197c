package db

// Run represents a row in the runs table
type Run struct {
	ID         string `json:"id"`
	Source     string `json:"source"`      // case file path, or "rerun:<id>"
	OrderMode  string `json:"order"`       // "size-color" or "color-size"
	StartedAt  int64  `json:"started_at"`  // Unix millis
	DurationMs int64  `json:"duration_ms"`
	Passed     int    `json:"passed"`
	Total      int    `json:"total"`
}

// CaseResult represents a row in the case_results table
type CaseResult struct {
	RunID            string  `json:"run_id"`
	GroupIdx         int     `json:"group"`
	CaseIdx          int     `json:"case"`
	N                int     `json:"n"`
	Image            string  `json:"image"` // JSON matrix
	ExpectedDistinct int     `json:"expected_distinct"`
	ExpectedSize     int     `json:"expected_size"`
	ExpectedColor    int     `json:"expected_color"`
	GotDistinct      int     `json:"got_distinct"`
	GotSize          int     `json:"got_size"`
	GotColor         int     `json:"got_color"`
	Passed           bool    `json:"passed"`
	Error            *string `json:"error"`
}
