package model

// RowError is one rejected spreadsheet row.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// ImportResult summarizes a stock spreadsheet import. Rejected rows do
// not abort the import; they are reported back and skipped.
type ImportResult struct {
	JobID       string     `json:"job_id"`
	RowsTotal   int        `json:"rows_total"`
	RowsApplied int        `json:"rows_applied"`
	RowErrors   []RowError `json:"row_errors,omitempty"`
}
