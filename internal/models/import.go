package models

import (
	"fmt"
)

// ImportState is the position of one import attempt in its lifecycle.
type ImportState string

const (
	ImportStateIdle        ImportState = "idle"
	ImportStateParsing     ImportState = "parsing"
	ImportStateValidating  ImportState = "validating"
	ImportStateUploading   ImportState = "uploading"
	ImportStateReportReady ImportState = "report_ready"
	ImportStateFailed      ImportState = "failed"
)

// importTransitions lists the allowed forward moves. Terminal states have none.
var importTransitions = map[ImportState][]ImportState{
	ImportStateIdle:       {ImportStateParsing},
	ImportStateParsing:    {ImportStateValidating, ImportStateFailed},
	ImportStateValidating: {ImportStateUploading, ImportStateReportReady, ImportStateFailed},
	ImportStateUploading:  {ImportStateReportReady, ImportStateFailed},
}

// CanTransition reports whether an attempt in state s may move to next.
func (s ImportState) CanTransition(next ImportState) bool {
	for _, allowed := range importTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s ImportState) Terminal() bool {
	return s == ImportStateReportReady || s == ImportStateFailed
}

// ImportStatus summarizes how an attempt that produced a report ended.
type ImportStatus string

const (
	// ImportStatusEmpty means the file had no data rows; nothing was uploaded.
	ImportStatusEmpty ImportStatus = "empty"
	// ImportStatusValidationFailed means at least one row broke a rule; nothing was uploaded.
	ImportStatusValidationFailed ImportStatus = "validation_failed"
	// ImportStatusCompleted means the catalog accepted every row.
	ImportStatusCompleted ImportStatus = "completed"
	// ImportStatusCompletedWithErrors means the catalog rejected some or all rows.
	ImportStatusCompletedWithErrors ImportStatus = "completed_with_errors"
)

// RawRow maps a normalized column name to the raw cell text. A missing key
// and an empty string both mean the cell was blank.
type RawRow map[string]string

// NumberedRow is a RawRow with its 1-based line in the source file. The
// header is line 1, so the first data row is line 2.
type NumberedRow struct {
	Line   int
	Values RawRow
}

// RowError describes every rule a single row broke.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// String renders the row-indexed form shown to users.
func (e RowError) String() string {
	return fmt.Sprintf("Row %d: %s", e.Line, e.Message)
}

// ImportReport is the outcome of one import attempt.
type ImportReport struct {
	ID            string       `json:"id"`
	Status        ImportStatus `json:"status"`
	Success       bool         `json:"success"`
	RowsTotal     int          `json:"rows_total"`
	RowsInserted  int          `json:"rows_inserted"`
	Errors        int          `json:"errors"`
	ErrorsDetails []string     `json:"errors_details"`
}
