package input

import (
	"context"
	"time"
)

// ReportOutcome summarizes a report run. Sent is false for the benign
// empty-window case where no email is produced.
type ReportOutcome struct {
	EventCount  int
	RecordCount int
	WindowStart time.Time
	WindowEnd   time.Time
	Filename    string
	Sent        bool
}

// ReportUseCase aggregates the previous calendar month into a CSV
// report and dispatches it by email. The scheduled run and the manual
// trigger share this single entry point.
type ReportUseCase interface {
	RunNow(ctx context.Context) (*ReportOutcome, error)
}
