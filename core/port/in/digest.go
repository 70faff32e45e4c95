// Package in defines inbound ports (driving ports) for the application.
package in

import "context"

// RunOutcome describes how one digest run ended.
type RunOutcome struct {
	RunID       string
	Fetched     int
	Classified  int
	Dispatched  bool // true when the report was emailed (not stdout)
	NothingToDo bool // empty unread list, no report generated
}

// DigestService is the inbound port the scheduler and HTTP trigger drive.
type DigestService interface {
	Run(ctx context.Context) (*RunOutcome, error)
}
