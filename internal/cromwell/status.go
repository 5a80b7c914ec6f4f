package cromwell

// Status represents the lifecycle state Cromwell reports for a workflow.
type Status string

const (
	StatusSubmitted Status = "Submitted"
	StatusRunning   Status = "Running"
	StatusSucceeded Status = "Succeeded"
	StatusFailed    Status = "Failed"
	StatusAborted   Status = "Aborted"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no further transition can occur.
//
// Only Submitted and Running are non-terminal; every other value the server
// may report, including statuses added by future Cromwell versions, counts
// as terminal.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSubmitted, StatusRunning:
		return false
	}
	return true
}
