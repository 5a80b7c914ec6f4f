package engine

import (
	"fmt"

	"github.com/me/methseq/internal/cromwell"
)

// SubmissionError means the server rejected the workflow or could not be
// reached at submit time. No workflow is tracked when it occurs.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit workflow: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// TerminalFailureError means the workflow reached a terminal status other
// than Succeeded. Outputs are never collected for such a workflow.
type TerminalFailureError struct {
	Status cromwell.Status
}

func (e *TerminalFailureError) Error() string {
	return fmt.Sprintf("workflow terminated: %s", e.Status)
}

// CancellationError means monitoring was interrupted and an abort was
// attempted for the tracked workflow.
type CancellationError struct {
	WorkflowID string
}

func (e *CancellationError) Error() string {
	return fmt.Sprintf("workflow %s aborted", e.WorkflowID)
}
