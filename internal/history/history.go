// Package history keeps a local ledger of workflow submissions so past runs
// can be inspected after the process exits.
package history

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded invocation: a workflow submitted to a server, where
// its outputs were collected, and how it ended.
type Run struct {
	ID          string
	Workflow    string
	WorkflowID  string // server-assigned ID
	State       string
	Host        string
	Destination string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// NewRun builds a ledger entry for a freshly submitted workflow.
func NewRun(workflow, workflowID, host, destination string) *Run {
	return &Run{
		ID:          uuid.NewString(),
		Workflow:    workflow,
		WorkflowID:  workflowID,
		State:       "Submitted",
		Host:        host,
		Destination: destination,
		CreatedAt:   time.Now().UTC(),
	}
}

// Store defines the persistence layer for the run ledger.
type Store interface {
	CreateRun(ctx context.Context, run *Run) error
	CompleteRun(ctx context.Context, id, state string, completedAt time.Time) error
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

// DefaultPath returns the ledger location under the user's home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "methseq.db"
	}
	return filepath.Join(home, ".methseq", "methseq.db")
}
