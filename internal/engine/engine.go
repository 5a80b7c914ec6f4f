// Package engine drives one workflow through submission, status polling and
// output collection against a Cromwell-compatible server.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/methseq/internal/cromwell"
	"github.com/me/methseq/internal/staging"
)

// Client is the capability the engine needs from the execution server.
// *cromwell.Client satisfies it; tests script it with a fake.
type Client interface {
	Submit(ctx context.Context, definition, inputs, dependencies string) (string, error)
	Status(ctx context.Context, id string) (cromwell.Status, error)
	Outputs(ctx context.Context, id string) ([]cromwell.Output, error)
	Abort(ctx context.Context, id string) error
}

// DefaultPollInterval matches the original five-minute status check cadence.
const DefaultPollInterval = 5 * time.Minute

// Engine submits a staged workflow and monitors it to a terminal status.
// One Engine tracks at most one workflow per invocation.
type Engine struct {
	client Client
	poll   time.Duration
	logger *slog.Logger
}

// New creates an Engine. A zero poll interval selects the default.
func New(client Client, poll time.Duration, logger *slog.Logger) *Engine {
	if poll == 0 {
		poll = DefaultPollInterval
	}
	return &Engine{
		client: client,
		poll:   poll,
		logger: logger.With("component", "engine"),
	}
}

// Submit sends the staged artifacts to the server and returns the assigned
// workflow ID. On failure nothing is tracked and no polling may begin.
func (e *Engine) Submit(ctx context.Context, staged *staging.StagedWorkflow) (string, error) {
	id, err := e.client.Submit(ctx, staged.Definition, staged.Inputs, staged.Imports)
	if err != nil {
		return "", &SubmissionError{Err: err}
	}
	e.logger.Info("workflow submitted", "workflow_id", id)
	return id, nil
}

// Watch polls the workflow status at the configured interval until a
// terminal status is reported. There is no iteration bound: run-time limits
// belong to the server. The returned status is always the terminal status
// that ended the loop; the error is non-nil unless that status is Succeeded.
//
// Cancelling ctx while Watch waits issues exactly one best-effort abort for
// the workflow, stops all further polling, and returns *CancellationError.
func (e *Engine) Watch(ctx context.Context, id string) (cromwell.Status, error) {
	ticker := time.NewTicker(e.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", e.abort(id)

		case <-ticker.C:
			// The ticker can win the select race after cancellation;
			// never issue another status query once ctx is done.
			if ctx.Err() != nil {
				return "", e.abort(id)
			}

			status, err := e.client.Status(ctx, id)
			if err != nil {
				if ctx.Err() != nil {
					return "", e.abort(id)
				}
				return "", fmt.Errorf("query status: %w", err)
			}
			e.logger.Debug("workflow status", "workflow_id", id, "status", status)

			if !status.IsTerminal() {
				continue
			}
			e.logger.Info("workflow terminated", "workflow_id", id, "status", status)
			if status != cromwell.StatusSucceeded {
				return status, &TerminalFailureError{Status: status}
			}
			return status, nil
		}
	}
}

// Collect fetches the workflow's declared outputs and materializes them into
// destDir. Valid only after Watch returned Succeeded.
func (e *Engine) Collect(ctx context.Context, id, destDir string, move bool) error {
	outputs, err := e.client.Outputs(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch outputs: %w", err)
	}

	collector := &Collector{Dest: destDir, Move: move, Logger: e.logger}
	return collector.Collect(outputs)
}

// abort issues the single best-effort abort call. It runs on a fresh context
// because the caller's context is already cancelled.
func (e *Engine) abort(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	e.logger.Info("aborting workflow", "workflow_id", id)
	if err := e.client.Abort(ctx, id); err != nil {
		e.logger.Error("abort failed", "workflow_id", id, "error", err)
	}
	return &CancellationError{WorkflowID: id}
}
