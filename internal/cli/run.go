package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/me/methseq/internal/cromwell"
	"github.com/me/methseq/internal/engine"
	"github.com/me/methseq/internal/history"
	"github.com/me/methseq/internal/references"
	"github.com/me/methseq/internal/staging"
	"github.com/me/methseq/internal/workflows"
)

func newRunCmd() *cobra.Command {
	var inputsFile string
	var destDir string
	var referenceDir string
	var move bool
	var noSubmit bool
	var poll time.Duration

	cmd := &cobra.Command{
		Use:   "run <workflow>",
		Short: "Stage, submit, and monitor a workflow, then collect its outputs",
		Long: `Stage the named workflow into the destination directory, submit it to the
Cromwell server, poll until it terminates, and copy (or move) its declared
output files into the destination. Ctrl-C aborts the remote workflow.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			// Resolve against the registry before touching the filesystem.
			entry, err := workflows.Lookup(name)
			if err != nil {
				return err
			}

			inputs := map[string]any{}
			if inputsFile != "" {
				data, err := os.ReadFile(inputsFile)
				if err != nil {
					return fmt.Errorf("read inputs: %w", err)
				}
				if err := yaml.Unmarshal(data, &inputs); err != nil {
					return fmt.Errorf("parse inputs: %w", err)
				}
				logger.Debug("parsed inputs", "count", len(inputs))
			}

			if referenceDir != "" {
				ref, err := references.Collect(referenceDir)
				if err != nil {
					return err
				}
				inputs[name+".genome_files"] = ref.GenomeFiles
				inputs[name+".index_files_ct"] = ref.IndexFilesCT
				inputs[name+".index_files_ga"] = ref.IndexFilesGA
				logger.Info("reference directory validated",
					"dir", referenceDir,
					"genomes", len(ref.GenomeFiles),
				)
			}

			staged, err := staging.Stage(entry, inputs, destDir)
			if err != nil {
				return err
			}
			logger.Info("workflow staged",
				"definition", staged.Definition,
				"inputs", staged.Inputs,
			)
			if staged.Imports != "" {
				logger.Info("imports archive staged", "imports", staged.Imports)
			}

			if noSubmit {
				fmt.Printf("Workflow not submitted. Staged files are in %s\n", destDir)
				return nil
			}

			store, err := history.NewSQLiteStore(flagDB, logger)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			eng := engine.New(client, poll, logger)

			id, err := eng.Submit(ctx, staged)
			if err != nil {
				return err
			}
			fmt.Printf("Workflow submitted: %s\n", id)

			run := history.NewRun(name, id, flagHost, destDir)
			if err := store.CreateRun(ctx, run); err != nil {
				logger.Warn("run ledger update failed", "error", err)
			}

			logger.Info("monitoring workflow", "workflow_id", id, "poll", poll.String())
			fmt.Fprintln(os.Stderr, "Waiting for workflow to complete. Ctrl-C to abort.")

			status, watchErr := eng.Watch(ctx, id)
			recordTerminal(store, run.ID, status, watchErr)
			if watchErr != nil {
				return watchErr
			}

			// Collection runs on a fresh context: the workflow already
			// succeeded, a late interrupt must not abandon its files.
			if err := eng.Collect(context.Background(), id, destDir, move); err != nil {
				return err
			}
			fmt.Printf("Outputs collected in %s\n", destDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputsFile, "inputs", "i", "", "Input values file (YAML/JSON)")
	cmd.Flags().StringVarP(&destDir, "destination", "d", ".", "Directory receiving staged files and outputs")
	cmd.Flags().StringVar(&referenceDir, "reference", "", "Bismark reference-genome directory to validate and inject")
	cmd.Flags().BoolVar(&move, "move", false, "Move output files instead of copying them")
	cmd.Flags().BoolVar(&noSubmit, "no-submit", false, "Stage files only, do not contact the server")
	cmd.Flags().DurationVar(&poll, "poll", engine.DefaultPollInterval, "Interval between status checks")

	return cmd
}

// recordTerminal writes the workflow's final state to the run ledger.
// Ledger failures are reported but never change the command's outcome.
func recordTerminal(store history.Store, runID string, status cromwell.Status, watchErr error) {
	var state string
	var cancelErr *engine.CancellationError
	var termErr *engine.TerminalFailureError

	switch {
	case watchErr == nil:
		state = status.String()
	case errors.As(watchErr, &cancelErr):
		state = cromwell.StatusAborted.String()
	case errors.As(watchErr, &termErr):
		state = termErr.Status.String()
	default:
		// Monitoring failed without a terminal status; leave the entry as
		// Submitted.
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.CompleteRun(ctx, runID, state, time.Now().UTC()); err != nil {
		logger.Warn("run ledger update failed", "error", err)
	}
}
