package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/methseq/internal/engine"
)

func newCollectCmd() *cobra.Command {
	var destDir string
	var move bool

	cmd := &cobra.Command{
		Use:   "collect <workflow_id>",
		Short: "Collect the outputs of a succeeded workflow into a directory",
		Long: `Fetch the declared outputs of an already-succeeded workflow and copy (or
move) the files into the destination directory. Useful to re-run collection
after fixing filesystem visibility, or to collect a workflow submitted
elsewhere.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if err := os.MkdirAll(destDir, 0o755); err != nil {
				return fmt.Errorf("create destination %s: %w", destDir, err)
			}

			eng := engine.New(client, 0, logger)
			if err := eng.Collect(cmd.Context(), id, destDir, move); err != nil {
				return err
			}

			fmt.Printf("Outputs collected in %s\n", destDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&destDir, "destination", "d", ".", "Directory receiving the output files")
	cmd.Flags().BoolVar(&move, "move", false, "Move output files instead of copying them")

	return cmd
}
