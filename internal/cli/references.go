package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/methseq/internal/references"
)

func newReferencesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "references <directory>",
		Short: "Validate a Bismark reference-genome directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]

			ref, err := references.Collect(dir)
			if err != nil {
				return err
			}

			fmt.Printf("Reference directory: %s\n", dir)
			fmt.Printf("  Genome files:   %d\n", len(ref.GenomeFiles))
			for _, g := range ref.GenomeFiles {
				fmt.Printf("    %s\n", g)
			}
			fmt.Printf("  CT index files: %d\n", len(ref.IndexFilesCT))
			fmt.Printf("  GA index files: %d\n", len(ref.IndexFilesGA))
			return nil
		},
	}
}
