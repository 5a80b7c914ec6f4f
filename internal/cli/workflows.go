package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/methseq/internal/workflows"
)

func newWorkflowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workflows",
		Short: "List the workflows this tool can submit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range workflows.Names() {
				entry, err := workflows.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Printf("%s\n", entry.Name)
				fmt.Printf("  Inputs file: %s\n", entry.InputsFile)
				if len(entry.Imports) > 0 {
					fmt.Printf("  Imports:     %s\n", strings.Join(entry.Imports, ", "))
				}
			}
			return nil
		},
	}
}
