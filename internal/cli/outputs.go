package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOutputsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outputs <workflow_id>",
		Short: "List the declared outputs of a succeeded workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			outputs, err := client.Outputs(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get outputs: %w", err)
			}

			if len(outputs) == 0 {
				fmt.Println("No outputs declared.")
				return nil
			}
			for _, output := range outputs {
				fmt.Printf("%s:\n", output.Name)
				for _, file := range output.Value.Flatten() {
					fmt.Printf("  %s\n", file)
				}
			}
			return nil
		},
	}
}
