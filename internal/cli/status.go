package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <workflow_id>",
		Short: "Check the status of a submitted workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			status, err := client.Status(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get status: %w", err)
			}

			fmt.Printf("Workflow: %s\n", id)
			fmt.Printf("  Status: %s\n", status)
			return nil
		},
	}
}
