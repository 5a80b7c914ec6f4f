package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAbortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abort <workflow_id>",
		Short: "Request termination of a running workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if err := client.Abort(cmd.Context(), id); err != nil {
				return fmt.Errorf("abort workflow: %w", err)
			}

			fmt.Printf("Abort requested for workflow %s\n", id)
			return nil
		},
	}
}
