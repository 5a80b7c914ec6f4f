package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/methseq/internal/cromwell"
	"github.com/me/methseq/internal/history"
	"github.com/me/methseq/internal/logging"
)

var (
	flagHost      string
	flagDB        string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *cromwell.Client
)

// defaultHost returns the default Cromwell URL, checking METHSEQ_HOST first.
func defaultHost() string {
	if h := os.Getenv("METHSEQ_HOST"); h != "" {
		return h
	}
	return cromwell.DefaultHost
}

// defaultDB returns the run-ledger path, checking METHSEQ_DB first.
func defaultDB() string {
	if p := os.Getenv("METHSEQ_DB"); p != "" {
		return p
	}
	return history.DefaultPath()
}

// NewRootCmd creates the root cobra command for the methseq CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "methseq",
		Short: "methseq — bisulfite-sequencing workflows on Cromwell",
		Long:  "methseq stages, submits, and monitors methylation-sequencing workflows on a Cromwell server and collects their outputs.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(flagLogLevel, flagLogFormat)
			client = cromwell.NewClient(flagHost, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagHost, "host", defaultHost(), "Cromwell server URL (or METHSEQ_HOST env)")
	root.PersistentFlags().StringVar(&flagDB, "db", defaultDB(), "Run ledger database path (or METHSEQ_DB env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newStatusCmd(),
		newOutputsCmd(),
		newAbortCmd(),
		newCollectCmd(),
		newWorkflowsCmd(),
		newRunsCmd(),
		newReferencesCmd(),
	)

	return root
}
