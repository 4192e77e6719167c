// Package cli implements the metricline command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is reported by "metricline --version".
var Version = "0.1.0"

// NewRootCommand builds the metricline root command and its subcommands.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "metricline",
		Short: "Encode metric observations into ingestion line protocol",
		Long: `metricline turns counters, gauges and summaries into lines of the metrics
ingestion line protocol, applying key and dimension normalization, escaping
and the protocol limits.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate(fmt.Sprintf("metricline version %s\n", Version))
	root.AddCommand(newEncodeCommand())

	return root
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}
