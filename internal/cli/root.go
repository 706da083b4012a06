package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/otobench/otobench/pkg/buildinfo"
)

// Execute runs the otobench CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (gen,
// bench, print, viz), configures logging based on the --verbose
// flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all
// commands via loggerFromContext.
func Execute(ctx context.Context) error {
	return newRoot().ExecuteContext(ctx)
}

// newRoot builds the command tree.
func newRoot() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "otobench",
		Short:        "otobench benchmarks online topological order algorithms",
		Long:         `otobench is a testbed for algorithms that maintain a topological order of a DAG under edge insertions. It generates random graphs, drives the MNR, PK and AHRSZ algorithms over them, validates the maintained orders, and reports work metrics.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newPrintCmd())
	root.AddCommand(newVizCmd())

	return root
}
