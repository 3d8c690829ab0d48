// Command openddlctl is a thin command-line driver over the openddl
// parser core, structured as a cobra command tree the way
// internal/cli's migrate-vocabulary and test-db-vocabulary commands
// are: one builder function per subcommand, flags bound to local vars,
// a RunE closing over them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openddl/openddl-go/internal/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "openddlctl",
		Short: "Parse, export, and verify OpenDDL documents",
	}

	root.AddCommand(
		parseCommand(),
		exportCommand(),
		roundtripCommand(),
		harnessCommand(),
	)
	return root
}

// loadMaxDepth resolves the nesting-depth cap from the environment the
// same way every other subcommand picks up ambient configuration
// (internal/config.Load), letting --max-depth override it per invocation.
func loadMaxDepth(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return config.Load().MaxDepth
}
