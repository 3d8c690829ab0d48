package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openddl/openddl-go/internal/ddlharness"
)

func roundtripCommand() *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "roundtrip <file>",
		Short: "Verify that parse -> export -> parse produces an equivalent tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoundtrip(args[0], maxDepth)
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 uses OPENDDL_MAX_DEPTH or the default)")
	return cmd
}

func runRoundtrip(path string, maxDepth int) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := ddlharness.VerifyRoundTrip(string(buf), loadMaxDepth(maxDepth)); err != nil {
		return fmt.Errorf("round-trip check failed for %s: %w", path, err)
	}

	fmt.Printf("%s: round-trip OK\n", path)
	return nil
}
