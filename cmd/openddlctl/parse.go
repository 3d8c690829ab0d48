package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openddl/openddl-go/internal/ddl"
)

func parseCommand() *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an OpenDDL document and report the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0], maxDepth)
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 uses OPENDDL_MAX_DEPTH or the default)")
	return cmd
}

func runParse(path string, maxDepth int) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	p := ddl.NewParserWithBuffer(buf, true)
	p.SetMaxDepth(loadMaxDepth(maxDepth))
	p.SetLogCallback(ddl.DefaultLogCallback)

	errorCount := 0
	p.SetLogCallback(func(sev ddl.Severity, msg string) {
		if sev == ddl.SeverityError {
			errorCount++
		}
		ddl.DefaultLogCallback(sev, msg)
	})

	ok := p.Parse()
	nodeCount := countNodes(p.GetRoot())

	fmt.Printf("file: %s\n", path)
	fmt.Printf("success: %v\n", ok)
	fmt.Printf("nodes: %d\n", nodeCount)
	fmt.Printf("errors: %d\n", errorCount)

	if !ok {
		return fmt.Errorf("parse failed: %d diagnostic(s) reported", errorCount)
	}
	return nil
}

func countNodes(n *ddl.DdlNode) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, child := range n.Children {
		count += countNodes(child)
	}
	return count
}
