package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openddl/openddl-go/internal/ddl"
)

func exportCommand() *cobra.Command {
	var (
		maxDepth int
		output   string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Parse an OpenDDL document and re-render it in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], maxDepth, output)
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 uses OPENDDL_MAX_DEPTH or the default)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write exported text here instead of stdout")
	return cmd
}

func runExport(path string, maxDepth int, output string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	p := ddl.NewParserWithBuffer(buf, true)
	p.SetMaxDepth(loadMaxDepth(maxDepth))
	p.SetLogCallback(ddl.DefaultLogCallback)

	if !p.Parse() {
		return fmt.Errorf("parse failed for %s, nothing to export", path)
	}

	exported := ddl.Export(p.GetRoot())

	if output == "" {
		fmt.Print(exported)
		return nil
	}
	if err := os.WriteFile(output, []byte(exported), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}
