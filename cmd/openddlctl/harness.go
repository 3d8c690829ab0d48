package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/openddl/openddl-go/internal/config"
	"github.com/openddl/openddl-go/internal/ddlharness"
	"github.com/openddl/openddl-go/internal/ddlstore"
)

func harnessCommand() *cobra.Command {
	var (
		maxDepth   int
		roundTrip  bool
		whitespace bool
		record     bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "harness <file>...",
		Short: "Run one or more OpenDDL documents as an ad-hoc fixture suite",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarness(args, maxDepth, roundTrip, whitespace, record, verbose)
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 uses OPENDDL_MAX_DEPTH or the default)")
	cmd.Flags().BoolVar(&roundTrip, "round-trip", true, "verify parse -> export -> parse equivalence")
	cmd.Flags().BoolVar(&whitespace, "whitespace", false, "verify whitespace-padding irrelevance (slower)")
	cmd.Flags().BoolVar(&record, "record", false, "persist a session row per file via OPENDDL_STORE_TYPE")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print each case's outcome as it runs")
	return cmd
}

func runHarness(paths []string, maxDepth int, roundTrip, whitespace, record, verbose bool) error {
	cases := make([]ddlharness.Case, 0, len(paths))
	for _, path := range paths {
		buf, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		cases = append(cases, ddlharness.Case{
			Name:                       filepath.Base(path),
			Source:                     string(buf),
			ExpectParse:                true,
			CheckRoundTrip:             roundTrip,
			CheckWhitespaceIrrelevance: whitespace,
		})
	}

	runner := ddlharness.NewRunner().WithVerbose(verbose).WithMaxDepth(loadMaxDepth(maxDepth))
	result := runner.Run(ddlharness.Suite{Name: "ad-hoc", Cases: cases})

	fmt.Printf("passed=%d failed=%d skipped=%d duration=%s\n",
		result.Passed, result.Failed, result.Skipped, result.Duration)

	if record {
		if err := recordSessions(paths, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record sessions: %v\n", err)
		}
	}

	if err := result.Err(); err != nil {
		return err
	}
	return nil
}

// recordSessions persists one ddlstore.Session per file, mirroring
// how the parse outcome would be logged for later audit.
func recordSessions(paths []string, result *ddlharness.SuiteResult) error {
	cfg := config.Load()
	repo, err := ddlstore.New(ddlstore.Config{
		Type:             storeTypeFor(cfg.Store),
		ConnectionString: cfg.ConnectionString,
	})
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := context.Background()
	for i, res := range result.Results {
		if i >= len(paths) {
			break
		}
		s := ddlstore.Session{
			ID:         uuid.New(),
			FileName:   paths[i],
			Success:    res.Passed,
			FirstError: res.Error,
			ParsedAt:   time.Now(),
		}
		if err := repo.RecordSession(ctx, s); err != nil {
			return fmt.Errorf("recording session for %s: %w", paths[i], err)
		}
	}
	return nil
}

func storeTypeFor(s config.StoreType) ddlstore.Type {
	if s == config.PostgreSQLStore {
		return ddlstore.PostgreSQLRepository
	}
	return ddlstore.MockRepository
}
