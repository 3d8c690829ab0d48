// Package ddlharness provides a fixture-suite runner for exercising the
// parser's structural laws: that parse→export→parse is idempotent on
// the tree shape, and that inserting extra whitespace between tokens
// never changes the parsed result (inserted comments are not checked). It adapts the shape of
// internal/harness's Suite/Case/Runner pattern from executing DSL
// requests against a live service to executing OpenDDL source directly
// against the local parser.
package ddlharness

import (
	"fmt"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/multierr"

	"github.com/openddl/openddl-go/internal/ddl"
)

// Suite is a named group of fixture Cases.
type Suite struct {
	Name        string
	Description string
	Cases       []Case
}

// Case is one fixture: an OpenDDL source document and what is expected
// to happen when it is parsed.
type Case struct {
	Name        string
	Description string
	Source      string

	// ExpectParse is the outcome Parse() should report.
	ExpectParse bool
	// ExpectErrorKind, when non-nil, requires the first reported
	// parse error to carry this Kind.
	ExpectErrorKind *ddl.ErrorKind

	// CheckRoundTrip additionally verifies that Export(root), reparsed,
	// produces a structurally equivalent tree (spec.md §8). Only
	// meaningful when ExpectParse is true.
	CheckRoundTrip bool
	// CheckWhitespaceIrrelevance additionally verifies that the source
	// padded with extra spaces and tabs (see padWhitespace) reparses to
	// a structurally equivalent tree.
	CheckWhitespaceIrrelevance bool

	Skip       bool
	SkipReason string
}

// Result captures one case's outcome.
type Result struct {
	Case       string        `json:"case"`
	Passed     bool          `json:"passed"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
	Skipped    bool          `json:"skipped,omitempty"`
	SkipReason string        `json:"skip_reason,omitempty"`
}

// SuiteResult aggregates a suite's Results.
type SuiteResult struct {
	Name     string        `json:"name"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
	Results  []Result      `json:"results"`
}

// Err returns a single aggregated error built from every failed case's
// message, or nil if the suite passed in full.
func (r *SuiteResult) Err() error {
	var err error
	for _, res := range r.Results {
		if !res.Skipped && !res.Passed {
			err = multierr.Append(err, fmt.Errorf("%s: %s", res.Case, res.Error))
		}
	}
	return err
}

// Runner executes Suites against the local ddl parser.
type Runner struct {
	verbose  bool
	maxDepth int
}

// NewRunner creates a Runner with default parser settings.
func NewRunner() *Runner {
	return &Runner{maxDepth: ddl.DefaultMaxDepth}
}

// WithVerbose enables printing each case's outcome as it runs.
func (r *Runner) WithVerbose(v bool) *Runner {
	r.verbose = v
	return r
}

// WithMaxDepth overrides the nesting depth passed to every parser the
// Runner constructs.
func (r *Runner) WithMaxDepth(depth int) *Runner {
	r.maxDepth = depth
	return r
}

// Run executes every case in suite and returns the aggregated result.
func (r *Runner) Run(suite Suite) *SuiteResult {
	start := time.Now()
	result := &SuiteResult{Name: suite.Name}

	for _, tc := range suite.Cases {
		tcResult := r.runCase(tc)
		result.Results = append(result.Results, tcResult)
		switch {
		case tcResult.Skipped:
			result.Skipped++
		case tcResult.Passed:
			result.Passed++
		default:
			result.Failed++
		}
		if r.verbose {
			fmt.Printf("[%s] %s (%s)\n", passLabel(tcResult), tcResult.Case, tcResult.Duration)
		}
	}

	result.Duration = time.Since(start)
	return result
}

func passLabel(res Result) string {
	switch {
	case res.Skipped:
		return "SKIP"
	case res.Passed:
		return "PASS"
	default:
		return "FAIL"
	}
}

func (r *Runner) runCase(tc Case) Result {
	start := time.Now()
	result := Result{Case: tc.Name}

	if tc.Skip {
		result.Skipped = true
		result.SkipReason = tc.SkipReason
		return result
	}

	p := ddl.NewParserWithBuffer([]byte(tc.Source), false)
	p.SetMaxDepth(r.maxDepth)
	var firstErr *ddl.DdlError
	p.SetLogCallback(func(sev ddl.Severity, msg string) {
		if sev == ddl.SeverityError && firstErr == nil {
			firstErr = &ddl.DdlError{Message: msg}
		}
	})

	ok := p.Parse()
	result.Duration = time.Since(start)

	if ok != tc.ExpectParse {
		result.Error = fmt.Sprintf("expected Parse()=%v, got %v", tc.ExpectParse, ok)
		return result
	}

	if !ok {
		if tc.ExpectErrorKind != nil && (firstErr == nil || !errorMentionsKind(firstErr, *tc.ExpectErrorKind)) {
			result.Error = fmt.Sprintf("expected error kind %s", tc.ExpectErrorKind)
			return result
		}
		result.Passed = true
		return result
	}

	root := p.GetRoot()

	if tc.CheckRoundTrip {
		if err := checkRoundTrip(root, r.maxDepth); err != nil {
			result.Error = err.Error()
			return result
		}
	}

	if tc.CheckWhitespaceIrrelevance {
		if err := checkWhitespaceIrrelevance(tc.Source, root, r.maxDepth); err != nil {
			result.Error = err.Error()
			return result
		}
	}

	result.Passed = true
	return result
}

// errorMentionsKind is a best-effort check: the log callback only
// carries a formatted message, so kind matching is substring-based
// against the kind's name.
func errorMentionsKind(err *ddl.DdlError, kind ddl.ErrorKind) bool {
	return err != nil && containsString(err.Message, kind.String())
}

func containsString(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// treeEqualOpts ignores node identity and the non-owning parent
// back-reference: two independently parsed trees are never pointer-
// identical and comparing Parent would walk back up the tree on every
// node, so only the owned, exported shape is compared.
var treeEqualOpts = []cmp.Option{
	cmpopts.IgnoreFields(ddl.DdlNode{}, "ID", "Parent"),
}

// VerifyRoundTrip parses source, exports the result, and reparses the
// export, returning an error unless both parses succeed and the two
// trees are structurally equivalent. Exported for direct use by
// cmd/openddlctl's roundtrip subcommand, outside of a Suite.
func VerifyRoundTrip(source string, maxDepth int) error {
	p := ddl.NewParserWithBuffer([]byte(source), false)
	p.SetMaxDepth(maxDepth)
	if !p.Parse() {
		return fmt.Errorf("parse failed, nothing to round-trip")
	}
	return checkRoundTrip(p.GetRoot(), maxDepth)
}

// checkRoundTrip re-exports root and reparses the result, asserting
// the reparsed tree is structurally equivalent to root (spec.md §8).
func checkRoundTrip(root *ddl.DdlNode, maxDepth int) error {
	exported := ddl.Export(root)

	p2 := ddl.NewParserWithBuffer([]byte(exported), false)
	p2.SetMaxDepth(maxDepth)
	if !p2.Parse() {
		return fmt.Errorf("round-trip: reparsing exported source failed:\n%s", exported)
	}

	if diff := cmp.Diff(root, p2.GetRoot(), treeEqualOpts...); diff != "" {
		return fmt.Errorf("round-trip: reparsed tree differs (-original +reparsed):\n%s", diff)
	}
	return nil
}

// checkWhitespaceIrrelevance pads source with padWhitespace and
// reparses, asserting the padded source parses to a tree structurally
// equivalent to root.
func checkWhitespaceIrrelevance(source string, root *ddl.DdlNode, maxDepth int) error {
	padded := padWhitespace(source)

	p2 := ddl.NewParserWithBuffer([]byte(padded), false)
	p2.SetMaxDepth(maxDepth)
	if !p2.Parse() {
		return fmt.Errorf("whitespace-irrelevance: parsing padded source failed:\n%s", padded)
	}

	if diff := cmp.Diff(root, p2.GetRoot(), treeEqualOpts...); diff != "" {
		return fmt.Errorf("whitespace-irrelevance: padded tree differs (-original +padded):\n%s", diff)
	}
	return nil
}

// padWhitespace inserts " \t " after every space, tab, newline, ','
// and '{', leaving string literal spans untouched — mirroring
// internal/ddl/normalize.go's skipStringLiteralSpan, which treats
// string content as opaque for the structurally identical comment-
// blanking operation. Padding bytes that land inside a string literal
// would otherwise become part of its decoded value and falsely violate
// the whitespace-irrelevance law the padded reparse is meant to check.
func padWhitespace(source string) string {
	buf := []byte(source)
	n := len(buf)
	out := make([]byte, 0, n*2)
	for i := 0; i < n; {
		if buf[i] == '"' {
			start := i
			i++
			for i < n {
				if buf[i] == '\\' {
					i += 2
					continue
				}
				if buf[i] == '"' {
					i++
					break
				}
				i++
			}
			if i > n {
				i = n
			}
			out = append(out, buf[start:i]...)
			continue
		}
		out = append(out, buf[i])
		if buf[i] == ' ' || buf[i] == '\n' || buf[i] == '\t' || buf[i] == ',' || buf[i] == '{' {
			out = append(out, ' ', '\t', ' ')
		}
		i++
	}
	return string(out)
}
