package ddl

import "log"

// Severity is the diagnostic severity passed to a LogCallback
// (spec.md §6).
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LogCallback receives one diagnostic per call, on the calling
// goroutine, synchronously. The parser never panics into the
// callback. A callback shared across parser instances must be
// reentrant-safe (spec.md §5).
type LogCallback func(severity Severity, message string)

// DefaultLogCallback writes diagnostics through the standard log
// package, matching the teacher's ambient logging style
// (internal/runtime, main.go: log.Printf, no structured logging
// library). Used by the CLI driver and by tests that don't care about
// capturing diagnostics.
func DefaultLogCallback(severity Severity, message string) {
	log.Printf("[%s] %s", severity, message)
}
