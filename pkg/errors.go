package volt

import "fmt"

// Severity classifies a Diagnostic.
type Severity int

const (
	// SeverityWarning is recoverable and never fails a build by itself.
	SeverityWarning Severity = iota
	// SeverityError is reported; the owning phase fails at its end but
	// keeps gathering further diagnostics.
	SeverityError
	// SeverityFatal is never used internally by the core; it's reserved
	// for the collaborator layer (e.g. a CLI-level I/O failure).
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is one (severity, file, line, column, message) record.
type Diagnostic struct {
	Severity Severity
	File     string
	Line     int
	Column   int
	Message  string
}

// String renders a Diagnostic as `<file>:<line>:<column>: <message>`.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line, d.Column, d.Message)
}

// DiagnosticSink is a bounded collector of Diagnostics. Producers call Push;
// a consumer later iterates to render or count them. It is single-owner per
// build and does no filtering or deduplication beyond the parser's own
// single-furthest-failure policy.
type DiagnosticSink struct {
	diagnostics []Diagnostic
}

// NewDiagnosticSink constructs an empty sink.
func NewDiagnosticSink() *DiagnosticSink {
	return &DiagnosticSink{}
}

// Push appends a diagnostic. Messages are owned by the sink once pushed.
func (s *DiagnosticSink) Push(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

// All returns every diagnostic pushed so far, in call order.
func (s *DiagnosticSink) All() []Diagnostic {
	return s.diagnostics
}

// Iterate calls fn for every diagnostic in push order.
func (s *DiagnosticSink) Iterate(fn func(Diagnostic)) {
	for _, d := range s.diagnostics {
		fn(d)
	}
}

// Count returns how many diagnostics of the given severity have been
// pushed.
func (s *DiagnosticSink) Count(sev Severity) int {
	n := 0
	for _, d := range s.diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any SeverityError or SeverityFatal diagnostic
// was pushed, the condition deciding a phase's pass/fail status.
func (s *DiagnosticSink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == SeverityError || d.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// Len reports the total number of diagnostics pushed, of any severity.
func (s *DiagnosticSink) Len() int {
	return len(s.diagnostics)
}
