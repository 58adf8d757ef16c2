package diag

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/adocblocks/pkg/config"
)

// Sink collects diagnostics in the order they are reported.
// A Sink belongs to one document parse and is shared with its nested parses.
type Sink struct {
	path   string
	logger *log.Logger
	items  []Diagnostic
}

// NewSink creates a sink for the given source path. The logger may be nil;
// when set, every diagnostic is echoed at debug level.
func NewSink(path string, logger *log.Logger) *Sink {
	return &Sink{path: path, logger: logger}
}

// Add appends a diagnostic, filling in the sink path when missing.
func (s *Sink) Add(d Diagnostic) {
	if d.Path == "" {
		d.Path = s.path
	}
	s.items = append(s.items, d)

	if s.logger != nil {
		s.logger.Debug("diagnostic",
			"kind", d.Kind,
			"severity", d.Severity,
			"line", d.Line,
			"message", d.Message,
		)
	}
}

// Warn records a warning.
func (s *Sink) Warn(kind Kind, line int, format string, args ...any) {
	s.Add(NewDiagnostic(kind, line, fmt.Sprintf(format, args...)).Build())
}

// Error records an error.
func (s *Sink) Error(kind Kind, line int, format string, args ...any) {
	s.Add(NewDiagnostic(kind, line, fmt.Sprintf(format, args...)).
		WithSeverity(config.SeverityError).
		Build())
}

// Diagnostics returns the collected diagnostics in report order.
func (s *Sink) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of collected diagnostics.
func (s *Sink) Len() int {
	return len(s.items)
}

// Count returns the number of diagnostics with the given severity.
func (s *Sink) Count(sev config.Severity) int {
	n := 0
	for _, d := range s.items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Messages returns the message of every diagnostic, for assertions.
func (s *Sink) Messages() []string {
	out := make([]string, len(s.items))
	for i, d := range s.items {
		out[i] = d.Message
	}
	return out
}
