// Package diag defines the diagnostics emitted while recognizing blocks.
//
// Malformed markup never aborts a parse. Each problem is recovered locally
// and recorded as a Diagnostic in an ordered Sink.
package diag

import (
	"fmt"

	"github.com/yaklabco/adocblocks/pkg/config"
)

// Kind classifies the recovery that produced a diagnostic.
type Kind string

// Diagnostic kinds.
const (
	// StructuralAmbiguity is resolved by a documented tie-break.
	StructuralAmbiguity Kind = "structural-ambiguity"

	// ConstraintViolation truncates a row or table.
	ConstraintViolation Kind = "constraint-violation"

	// MalformedQuoting empties a cell.
	MalformedQuoting Kind = "malformed-quoting"

	// SequenceViolation reports an out-of-order ordinal.
	SequenceViolation Kind = "sequence-violation"

	// UnterminatedContainer closes a block at the end of input.
	UnterminatedContainer Kind = "unterminated-container"

	// InvalidAttribute reports an unusable attribute value.
	InvalidAttribute Kind = "invalid-attribute"
)

// Diagnostic is a single recovered problem.
type Diagnostic struct {
	// Kind is the taxonomy entry.
	Kind Kind

	// Severity is error, warning or info.
	Severity config.Severity

	// Message is the human-readable description.
	Message string

	// Path is the source file, when known.
	Path string

	// Line is the 1-based source line.
	Line int
}

// String formats the diagnostic as "path: line N: message".
func (d Diagnostic) String() string {
	path := d.Path
	if path == "" {
		path = "<stdin>"
	}
	return fmt.Sprintf("%s: line %d: %s", path, d.Line, d.Message)
}
