package diag

import "github.com/yaklabco/adocblocks/pkg/config"

// Builder helps construct Diagnostic values.
type Builder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a warning of the given kind at a line.
func NewDiagnostic(kind Kind, line int, message string) *Builder {
	return &Builder{
		diag: Diagnostic{
			Kind:     kind,
			Severity: config.SeverityWarning,
			Message:  message,
			Line:     line,
		},
	}
}

// WithSeverity sets the severity.
func (b *Builder) WithSeverity(s config.Severity) *Builder {
	b.diag.Severity = s
	return b
}

// WithPath sets the source path.
func (b *Builder) WithPath(path string) *Builder {
	b.diag.Path = path
	return b
}

// Build returns the constructed Diagnostic.
func (b *Builder) Build() Diagnostic {
	return b.diag
}
