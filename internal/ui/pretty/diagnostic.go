package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/adocblocks/pkg/config"
	"github.com/yaklabco/adocblocks/pkg/diag"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
// sourceLine is echoed below the message when non-empty.
func (s *Styles) FormatDiagnostic(d diag.Diagnostic, sourceLine string) string {
	var builder strings.Builder

	path := d.Path
	if path == "" {
		path = "<stdin>"
	}
	location := s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d", d.Line))

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(d.Severity),
		s.Message.Render(d.Message),
		s.Kind.Render("("+string(d.Kind)+")"),
	))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats a source line aligned under a diagnostic.
func (s *Styles) FormatSourceContext(line string) string {
	const indent = "        "
	return indent + s.SourceLine.Render(strings.TrimRight(line, " \t")) + "\n"
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch issueCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 issue)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
