package runner

import (
	"github.com/yaklabco/adocblocks/pkg/adast"
	"github.com/yaklabco/adocblocks/pkg/config"
	"github.com/yaklabco/adocblocks/pkg/diag"
	"github.com/yaklabco/adocblocks/pkg/fsutil"
)

// FileOutcome is the parse of one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Encoding is the byte encoding the file was stored in.
	Encoding fsutil.Encoding

	// Source is the decoded content. Nil when Error is set.
	Source []byte

	// Document is the recognized block tree. Nil when Error is set.
	Document *adast.Block

	// Diagnostics are the recovered problems, in source order.
	Diagnostics []diag.Diagnostic

	// Error is set if the file could not be read.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files successfully parsed.
	FilesParsed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// Blocks is the number of blocks recognized across all files,
	// document roots excluded.
	Blocks int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// BySeverity maps severity levels to counts.
	BySeverity map[config.Severity]int

	// ByKind maps diagnostic kinds to counts.
	ByKind map[diag.Kind]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to read or any diagnostic has
// error severity.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.BySeverity[config.SeverityError] > 0
}

// HasWarnings reports whether any diagnostic has warning severity.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.BySeverity[config.SeverityWarning] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{
		BySeverity: make(map[config.Severity]int),
		ByKind:     make(map[diag.Kind]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	r.Stats.FilesParsed++

	if outcome.Document != nil {
		//nolint:errcheck // The counting walk never fails.
		_ = adast.Walk(outcome.Document, func(blk *adast.Block) error {
			if blk != outcome.Document {
				r.Stats.Blocks++
			}
			return nil
		})
	}

	if len(outcome.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.DiagnosticsTotal += len(outcome.Diagnostics)
	for _, d := range outcome.Diagnostics {
		severity := d.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		r.Stats.BySeverity[severity]++
		r.Stats.ByKind[d.Kind]++
	}
}
