package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/adocblocks/pkg/adast"
	"github.com/yaklabco/adocblocks/pkg/analysis"
	"github.com/yaklabco/adocblocks/pkg/runner"
)

// Output is the top-level structure shared by the json and yaml reporters.
type Output struct {
	Version string                  `json:"version" yaml:"version"`
	Files   []FileResult            `json:"files" yaml:"files"`
	ByKind  []analysis.KindAnalysis `json:"byKind,omitempty" yaml:"by_kind,omitempty"`
	Blocks  []analysis.BlockCount   `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Summary analysis.Totals         `json:"summary" yaml:"summary"`
}

// FileResult represents a single file's results.
type FileResult struct {
	Path        string             `json:"path" yaml:"path"`
	Encoding    string             `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Diagnostics []DiagnosticResult `json:"diagnostics" yaml:"diagnostics"`
	Document    *adast.Snapshot    `json:"document,omitempty" yaml:"document,omitempty"`
	Error       string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// DiagnosticResult represents a single diagnostic.
type DiagnosticResult struct {
	Kind     string `json:"kind" yaml:"kind"`
	Severity string `json:"severity" yaml:"severity"`
	Message  string `json:"message" yaml:"message"`
	Line     int    `json:"line" yaml:"line"`
}

// buildOutput assembles the serializable view of result.
func buildOutput(result *runner.Result, opts Options) *Output {
	report := analysis.Analyze(result, opts.analysisOptions())

	output := &Output{
		Version: report.Version,
		Files:   make([]FileResult, 0),
		ByKind:  report.ByKind,
		Blocks:  report.Blocks,
		Summary: report.Totals,
	}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		fileResult := FileResult{
			Path:        analysis.MakeRelativePath(file.Path, opts.WorkingDir),
			Encoding:    string(file.Encoding),
			Diagnostics: make([]DiagnosticResult, 0, len(file.Diagnostics)),
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		for _, d := range file.Diagnostics {
			severity := string(d.Severity)
			if severity == "" {
				severity = "warning"
			}
			fileResult.Diagnostics = append(fileResult.Diagnostics, DiagnosticResult{
				Kind:     string(d.Kind),
				Severity: severity,
				Message:  d.Message,
				Line:     d.Line,
			})
		}
		if opts.IncludeDocuments && file.Document != nil {
			fileResult.Document = adast.NewSnapshot(file.Document)
		}
		output.Files = append(output.Files, fileResult)
	}

	return output
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildOutput(result, r.opts)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Issues, nil
}
