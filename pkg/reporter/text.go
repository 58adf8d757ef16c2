package reporter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/adocblocks/internal/ui/pretty"
	"github.com/yaklabco/adocblocks/pkg/analysis"
	"github.com/yaklabco/adocblocks/pkg/runner"
)

// TextReporter formats diagnostics as styled terminal output, grouped by
// file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int

	for _, file := range result.Files {
		path := analysis.MakeRelativePath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if len(file.Diagnostics) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Diagnostics)))

		var lines [][]byte
		if r.opts.ShowContext {
			lines = bytes.Split(file.Source, []byte("\n"))
		}

		for _, d := range file.Diagnostics {
			d.Path = path
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(d, sourceLine(lines, d.Line)))
			total++
		}

		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// sourceLine returns the 1-based line from lines, or "" when out of range.
func sourceLine(lines [][]byte, number int) string {
	if number < 1 || number > len(lines) {
		return ""
	}
	return string(bytes.TrimRight(lines[number-1], "\r"))
}
