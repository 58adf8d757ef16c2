package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/adocblocks/internal/ui/pretty"
	"github.com/yaklabco/adocblocks/pkg/analysis"
	"github.com/yaklabco/adocblocks/pkg/runner"
)

// TreeReporter prints the block outline of every file followed by its
// diagnostics.
type TreeReporter struct {
	opts   Options
	styles *pretty.Styles
	tree   *pretty.TreeFormatter
	bw     *bufio.Writer
}

// NewTreeReporter creates a new tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	width := opts.Width
	if width == 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}
	return &TreeReporter{
		opts:   opts,
		styles: styles,
		tree:   pretty.NewTreeFormatter(styles, width),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TreeReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var total int
	for i, file := range result.Files {
		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		path := analysis.MakeRelativePath(file.Path, r.opts.WorkingDir)
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Diagnostics)))

		if file.Error != nil {
			fmt.Fprintln(r.bw, r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}

		fmt.Fprint(r.bw, r.tree.Format(file.Document))
		for _, d := range file.Diagnostics {
			d.Path = path
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(d, ""))
			total++
		}
	}

	return total, nil
}
