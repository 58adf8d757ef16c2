package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/adocblocks/internal/ui/pretty"
	"github.com/yaklabco/adocblocks/pkg/analysis"
	"github.com/yaklabco/adocblocks/pkg/runner"
)

// Table layout constants for summary output.
// All tables use the same width for visual consistency.
const (
	tableWidth        = 90
	nameColWidth      = 30
	fileColWidth      = 60
	numColWidth       = 7
	warnColWidth      = 8
	maxNameLength     = 28
	maxFilePathLength = 58
)

// padRight pads a string to the given display width.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// padLeft pads a string to the given display width on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// SummaryReporter formats results as aggregated tables: diagnostics by
// kind, diagnostics by file, and blocks by context.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	report := analysis.Analyze(result, r.opts.analysisOptions())

	r.renderBlockTable(report.Blocks)

	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No issues found"))
		return 0, nil
	}

	r.renderKindTable(report.ByKind)
	fmt.Fprintln(r.bw)
	r.renderFileTable(report.ByFile)
	fmt.Fprintln(r.bw)
	r.renderTotals(report.Totals)

	return report.Totals.Issues, nil
}

func (r *SummaryReporter) separator() {
	fmt.Fprintln(r.bw, r.styles.Dim.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryReporter) renderBlockTable(blocks []analysis.BlockCount) {
	if len(blocks) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Blocks"))
	r.separator()
	fmt.Fprintf(r.bw, "%s %s\n",
		r.styles.Bold.Render(padRight("Context", nameColWidth)),
		r.styles.Bold.Render(padLeft("Count", numColWidth)),
	)
	r.separator()
	for _, b := range blocks {
		fmt.Fprintf(r.bw, "%s %s\n",
			padRight(b.Context, nameColWidth),
			padLeft(strconv.Itoa(b.Count), numColWidth),
		)
	}
	fmt.Fprintln(r.bw)
}

func (r *SummaryReporter) renderKindTable(kinds []analysis.KindAnalysis) {
	if len(kinds) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Diagnostics by kind"))
	r.separator()
	fmt.Fprintf(r.bw, "%s %s %s %s\n",
		r.styles.Bold.Render(padRight("Kind", nameColWidth)),
		r.styles.Bold.Render(padLeft("Count", numColWidth)),
		r.styles.Bold.Render(padLeft("Errors", numColWidth)),
		r.styles.Bold.Render(padLeft("Warnings", warnColWidth)),
	)
	r.separator()

	for _, kind := range kinds {
		name := kind.Kind
		if runewidth.StringWidth(name) > maxNameLength {
			name = runewidth.Truncate(name, maxNameLength+1, "…")
		}
		fmt.Fprintf(r.bw, "%s %s %s %s\n",
			r.styleRow(padRight(name, nameColWidth), kind.Errors, kind.Warnings),
			padLeft(strconv.Itoa(kind.Issues), numColWidth),
			padLeft(strconv.Itoa(kind.Errors), numColWidth),
			padLeft(strconv.Itoa(kind.Warnings), warnColWidth),
		)
	}
}

func (r *SummaryReporter) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Files"))
	r.separator()
	fmt.Fprintf(r.bw, "%s %s %s %s\n",
		r.styles.Bold.Render(padRight("File", fileColWidth)),
		r.styles.Bold.Render(padLeft("Count", numColWidth)),
		r.styles.Bold.Render(padLeft("Errors", numColWidth)),
		r.styles.Bold.Render(padLeft("Warnings", warnColWidth)),
	)
	r.separator()

	for _, file := range files {
		path := file.Path
		if runewidth.StringWidth(path) > maxFilePathLength {
			path = "…" + tail(path, maxFilePathLength-1)
		}
		fmt.Fprintf(r.bw, "%s %s %s %s\n",
			r.styleRow(padRight(path, fileColWidth), file.Errors, file.Warnings),
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
		)
	}
}

func (r *SummaryReporter) styleRow(cell string, errors, warnings int) string {
	switch {
	case errors > 0:
		return r.styles.Error.Render(cell)
	case warnings > 0:
		return r.styles.Warning.Render(cell)
	default:
		return cell
	}
}

// tail returns the last width display columns of s.
func tail(s string, width int) string {
	runes := []rune(s)
	used := 0
	i := len(runes)
	for i > 0 {
		w := runewidth.RuneWidth(runes[i-1])
		if used+w > width {
			break
		}
		used += w
		i--
	}
	return string(runes[i:])
}

func (r *SummaryReporter) renderTotals(totals analysis.Totals) {
	issueWord := "issues"
	if totals.Issues == 1 {
		issueWord = "issue"
	}
	head := fmt.Sprintf("%d %s", totals.Issues, issueWord)

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts, r.styles.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts, r.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if len(severityParts) > 0 {
		head += " (" + strings.Join(severityParts, ", ") + ")"
	}

	fileWord := "files"
	if totals.FilesWithIssues == 1 {
		fileWord = "file"
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Total: ")+fmt.Sprintf("%s in %d %s", head, totals.FilesWithIssues, fileWord))
}
