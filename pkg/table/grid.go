package table

import (
	"strings"

	"github.com/yaklabco/adocblocks/pkg/adast"
	"github.com/yaklabco/adocblocks/pkg/diag"
)

// rawCell is a cell as split from the source, before its content is
// interpreted. spec is nil for CSV and DSV cells.
type rawCell struct {
	text   string
	spec   *cellSpec
	column *adast.Column
	line   int
}

// grid accumulates cells into rows while the table source is scanned.
type grid struct {
	mode      string
	delimiter string
	sink      *diag.Sink

	columns  []*adast.Column
	colcount int

	buffer    strings.Builder
	cellspecs []*cellSpec
	cellOpen  bool

	activeRowspans []int
	columnVisits   int
	currentRow     []*rawCell
	rows           [][]*rawCell
	linenum        int

	firstLine int
	line      int
	markLine  int
}

func newGrid(mode, delimiter string, columns []*adast.Column, firstLine int, sink *diag.Sink) *grid {
	colcount := -1
	if len(columns) > 0 {
		colcount = len(columns)
	}
	return &grid{
		mode:           mode,
		delimiter:      delimiter,
		sink:           sink,
		columns:        columns,
		colcount:       colcount,
		activeRowspans: []int{0},
		linenum:        -1,
		firstLine:      firstLine,
		line:           firstLine,
		markLine:       firstLine,
	}
}

func (g *grid) pushCellspec(spec *cellSpec) {
	if spec == nil {
		spec = &cellSpec{}
	}
	g.cellspecs = append(g.cellspecs, spec)
}

func (g *grid) takeCellspec() (*cellSpec, bool) {
	if len(g.cellspecs) == 0 {
		return nil, false
	}
	spec := g.cellspecs[0]
	g.cellspecs = g.cellspecs[1:]
	return spec, true
}

// closeOpenCell queues the spec for the next cell, closes the open cell
// at a line boundary and advances the logical line counter.
func (g *grid) closeOpenCell(next *cellSpec) {
	g.pushCellspec(next)
	if g.cellOpen {
		g.closeCell(true)
	}
	g.linenum++
}

// hasUnclosedQuotes reports whether the buffer, plus appended text, holds a
// CSV value whose opening quote is not yet closed.
func (g *grid) hasUnclosedQuotes(appended string) bool {
	record := strings.TrimSpace(g.buffer.String() + appended)
	const quote = `"`
	if record == quote {
		return true
	}
	if !strings.HasPrefix(record, quote) {
		return false
	}

	trailing := strings.HasSuffix(record, quote)
	if (trailing && strings.HasSuffix(record, quote+quote)) || strings.HasPrefix(record, quote+quote) {
		record = strings.ReplaceAll(record, quote+quote, "")
		return strings.HasPrefix(record, quote) && !strings.HasSuffix(record, quote)
	}
	return !trailing
}

// closeCell turns the buffer into one or more cells (more when the spec
// repeats) and closes the row once it is full. eol is true when the cell
// ends at a line boundary.
func (g *grid) closeCell(eol bool) {
	var (
		text   string
		spec   *cellSpec
		repeat = 1
	)

	if g.mode == FormatPSV {
		text = g.buffer.String()
		if taken, ok := g.takeCellspec(); ok {
			spec = taken
			if spec.repeat > 0 {
				repeat = spec.repeat
			}
		} else {
			g.sink.Error(diag.StructuralAmbiguity, g.firstLine,
				"table missing leading separator; recovering automatically")
			spec = &cellSpec{}
		}
	} else {
		text = g.unquote(strings.TrimSpace(g.buffer.String()))
	}
	g.buffer.Reset()

	for i := 1; i <= repeat; i++ {
		var column *adast.Column
		if g.colcount == -1 {
			for range spec.span() {
				col := newColumn(len(g.columns) + 1)
				col.Implicit = true
				g.columns = append(g.columns, col)
			}
			column = g.columns[len(g.columns)-spec.span()]
		} else {
			if len(g.currentRow) >= len(g.columns) {
				g.sink.Error(diag.ConstraintViolation, g.markLine,
					"dropping cell because it exceeds specified number of columns")
				g.cellOpen = false
				return
			}
			column = g.columns[len(g.currentRow)]
		}

		cell := &rawCell{text: text, spec: spec, column: column, line: g.markLine}
		g.markLine = g.line

		if spec != nil && spec.rowspan > 1 {
			g.activateRowspan(spec.rowspan, spec.span())
		}
		g.columnVisits += spec.span()
		g.currentRow = append(g.currentRow, cell)

		status := g.endOfRow()
		if status > -1 && (g.colcount != -1 || g.linenum > 0 || (eol && i == repeat)) {
			if status > 0 {
				g.sink.Error(diag.ConstraintViolation, cell.line,
					"dropping cell because it exceeds specified number of columns")
				g.closeRow(true)
			} else {
				g.closeRow(false)
			}
		}
	}

	g.cellOpen = false
}

// unquote strips CSV quoting and collapses doubled quotes. A cell that
// opens a quote without closing it is emptied.
func (g *grid) unquote(text string) string {
	if g.mode != FormatCSV || text == "" || !strings.Contains(text, `"`) {
		return text
	}
	if strings.HasPrefix(text, `"`) {
		if len(text) < 2 || !strings.HasSuffix(text, `"`) {
			g.sink.Error(diag.MalformedQuoting, g.line,
				"unclosed quote in CSV data; setting cell to empty")
			return ""
		}
		return squeezeQuotes(strings.TrimSpace(text[1 : len(text)-1]))
	}
	return squeezeQuotes(text)
}

// squeezeQuotes collapses every run of double quotes to a single quote.
func squeezeQuotes(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	prevQuote := false
	for _, r := range text {
		if r == '"' {
			if prevQuote {
				continue
			}
			prevQuote = true
		} else {
			prevQuote = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (g *grid) closeRow(drop bool) {
	if !drop {
		g.rows = append(g.rows, g.currentRow)
	}
	if g.colcount == -1 {
		g.colcount = g.columnVisits
	}
	g.columnVisits = 0
	g.currentRow = nil

	g.activeRowspans = g.activeRowspans[1:]
	if len(g.activeRowspans) == 0 {
		g.activeRowspans = append(g.activeRowspans, 0)
	}
}

// activateRowspan reserves colspan slots in each of the next rowspan-1 rows.
func (g *grid) activateRowspan(rowspan, colspan int) {
	for i := 1; i < rowspan; i++ {
		for len(g.activeRowspans) <= i {
			g.activeRowspans = append(g.activeRowspans, 0)
		}
		g.activeRowspans[i] += colspan
	}
}

// endOfRow compares the slots used in the current row with the column
// count: -1 when there is room, 0 when full, 1 when overfull. Before the
// column count is known every cell may end the row.
func (g *grid) endOfRow() int {
	if g.colcount == -1 {
		return 0
	}
	visits := g.columnVisits + g.activeRowspans[0]
	switch {
	case visits < g.colcount:
		return -1
	case visits == g.colcount:
		return 0
	default:
		return 1
	}
}

// closeTable reports cells left in an incomplete final row.
func (g *grid) closeTable() {
	if g.columnVisits == 0 {
		return
	}
	g.sink.Error(diag.ConstraintViolation, g.markLine,
		"dropping cells from incomplete row detected end of table")
}
