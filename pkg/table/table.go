// Package table decomposes the content of a table block into columns, rows
// and cells. It understands PSV (pipe), DSV (colon), CSV and TSV data,
// cell specs with spans and repeats, implicit column counts, implicit
// header rows and column widths.
package table

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/adocblocks/pkg/adast"
	"github.com/yaklabco/adocblocks/pkg/diag"
	"github.com/yaklabco/adocblocks/pkg/reader"
)

// CellParser parses the text of an AsciiDoc cell as a nested document and
// returns its top-level blocks. firstLine is the source line of the first
// content line.
type CellParser func(lines []string, firstLine int) []*adast.Block

// Options configures Parse.
type Options struct {
	// Nested is true inside an AsciiDoc cell, where PSV uses "!" as its
	// separator.
	Nested bool

	// NoImplicitHeader disables promoting the first row to a header.
	NoImplicitHeader bool

	// ParseCell handles AsciiDoc cells. When nil their text is kept as is.
	ParseCell CellParser

	// Sink receives diagnostics. Required.
	Sink *diag.Sink

	// Logger receives debug traces. May be nil.
	Logger *log.Logger
}

// Parse fills tbl, a KindTable block whose Attributes are already set,
// from the lines between its fences. Comment lines must already be removed.
func Parse(tbl *adast.Block, lines []reader.Line, opts Options) {
	if tbl.Table == nil {
		tbl.Table = &adast.TableAttrs{}
	}
	firstLine := tbl.Line + 1
	if len(lines) > 0 {
		firstLine = lines[0].Number
	}

	var columns []*adast.Column
	explicitCols := false
	if cols, ok := tbl.Attributes["cols"]; ok {
		if specs := ParseColspecs(cols); len(specs) > 0 {
			columns = createColumns(specs)
			explicitCols = true
		}
	}

	declared, mode, delimiter := resolveFormat(tbl.Attributes, opts.Nested, func(format string) {
		opts.Sink.Error(diag.InvalidAttribute, tbl.Line, "illegal table format: %s", format)
	})
	tbl.Table.Format = declared
	tbl.Table.Separator = delimiter

	cur := reader.New(lines)
	skipped := cur.SkipBlank()
	if line, ok := cur.Peek(); ok {
		firstLine = line.Number
	}

	g := newGrid(mode, delimiter, columns, firstLine, opts.Sink)
	implicitHeader := skipped == 0 && !opts.NoImplicitHeader &&
		!tbl.HasOption("header") && !tbl.HasOption("noheader")
	scan(cur, g, &implicitHeader)
	g.closeTable()

	tbl.Table.Columns = g.columns
	if !explicitCols && len(g.columns) > 0 {
		assignWidths(g.columns, 0, nil)
	}

	rows := g.rows
	tbl.SetAttr("rowcount", strconv.Itoa(len(rows)))
	tbl.SetAttr("colcount", strconv.Itoa(len(g.columns)))

	hasHeader := implicitHeader || tbl.HasOption("header")
	if implicitHeader {
		tbl.SetOption("header")
	}
	partition(tbl, rows, hasHeader, opts)

	if opts.Logger != nil {
		opts.Logger.Debug("table parsed",
			"line", tbl.Line,
			"format", declared,
			"columns", len(g.columns),
			"rows", len(rows),
		)
	}
}

// scan feeds every line to the grid, tracking whether the first row can
// still become an implicit header. An implicit header needs the first line
// to be followed by one or more blank lines and then a new cell, and its
// first cell must not span columns.
func scan(cur *reader.Cursor, g *grid, implicitHeader *bool) {
	loopIdx := -1
	boundary := 0

	cancelHeader := func() {
		*implicitHeader = false
		boundary = 0
	}

	for {
		line, ok := cur.Read()
		if !ok {
			return
		}
		g.line = line.Number
		loopIdx++
		beyondFirst := loopIdx > 0

		text := line.Text
		hasText := true

		switch {
		case beyondFirst && line.IsBlank():
			hasText = false
			if boundary > 0 {
				boundary++
			}
		case g.mode == FormatPSV:
			if strings.HasPrefix(text, g.delimiter) {
				text = text[len(g.delimiter):]
				g.closeOpenCell(&cellSpec{})
				boundary = 0
			} else if spec, rest, found := parseCellspecStart(text, g.delimiter); found {
				text = rest
				g.closeOpenCell(spec)
				boundary = 0
				if !beyondFirst && spec.span() > 1 {
					cancelHeader()
				}
			} else if boundary > 0 && boundary == loopIdx {
				cancelHeader()
			}
		}

		if !beyondFirst && *implicitHeader {
			if next, ok := cur.Peek(); ok && next.IsBlank() {
				boundary = 1
			} else {
				cancelHeader()
			}
		}

		if !hasText && g.mode != FormatPSV && !g.cellOpen && g.buffer.Len() == 0 {
			continue
		}

		if consumeLine(g, text, hasText) && loopIdx == 0 && boundary > 0 {
			cancelHeader()
		}

		if g.cellOpen {
			if !cur.HasMore() {
				g.closeCell(true)
			}
		} else {
			g.closeOpenCell(&cellSpec{})
		}
	}
}

// consumeLine splits one line at its delimiters. It reports whether the
// line ended inside an unclosed CSV quote.
func consumeLine(g *grid, text string, hasText bool) bool {
	for {
		if hasText {
			if idx := strings.Index(text, g.delimiter); idx >= 0 {
				pre, post := text[:idx], text[idx+len(g.delimiter):]

				switch g.mode {
				case FormatCSV:
					if g.hasUnclosedQuotes(pre) {
						g.buffer.WriteString(pre)
						g.buffer.WriteString(g.delimiter)
						if text = post; text == "" {
							return false
						}
						continue
					}
					g.buffer.WriteString(pre)
				default:
					if strings.HasSuffix(pre, `\`) {
						g.buffer.WriteString(pre[:len(pre)-1])
						g.buffer.WriteString(g.delimiter)
						if text = post; text == "" {
							g.buffer.WriteByte('\n')
							g.cellOpen = true
							return false
						}
						continue
					}
					if g.mode == FormatPSV {
						spec, cellText := parseCellspecEnd(pre)
						g.pushCellspec(spec)
						g.buffer.WriteString(cellText)
					} else {
						g.buffer.WriteString(pre)
					}
				}

				// An empty remainder still leaves an empty cell open.
				if text = post; text == "" {
					hasText = false
				}
				g.closeCell(false)
				continue
			}
		}

		g.buffer.WriteString(text)
		g.buffer.WriteByte('\n')

		switch g.mode {
		case FormatCSV:
			if g.hasUnclosedQuotes("") {
				g.cellOpen = true
				return true
			}
			g.closeCell(true)
		case FormatDSV:
			g.closeCell(true)
		default:
			g.cellOpen = true
		}
		return false
	}
}

// partition splits rows into head, body and foot and interprets the
// content of every cell.
func partition(tbl *adast.Block, rows [][]*rawCell, hasHeader bool, opts Options) {
	attrs := tbl.Table
	attrs.Head, attrs.Body, attrs.Foot = nil, nil, nil

	body := rows
	if len(body) > 0 && hasHeader {
		attrs.Head = []adast.Row{finishRow(body[0], true, opts)}
		body = body[1:]
	}

	var foot []*rawCell
	if len(body) > 0 && tbl.HasOption("footer") {
		foot = body[len(body)-1]
		body = body[:len(body)-1]
	}

	for _, row := range body {
		attrs.Body = append(attrs.Body, finishRow(row, false, opts))
	}
	if foot != nil {
		attrs.Foot = []adast.Row{finishRow(foot, false, opts)}
	}
}

func finishRow(raw []*rawCell, header bool, opts Options) adast.Row {
	row := make(adast.Row, 0, len(raw))
	for _, cell := range raw {
		row = append(row, finishCell(cell, header, opts))
	}
	return row
}
