package table

import (
	"regexp"
	"strings"

	"github.com/yaklabco/adocblocks/pkg/adast"
)

// Cell content styles.
const (
	StyleAsciiDoc = "asciidoc"
	StyleLiteral  = "literal"
	StyleHeader   = "header"
)

//nolint:gochecknoglobals // Compiled once.
var blankLineRx = regexp.MustCompile(`\n(?:[ \t]*\n)+`)

// finishCell interprets the raw text of a cell according to its style.
// Header row cells never take a style.
func finishCell(raw *rawCell, header bool, opts Options) *adast.Block {
	col := raw.column
	cell := adast.NewCell("", raw.line)
	cell.Cell.HAlign = col.HAlign
	cell.Cell.VAlign = col.VAlign
	cell.Cell.Header = header

	style := ""
	if !header {
		style = col.Style
	}

	text := raw.text
	firstLine := raw.line

	if spec := raw.spec; spec != nil {
		if spec.colspan > 1 {
			cell.Cell.Colspan = spec.colspan
		}
		if spec.rowspan > 1 {
			cell.Cell.Rowspan = spec.rowspan
		}
		if spec.halign != "" {
			cell.Cell.HAlign = spec.halign
		}
		if spec.valign != "" {
			cell.Cell.VAlign = spec.valign
		}
		if spec.hasStyle && !header {
			style = spec.style
		}

		switch style {
		case StyleAsciiDoc:
			text = strings.TrimRight(text, " \t\n")
			if strings.HasPrefix(text, "\n") {
				trimmed := strings.TrimLeft(text, "\n")
				firstLine += len(text) - len(trimmed)
				text = trimmed
			} else {
				text = strings.TrimLeft(text, " \t")
			}
		case StyleLiteral:
			text = strings.TrimLeft(strings.TrimRight(text, " \t\n"), "\n")
		default:
			text = strings.TrimSpace(text)
		}
	}

	cell.Cell.Text = text
	cell.Cell.Style = style

	switch {
	case style == StyleAsciiDoc:
		if opts.ParseCell != nil {
			cell.Children = opts.ParseCell(strings.Split(text, "\n"), firstLine)
		}
	case style == StyleLiteral:
		cell.Lines = strings.Split(text, "\n")
	case !header:
		cell.Cell.Paragraphs = splitParagraphs(text)
	}

	return cell
}

// splitParagraphs splits normal cell text on blank lines.
func splitParagraphs(text string) []string {
	if text == "" {
		return nil
	}
	parts := blankLineRx.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimRight(part, "\n"); part != "" {
			paragraphs = append(paragraphs, part)
		}
	}
	return paragraphs
}
