// Package reader provides the line cursor the block parser reads from.
package reader

import (
	"strings"

	"github.com/yuin/goldmark/util"
	"golang.org/x/text/unicode/norm"
)

// Continuation is the list continuation marker line.
const Continuation = "+"

// Line is one source line with its 1-based line number.
type Line struct {
	Text   string
	Number int
}

// IsBlank reports whether the line has no visible content.
func (l Line) IsBlank() bool {
	return IsBlank(l.Text)
}

// IsBlank reports whether text contains only whitespace.
func IsBlank(text string) bool {
	return util.IsBlank([]byte(text))
}

// SplitLines splits source text into lines numbered from firstLine.
// Text is NFC-normalized, line endings are normalized, and trailing
// whitespace is removed from every line.
func SplitLines(text string, firstLine int) []Line {
	if text == "" {
		return nil
	}

	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for i, s := range raw {
		lines = append(lines, Line{
			Text:   string(util.TrimRightSpace([]byte(s))),
			Number: firstLine + i,
		})
	}
	return lines
}

// FromStrings numbers already-split lines starting at firstLine.
// Trailing whitespace is removed.
func FromStrings(texts []string, firstLine int) []Line {
	lines := make([]Line, 0, len(texts))
	for i, s := range texts {
		lines = append(lines, Line{
			Text:   string(util.TrimRightSpace([]byte(s))),
			Number: firstLine + i,
		})
	}
	return lines
}

// Texts returns the text of each line.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// AdjustIndentation removes the indentation common to all non-blank lines.
// Tabs count to the next multiple of four columns.
func AdjustIndentation(texts []string) []string {
	minWidth := -1
	for _, text := range texts {
		if IsBlank(text) {
			continue
		}
		width, _ := util.IndentWidth([]byte(text), 0)
		if minWidth < 0 || width < minWidth {
			minWidth = width
		}
	}

	out := make([]string, len(texts))
	if minWidth <= 0 {
		copy(out, texts)
		return out
	}

	for i, text := range texts {
		if IsBlank(text) {
			out[i] = ""
			continue
		}
		pos, padding := util.IndentPosition([]byte(text), 0, minWidth)
		if pos < 0 {
			out[i] = strings.TrimLeft(text, " \t")
			continue
		}
		out[i] = strings.Repeat(" ", padding) + text[pos:]
	}
	return out
}
