package table

import (
	"regexp"
	"strconv"
	"strings"
)

//nolint:gochecknoglobals // Compiled once.
var (
	cellSpecStartRx = regexp.MustCompile(`^[ \t]*(?:(\d+(?:\.\d*)?|(?:\d*\.)?\d+)([*+]))?([<^>](?:\.[<^>]?)?|(?:[<^>]?\.)?[<^>])?([a-z])?$`)
	cellSpecEndRx   = regexp.MustCompile(`[ \t]+(?:(\d+(?:\.\d*)?|(?:\d*\.)?\d+)([*+]))?([<^>](?:\.[<^>]?)?|(?:[<^>]?\.)?[<^>])?([a-z])?$`)
)

// cellSpec holds the operators written in front of a PSV separator.
// Zero values mean "not given".
type cellSpec struct {
	colspan  int
	rowspan  int
	repeat   int
	halign   string
	valign   string
	style    string
	hasStyle bool
}

func (s *cellSpec) span() int {
	if s == nil || s.colspan < 1 {
		return 1
	}
	return s.colspan
}

// parseCellspecStart looks for a cell spec before the first delimiter of a
// line. It returns the spec and the text after the delimiter, or ok=false
// when the line does not begin a cell.
func parseCellspecStart(line, delimiter string) (*cellSpec, string, bool) {
	specPart, rest, found := strings.Cut(line, delimiter)
	if !found {
		return nil, line, false
	}
	m := cellSpecStartRx.FindStringSubmatch(specPart)
	if m == nil {
		return nil, line, false
	}
	if m[0] == "" {
		return &cellSpec{}, rest, true
	}
	return buildCellspec(m), rest, true
}

// parseCellspecEnd looks for a cell spec at the end of the text in front of
// a delimiter. The spec belongs to the cell after the delimiter. It returns
// the spec and the remaining cell text.
func parseCellspecEnd(text string) (*cellSpec, string) {
	loc := cellSpecEndRx.FindStringSubmatchIndex(text)
	if loc == nil {
		return &cellSpec{}, text
	}
	if strings.TrimLeft(text[loc[0]:loc[1]], " \t") == "" {
		return &cellSpec{}, strings.TrimRight(text, " \t")
	}

	m := make([]string, len(loc)/2)
	for i := range m {
		if loc[2*i] >= 0 {
			m[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}
	return buildCellspec(m), text[:loc[0]]
}

func buildCellspec(m []string) *cellSpec {
	spec := &cellSpec{}

	if m[1] != "" {
		colPart, rowPart, _ := strings.Cut(m[1], ".")
		colspec := atoiOr(colPart, 1)
		rowspec := atoiOr(rowPart, 1)
		switch m[2] {
		case "+":
			if colspec != 1 {
				spec.colspan = colspec
			}
			if rowspec != 1 {
				spec.rowspan = rowspec
			}
		case "*":
			if colspec != 1 {
				spec.repeat = colspec
			}
		}
	}

	if m[3] != "" {
		spec.halign, spec.valign = parseAlignment(m[3])
	}

	if style, ok := cellStyles[m[4]]; ok {
		spec.style = style
		spec.hasStyle = true
	}

	return spec
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
