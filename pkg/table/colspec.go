package table

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/adocblocks/pkg/adast"
)

// widthPrecision is the number of decimals kept in column percentages.
const widthPrecision = 4

// autowidth marks a column whose width was given as "~".
const autowidth = -1

//nolint:gochecknoglobals // Compiled once.
var columnSpecRx = regexp.MustCompile(`^(?:(\d+)\*)?([<^>](?:\.[<^>]?)?|(?:[<^>]?\.)?[<^>])?(\d+%?|~)?([a-z])?$`)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	horizontalAlignments = map[string]string{"<": "left", ">": "right", "^": "center"}
	verticalAlignments   = map[string]string{"<": "top", ">": "bottom", "^": "middle"}
	cellStyles           = map[string]string{
		"d": "",
		"s": "strong",
		"e": "emphasis",
		"m": "monospaced",
		"h": "header",
		"l": "literal",
		"a": "asciidoc",
	}
)

// ColumnSpec is one parsed entry of a cols attribute.
type ColumnSpec struct {
	Width  int
	HAlign string
	VAlign string
	Style  string
}

// ParseColspecs parses a cols attribute value. Records are separated by
// commas, or semicolons when there is no comma. A bare integer N yields N
// equal columns. Unparseable records are skipped.
func ParseColspecs(records string) []ColumnSpec {
	records = strings.ReplaceAll(records, " ", "")
	if n, err := strconv.Atoi(records); err == nil && strconv.Itoa(n) == records {
		specs := make([]ColumnSpec, n)
		for i := range specs {
			specs[i] = ColumnSpec{Width: 1}
		}
		return specs
	}
	if records == "" {
		return nil
	}

	sep := ";"
	if strings.Contains(records, ",") {
		sep = ","
	}

	var specs []ColumnSpec
	for _, record := range strings.Split(records, sep) {
		if record == "" {
			specs = append(specs, ColumnSpec{Width: 1})
			continue
		}
		m := columnSpecRx.FindStringSubmatch(record)
		if m == nil {
			continue
		}

		spec := ColumnSpec{Width: 1}
		if m[2] != "" {
			spec.HAlign, spec.VAlign = parseAlignment(m[2])
		}
		switch {
		case m[3] == "~":
			spec.Width = autowidth
		case m[3] != "":
			width, _ := strconv.Atoi(strings.TrimSuffix(m[3], "%"))
			spec.Width = width
		}
		if style, ok := cellStyles[m[4]]; ok && m[4] != "" {
			spec.Style = style
		}

		repeat := 1
		if m[1] != "" {
			repeat, _ = strconv.Atoi(m[1])
		}
		for range repeat {
			specs = append(specs, spec)
		}
	}

	return specs
}

// parseAlignment splits an alignment token such as "^.>" into horizontal
// and vertical alignment names.
func parseAlignment(token string) (string, string) {
	hspec, vspec, _ := strings.Cut(token, ".")
	return horizontalAlignments[hspec], verticalAlignments[vspec]
}

// newColumn creates a column with default alignment.
func newColumn(number int) *adast.Column {
	return &adast.Column{
		Number: number,
		Width:  1,
		HAlign: "left",
		VAlign: "top",
	}
}

// createColumns builds columns from explicit specs and assigns widths.
func createColumns(specs []ColumnSpec) []*adast.Column {
	columns := make([]*adast.Column, 0, len(specs))
	var autoCols []*adast.Column
	widthBase := 0

	for _, spec := range specs {
		col := newColumn(len(columns) + 1)
		if spec.HAlign != "" {
			col.HAlign = spec.HAlign
		}
		if spec.VAlign != "" {
			col.VAlign = spec.VAlign
		}
		col.Style = spec.Style
		col.Width = spec.Width
		if spec.Width == autowidth {
			col.Autowidth = true
			autoCols = append(autoCols, col)
		} else {
			widthBase += spec.Width
		}
		columns = append(columns, col)
	}

	if len(columns) > 0 {
		if widthBase > 0 || len(autoCols) > 0 {
			assignWidths(columns, widthBase, autoCols)
		} else {
			assignWidths(columns, 0, nil)
		}
	}

	return columns
}

// assignWidths computes column percentages. With a zero widthBase every
// column gets an equal share. Otherwise each width is width*100/widthBase,
// and autowidth columns split what explicit widths leave. Percentages are
// truncated to four decimals and the last column absorbs the remainder.
func assignWidths(columns []*adast.Column, widthBase int, autoCols []*adast.Column) {
	if len(columns) == 0 {
		return
	}

	total := 0.0
	last := 0.0

	if widthBase > 0 || len(autoCols) > 0 {
		base := float64(widthBase)
		if len(autoCols) > 0 {
			share := 0.0
			if widthBase <= 100 {
				share = truncate((100.0 - base) / float64(len(autoCols)))
				base = 100
			}
			for _, col := range autoCols {
				col.Percent = share
			}
		}
		for _, col := range columns {
			if !col.Autowidth {
				col.Percent = truncate(float64(col.Width) * 100 / base)
			}
			last = col.Percent
			total += col.Percent
		}
	} else {
		last = truncate(100 / float64(len(columns)))
		for _, col := range columns {
			col.Percent = last
			total += last
		}
	}

	if round(total) != 100 {
		columns[len(columns)-1].Percent = round(last + 100 - total)
	}
}

func truncate(value float64) float64 {
	scale := math.Pow(10, widthPrecision)
	return math.Trunc(value*scale+1e-7) / scale
}

func round(value float64) float64 {
	scale := math.Pow(10, widthPrecision)
	return math.Round(value*scale) / scale
}
