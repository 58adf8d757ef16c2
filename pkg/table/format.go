package table

import (
	"strings"
)

// Table data formats.
const (
	FormatPSV = "psv"
	FormatCSV = "csv"
	FormatDSV = "dsv"
	FormatTSV = "tsv"
)

// Default delimiters per format. "!sv" is psv inside a nested document.
const (
	delimPSV    = "|"
	delimNested = "!"
	delimCSV    = ","
	delimDSV    = ":"
	delimTSV    = "\t"
)

// FormatForFence returns the format implied by a table fence. Pipe and
// exclamation fences return "" so an explicit format attribute still wins.
func FormatForFence(fence string) string {
	switch {
	case strings.HasPrefix(fence, "|"), strings.HasPrefix(fence, "!"):
		return ""
	case strings.HasPrefix(fence, ","):
		return FormatCSV
	default:
		return FormatDSV
	}
}

// IsFence reports whether line opens or closes a table.
func IsFence(line string) bool {
	if len(line) < 4 || !strings.HasSuffix(line, "===") {
		return false
	}
	if strings.Trim(line[1:], "=") != "" {
		return false
	}
	switch line[0] {
	case '|', ',', ':', '!':
		return true
	default:
		return false
	}
}

// resolveFormat picks the parse mode and delimiter from the table
// attributes. mode is always psv, csv or dsv; tsv parses as csv.
func resolveFormat(attrs map[string]string, nested bool, report func(string)) (string, string, string) {
	declared := FormatPSV
	mode := FormatPSV
	delimiterKey := FormatPSV

	if value, ok := attrs["format"]; ok {
		switch value {
		case FormatPSV, FormatCSV, FormatDSV:
			declared, mode, delimiterKey = value, value, value
		case FormatTSV:
			declared, mode, delimiterKey = FormatTSV, FormatCSV, FormatTSV
		default:
			report(value)
		}
	}

	delimiter := defaultDelimiter(delimiterKey, nested)
	if sep, ok := attrs["separator"]; ok && sep != "" {
		if sep == `\t` {
			delimiter = delimTSV
		} else {
			delimiter = sep
		}
	}

	return declared, mode, delimiter
}

func defaultDelimiter(format string, nested bool) string {
	switch format {
	case FormatCSV:
		return delimCSV
	case FormatDSV:
		return delimDSV
	case FormatTSV:
		return delimTSV
	default:
		if nested {
			return delimNested
		}
		return delimPSV
	}
}
