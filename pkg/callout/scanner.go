package callout

import (
	"strconv"
	"strings"
)

// DefaultLineComments are the comment prefixes recognized in front of a
// callout when no line-comment attribute is set.
//
//nolint:gochecknoglobals // Read-only table.
var DefaultLineComments = []string{"//", "#", "--", ";;"}

// Marker is one callout token found at the end of a line.
type Marker struct {
	// Number is the ordinal written in the marker. Zero for <.>.
	Number int

	// Auto is true for the <.> form, which takes the next number in the block.
	Auto bool

	// Escaped is true when the marker is preceded by a backslash.
	Escaped bool

	// XML is true for the <!--N--> form.
	XML bool

	// Offset is the byte offset of the marker (including any backslash).
	Offset int
}

// Scanner finds callout markers in verbatim lines.
type Scanner struct {
	comments []string
}

// NewScanner creates a scanner. A nil lineComment keeps the default
// prefixes; an empty one means callouts follow no comment prefix.
func NewScanner(lineComment *string) *Scanner {
	switch {
	case lineComment == nil:
		return &Scanner{comments: DefaultLineComments}
	case *lineComment == "":
		return &Scanner{}
	default:
		return &Scanner{comments: []string{*lineComment}}
	}
}

// ScanLine returns the callout markers at the end of line, left to right.
// Markers must trail the line, separated by at most one space, and share
// the same form (plain or XML).
func (s *Scanner) ScanLine(line string) []Marker {
	var markers []Marker
	pos := len(line)

	for {
		start, marker, ok := markerEndingAt(line, pos)
		if !ok && len(markers) > 0 && pos > 0 && line[pos-1] == ' ' {
			start, marker, ok = markerEndingAt(line, pos-1)
		}
		if !ok {
			break
		}
		if len(markers) > 0 && marker.XML != markers[0].XML {
			break
		}
		markers = append(markers, marker)
		pos = start
	}

	for i, j := 0, len(markers)-1; i < j; i, j = i+1, j-1 {
		markers[i], markers[j] = markers[j], markers[i]
	}

	return markers
}

// Prefix returns the line comment prefix in front of the first marker of
// line, or "" when there is none.
func (s *Scanner) Prefix(line string) string {
	markers := s.ScanLine(line)
	if len(markers) == 0 {
		return ""
	}
	head := strings.TrimSuffix(line[:markers[0].Offset], " ")
	for _, comment := range s.comments {
		if strings.HasSuffix(head, comment) {
			return comment
		}
	}
	return ""
}

// Strip removes trailing callout markers and their comment prefix from line.
// Escaped markers are kept.
func (s *Scanner) Strip(line string) string {
	markers := s.ScanLine(line)
	if len(markers) == 0 || markers[0].Escaped {
		return line
	}
	head := strings.TrimRight(line[:markers[0].Offset], " ")
	for _, comment := range s.comments {
		if trimmed, ok := strings.CutSuffix(head, comment); ok {
			return strings.TrimRight(trimmed, " \t")
		}
	}
	return head
}

// Catalog registers every unescaped marker in lines with reg and returns
// the ids in order. <.> markers are numbered from 1 within the block.
func (s *Scanner) Catalog(lines []string, reg *Registrar) []string {
	var ids []string
	autonum := 0

	for _, line := range lines {
		if !strings.Contains(line, "<") {
			continue
		}
		for _, marker := range s.ScanLine(line) {
			if marker.Escaped {
				continue
			}
			ordinal := marker.Number
			if marker.Auto {
				autonum++
				ordinal = autonum
			}
			ids = append(ids, reg.Register(ordinal))
		}
	}

	return ids
}

// markerEndingAt parses a marker whose closing '>' is line[end-1].
func markerEndingAt(line string, end int) (int, Marker, bool) {
	if end < 3 || line[end-1] != '>' {
		return 0, Marker{}, false
	}
	open := strings.LastIndexByte(line[:end-1], '<')
	if open < 0 {
		return 0, Marker{}, false
	}

	body := line[open+1 : end-1]
	body = strings.TrimPrefix(body, "!")

	var marker Marker
	if inner, ok := strings.CutPrefix(body, "--"); ok {
		inner, ok = strings.CutSuffix(inner, "--")
		if !ok {
			return 0, Marker{}, false
		}
		body = inner
		marker.XML = true
	}

	switch {
	case body == ".":
		marker.Auto = true
	case isDigits(body):
		n, err := strconv.Atoi(body)
		if err != nil {
			return 0, Marker{}, false
		}
		marker.Number = n
	default:
		return 0, Marker{}, false
	}

	start := open
	if open > 0 && line[open-1] == '\\' {
		marker.Escaped = true
		start--
	}
	marker.Offset = start

	return start, marker, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
