package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/adocblocks/pkg/adast"
	"github.com/yaklabco/adocblocks/pkg/diag"
	"github.com/yaklabco/adocblocks/pkg/reader"
)

// orderedScheme is an explicit numbering scheme of ordered lists.
type orderedScheme struct {
	style  string
	rx     *regexp.Regexp
	marker string
}

//nolint:gochecknoglobals // Read-only tables.
var (
	// orderedListStyles is indexed by the length of a "." marker minus one.
	orderedListStyles = []string{"arabic", "loweralpha", "lowerroman", "upperalpha", "upperroman"}

	orderedSchemes = []orderedScheme{
		{style: "arabic", rx: regexp.MustCompile(`^\d+\.$`), marker: "1."},
		{style: "loweralpha", rx: regexp.MustCompile(`^[a-z]\.$`), marker: "a."},
		{style: "lowerroman", rx: regexp.MustCompile(`^[ivx]+\)$`), marker: "i)"},
		{style: "upperalpha", rx: regexp.MustCompile(`^[A-Z]\.$`), marker: "A."},
		{style: "upperroman", rx: regexp.MustCompile(`^[IVX]+\)$`), marker: "I)"},
	}
)

// matchOrderedScheme returns the scheme of an explicit ordered marker.
func matchOrderedScheme(marker string) (orderedScheme, bool) {
	for _, scheme := range orderedSchemes {
		if scheme.rx.MatchString(marker) {
			return scheme, true
		}
	}
	return orderedScheme{}, false
}

// normalizeOrderedMarker maps an explicit ordered marker to the canonical
// marker of its scheme ("3." becomes "1."). Dot markers are kept.
func normalizeOrderedMarker(marker string) string {
	if strings.HasPrefix(marker, ".") {
		return marker
	}
	if scheme, ok := matchOrderedScheme(marker); ok {
		return scheme.marker
	}
	return marker
}

// ordinalOf returns the number an explicit marker stands for.
func ordinalOf(scheme orderedScheme, marker string) int {
	switch scheme.style {
	case "arabic":
		n, _ := strconv.Atoi(strings.TrimSuffix(marker, "."))
		return n
	case "loweralpha":
		return int(marker[0]-'a') + 1
	case "upperalpha":
		return int(marker[0]-'A') + 1
	default:
		return romanToInt(strings.TrimSuffix(marker, ")"))
	}
}

// formatOrdinal writes n the way scheme numbers items.
func formatOrdinal(scheme orderedScheme, n int) string {
	switch scheme.style {
	case "loweralpha", "upperalpha":
		if n < 1 || n > 26 {
			return strconv.Itoa(n)
		}
		base := byte('a')
		if scheme.style == "upperalpha" {
			base = 'A'
		}
		return string(base + byte(n-1))
	case "lowerroman":
		return strings.ToLower(intToRoman(n))
	case "upperroman":
		return intToRoman(n)
	default:
		return strconv.Itoa(n)
	}
}

// resolveOrderedMarker normalizes the marker of the item at index ordinal
// and checks its number against the list's start. The first explicit
// number sets the start of the list.
func (s *session) resolveOrderedMarker(list *adast.Block, marker string, ordinal, line int) (string, string) {
	if strings.HasPrefix(marker, ".") {
		if ordinal == 0 {
			list.List.Start = 1
		}
		return marker, ""
	}
	scheme, ok := matchOrderedScheme(marker)
	if !ok {
		return marker, ""
	}

	actual := ordinalOf(scheme, marker)
	if ordinal == 0 {
		list.List.Start = actual
		if actual != 1 {
			list.SetAttr("start", strconv.Itoa(actual))
		}
		return scheme.marker, scheme.style
	}

	if expected := list.List.Start + ordinal; actual != expected {
		s.sink.Warn(diag.SequenceViolation, line, "list item index: expected %s, got %s",
			formatOrdinal(scheme, expected), formatOrdinal(scheme, actual))
	}
	return scheme.marker, scheme.style
}

// parseList reads a run of unordered or ordered list items. style is the
// explicit style from block metadata, if any.
func (s *session) parseList(cur *reader.Cursor, typ adast.ListType, style string) *adast.Block {
	first, _ := cur.Peek()
	list := adast.NewList(typ, first.Number)
	list.List.Level = s.stack.ListLevel() + 1

	s.stack.Push(list)
	for {
		text, ok := cur.PeekText()
		if !ok {
			break
		}
		m, ok := s.match.list(text, typ)
		if !ok {
			break
		}
		if _, item := s.parseListItem(cur, list, m, m.marker, style); item != nil {
			if list.List.Marker == "" {
				list.List.Marker = item.Item.Marker
			}
			s.stack.Attach(item)
		}
		cur.SkipBlank()
	}
	s.stack.Pop()

	if typ == adast.ListUnordered && style == "" {
		if styles := s.cfg.Lists.BulletStyles; len(styles) > 0 {
			list.Style = styles[(list.List.Level-1)%len(styles)]
		}
	}
	if list.HasOption("checklist") && s.cfg.Lists.Interactive {
		list.SetOption("interactive")
	}

	s.debug("list closed",
		"type", typ,
		"line", list.Line,
		"level", list.List.Level,
		"items", len(list.Children),
	)
	return list
}

// parseDescriptionList reads a description list. Terms without a
// definition merge into the next item.
func (s *session) parseDescriptionList(cur *reader.Cursor, m listMatch) *adast.Block {
	first, _ := cur.Peek()
	list := adast.NewList(adast.ListDescription, first.Number)
	list.List.Level = s.stack.ListLevel() + 1
	list.List.Marker = m.marker
	trait := m.marker

	s.stack.Push(list)

	termLine := first.Number
	term, item := s.parseListItem(cur, list, m, trait, "")
	terms := []string{term}

	for {
		line, ok := cur.Peek()
		if !ok {
			break
		}
		next, ok := s.match.description(line.Text, trait)
		if !ok {
			break
		}
		nextTerm, nextItem := s.parseListItem(cur, list, next, trait, "")
		if item != nil {
			s.stack.Attach(descriptionItem(terms, item, trait, termLine))
			terms, item, termLine = []string{nextTerm}, nextItem, line.Number
			continue
		}
		terms = append(terms, nextTerm)
		item = nextItem
	}
	s.stack.Attach(descriptionItem(terms, item, trait, termLine))

	s.stack.Pop()
	s.debug("list closed", "type", adast.ListDescription, "line", list.Line, "items", len(list.Children))
	return list
}

// descriptionItem attaches terms to item. A group of terms left without a
// definition at the end of the list gets an empty item.
func descriptionItem(terms []string, item *adast.Block, marker string, line int) *adast.Block {
	if item == nil {
		item = adast.NewListItem("", marker, line)
	}
	item.Line = line
	item.Item.Terms = terms
	return item
}

// parseCalloutList reads a callout list and correlates each item with the
// callouts registered since the previous callout list.
func (s *session) parseCalloutList(cur *reader.Cursor) *adast.Block {
	first, _ := cur.Peek()
	list := adast.NewList(adast.ListCallout, first.Number)
	list.List.Level = s.stack.ListLevel() + 1
	list.List.Marker = "<1>"
	list.Style = "arabic"

	s.stack.Push(list)
	nextIndex, autonum := 1, 0
	for {
		line, ok := cur.Peek()
		if !ok {
			break
		}
		m, ok := s.match.list(line.Text, adast.ListCallout)
		if !ok {
			break
		}

		num := strings.TrimSuffix(strings.TrimPrefix(m.marker, "<"), ">")
		if num == "." {
			autonum++
			num = strconv.Itoa(autonum)
		}
		if num != strconv.Itoa(nextIndex) {
			s.sink.Warn(diag.SequenceViolation, line.Number, "callout list item index: expected %d, got %s", nextIndex, num)
		}

		if _, item := s.parseListItem(cur, list, m, list.List.Marker, ""); item != nil {
			s.stack.Attach(item)
			ordinal := len(list.Children)
			if ids := s.reg.IDs(ordinal); len(ids) > 0 {
				item.SetAttr("coids", strings.Join(ids, " "))
			} else {
				s.sink.Warn(diag.SequenceViolation, line.Number, "no callout found for <%d>", ordinal)
			}
		}
		nextIndex++
	}
	s.stack.Pop()
	s.reg.NextList()

	s.debug("callout list closed", "line", list.Line, "items", len(list.Children))
	return list
}

// parseListItem reads one item whose marker line is next on cur. For
// description lists it also returns the term, and a nil item when the term
// has neither text nor blocks.
func (s *session) parseListItem(cur *reader.Cursor, list *adast.Block, m listMatch, trait, style string) (string, *adast.Block) {
	first, _ := cur.Peek()
	typ := list.List.Type
	hasText := m.hasText

	item := adast.NewListItem(m.text, trait, first.Number)

	switch typ {
	case adast.ListUnordered:
		if checkbox, ok := checklistState(m.text); ok {
			list.SetOption("checklist")
			item.SetAttr("checkbox", "")
			if checkbox {
				item.SetAttr("checked", "")
			}
			item.Item.Text = m.text[4:]
		}
	case adast.ListOrdered:
		var implicit string
		trait, implicit = s.resolveOrderedMarker(list, trait, len(list.Children), first.Number)
		item.Item.Marker = trait
		if len(list.Children) == 0 && style == "" {
			switch {
			case implicit != "":
				list.Style = implicit
			case len(trait) <= len(orderedListStyles):
				list.Style = orderedListStyles[len(trait)-1]
			default:
				list.Style = "arabic"
			}
		}
	case adast.ListCallout:
		item.Item.Marker = m.marker
	}

	cur.Advance()
	lines := s.readLinesForListItem(cur, typ, trait, hasText)
	itemCur := reader.New(lines)

	if itemCur.HasMore() {
		contentAdjacent := false
		comments := itemCur.SkipComments(s.host.IsComment)
		if next, ok := itemCur.Peek(); ok {
			itemCur.UnshiftAll(comments)
			if next.Text != "" {
				contentAdjacent = true
				if typ != adast.ListDescription {
					hasText = false
				}
			}
		}

		s.stack.Push(item)
		depth := s.stack.Depth()
		if blk := s.nextBlock(itemCur, blockOptions{textOnly: !hasText, listType: typ}); blk != nil {
			s.stack.AttachAt(depth, blk)
		}
		for itemCur.HasMore() {
			if blk := s.nextBlock(itemCur, blockOptions{listType: typ}); blk != nil {
				s.stack.AttachAt(depth, blk)
			}
		}
		s.stack.Pop()

		if contentAdjacent && len(item.Children) > 0 {
			if head := item.Children[0]; head.Kind == adast.KindParagraph && head.Context == "paragraph" {
				foldFirst(item)
			}
		}
	}

	if typ == adast.ListDescription {
		if item.Item.Text == "" && len(item.Children) == 0 {
			return m.term, nil
		}
		return m.term, item
	}
	return "", item
}

// foldFirst merges the leading paragraph of item into its text.
func foldFirst(item *adast.Block) {
	source := adast.ShiftChild(item).Source()
	if item.Item.Text == "" {
		item.Item.Text = source
		return
	}
	item.Item.Text += "\n" + source
}

// checklistState recognizes the checkbox prefix of an unordered item.
func checklistState(text string) (bool, bool) {
	switch {
	case strings.HasPrefix(text, "[ ] "):
		return false, true
	case strings.HasPrefix(text, "[x] "), strings.HasPrefix(text, "[*] "):
		return true, true
	default:
		return false, false
	}
}

//nolint:gochecknoglobals // Read-only table.
var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func intToRoman(n int) string {
	var b strings.Builder
	for _, numeral := range romanNumerals {
		for n >= numeral.value {
			b.WriteString(numeral.symbol)
			n -= numeral.value
		}
	}
	return b.String()
}

func romanToInt(roman string) int {
	roman = strings.ToUpper(roman)
	total := 0
	for i := 0; i < len(roman); {
		matched := false
		for _, numeral := range romanNumerals {
			if strings.HasPrefix(roman[i:], numeral.symbol) {
				total += numeral.value
				i += len(numeral.symbol)
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return total
}
