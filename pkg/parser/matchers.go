package parser

import (
	"regexp"
	"strings"

	"github.com/yaklabco/adocblocks/pkg/adast"
	"github.com/yaklabco/adocblocks/pkg/reader"
	"github.com/yaklabco/adocblocks/pkg/table"
)

//nolint:gochecknoglobals // Compiled once.
var (
	unorderedListRx = regexp.MustCompile(`^[ \t]*(-|\*{1,5}|\x{2022}{1,5})[ \t]+(.+)$`)
	orderedListRx   = regexp.MustCompile(`^[ \t]*(\.{1,5}|\d+\.|[a-zA-Z]\.|[IVXivx]+\))[ \t]+(.+)$`)
	calloutListRx   = regexp.MustCompile(`^<(\d+|\.)>[ \t]+(.+)$`)
	anyListRx       = regexp.MustCompile(`^(?:[ \t]*(?:-|\*{1,5}|\.{1,5}|\x{2022}{1,5}|\d+\.|[a-zA-Z]\.|[IVXivx]+\))[ \t]|[ \t]*.*?(?::{2,4}|;;)(?:$|[ \t])|<(?:\d+|\.)>[ \t])`)

	blockAttributeLineRx = regexp.MustCompile(`^\[(?:|[\p{L}\p{N}_.#%{,"'].*)\]$`)
	blockAnchorRx        = regexp.MustCompile(`^\[\[(?:|([\p{L}_:][\p{L}\p{N}_\-:.]*)(?:, *(.+))?)\]\]$`)
	blockTitleRx         = regexp.MustCompile(`^\.(\.?[^ \t.].*)$`)
	attributeEntryRx     = regexp.MustCompile(`^:(!?[\p{L}\p{N}_][^:]*):(?:[ \t]+(.*))?$`)
	admonitionRx         = regexp.MustCompile(`^(NOTE|TIP|IMPORTANT|WARNING|CAUTION):[ \t]+(.*)$`)
)

// Decision is the verdict of a matcher about one line inside a list item.
type Decision int

const (
	// NotAMatch means the line carries no list structure.
	NotAMatch Decision = iota
	// Continue folds the line into the current item.
	Continue
	// OpenList starts a list nested in the current item.
	OpenList
	// CloseList ends the current item because a sibling begins.
	CloseList
	// AttachViaContinuation attaches the next block to the current item.
	AttachViaContinuation
)

func (d Decision) String() string {
	switch d {
	case Continue:
		return "continue"
	case OpenList:
		return "open-list"
	case CloseList:
		return "close-list"
	case AttachViaContinuation:
		return "attach"
	default:
		return "none"
	}
}

// listMatch is a recognized list item line.
type listMatch struct {
	typ    adast.ListType
	marker string
	text   string

	// term and hasText apply to description lists.
	term    string
	hasText bool
}

// nestableLists are the list types that nest without a continuation, in
// matching order.
//
//nolint:gochecknoglobals // Read-only table.
var nestableLists = []adast.ListType{adast.ListUnordered, adast.ListOrdered, adast.ListDescription}

// matcher recognizes list item lines. isComment reports which lines are
// line comments; a comment line is never a description term.
type matcher struct {
	isComment func(line string) bool
}

func newMatcher(host Host) matcher {
	return matcher{isComment: host.IsComment}
}

// list matches line against the marker grammar of one list type.
func (mt matcher) list(line string, typ adast.ListType) (listMatch, bool) {
	switch typ {
	case adast.ListUnordered:
		if m := unorderedListRx.FindStringSubmatch(line); m != nil {
			return listMatch{typ: typ, marker: m[1], text: m[2], hasText: true}, true
		}
	case adast.ListOrdered:
		if m := orderedListRx.FindStringSubmatch(line); m != nil {
			return listMatch{typ: typ, marker: m[1], text: m[2], hasText: true}, true
		}
	case adast.ListCallout:
		if m := calloutListRx.FindStringSubmatch(line); m != nil {
			return listMatch{typ: typ, marker: "<" + m[1] + ">", text: m[2], hasText: true}, true
		}
	case adast.ListDescription:
		return mt.description(line, "")
	}
	return listMatch{}, false
}

// nestable returns the first nestable list type that matches line.
// Inside a nested list only description lists are considered.
func (mt matcher) nestable(line string, withinNested bool) (listMatch, bool) {
	types := nestableLists
	if withinNested {
		types = nestableLists[2:]
	}
	for _, typ := range types {
		if m, ok := mt.list(line, typ); ok {
			return m, true
		}
	}
	return listMatch{}, false
}

// descriptionDelimiters in the order a delimiter is tried at one position.
//
//nolint:gochecknoglobals // Read-only table.
var descriptionDelimiters = []string{"::::", ":::", "::", ";;"}

// description finds the earliest term delimiter on line that is
// followed by the end of the line or blank space. With a fixed delimiter a
// colon delimiter may not directly follow another colon. Line comments are
// never terms.
func (mt matcher) description(line, delimiter string) (listMatch, bool) {
	if mt.isComment != nil && mt.isComment(line) {
		return listMatch{}, false
	}

	start := len(line) - len(strings.TrimLeft(line, " \t"))
	if start >= len(line) {
		return listMatch{}, false
	}

	candidates := descriptionDelimiters
	if delimiter != "" {
		candidates = []string{delimiter}
	}

	for pos := start + 1; pos < len(line); pos++ {
		for _, delim := range candidates {
			if !strings.HasPrefix(line[pos:], delim) {
				continue
			}
			if delimiter != "" && delim[0] == ':' && line[pos-1] == ':' {
				continue
			}
			after := line[pos+len(delim):]
			if after != "" && after[0] != ' ' && after[0] != '\t' {
				continue
			}
			text := strings.TrimLeft(after, " \t")
			return listMatch{
				typ:     adast.ListDescription,
				marker:  delim,
				term:    line[start:pos],
				text:    text,
				hasText: text != "",
			}, true
		}
	}
	return listMatch{}, false
}

// sibling reports whether line is an item of the same list: same type and
// the same normalized marker.
func (mt matcher) sibling(line string, typ adast.ListType, trait string) bool {
	switch typ {
	case adast.ListDescription:
		_, ok := mt.description(line, trait)
		return ok
	case adast.ListCallout:
		return calloutListRx.MatchString(line)
	case adast.ListOrdered:
		m, ok := mt.list(line, typ)
		return ok && normalizeOrderedMarker(m.marker) == trait
	default:
		m, ok := mt.list(line, typ)
		return ok && m.marker == trait
	}
}

// classify decides what a line read inside a list item means for that
// item. Literal and delimited lines are left to the caller.
func (mt matcher) classify(line string, typ adast.ListType, trait string, withinNested bool) (Decision, listMatch) {
	switch {
	case line == reader.Continuation:
		return AttachViaContinuation, listMatch{}
	case mt.sibling(line, typ, trait):
		return CloseList, listMatch{}
	}
	if m, ok := mt.nestable(line, withinNested); ok {
		return OpenList, m
	}
	if line == "" {
		return NotAMatch, listMatch{}
	}
	return Continue, listMatch{}
}

// isAnyListLine reports whether line looks like an item of any list.
func isAnyListLine(line string) bool {
	return anyListRx.MatchString(line)
}

func isLiteralLine(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}

func isBlockAttributeLine(line string) bool {
	return strings.HasPrefix(line, "[") && blockAttributeLineRx.MatchString(line)
}

func isBlockTitle(line string) bool {
	return strings.HasPrefix(line, ".") && blockTitleRx.MatchString(line)
}

func isAttributeEntry(line string) bool {
	return strings.HasPrefix(line, ":") && attributeEntryRx.MatchString(line)
}

// delimiter describes a delimited block fence.
type delimiter struct {
	context    string
	masq       []string
	terminator string
	language   string
}

// delimitedBlocks maps the four-character tip of a fence to its context
// and the styles it may masquerade as.
//
//nolint:gochecknoglobals // Read-only table.
var delimitedBlocks = map[string]delimiter{
	"--":   {context: "open", masq: []string{"comment", "example", "literal", "listing", "pass", "quote", "sidebar", "source", "verse", "admonition", "abstract", "partintro"}},
	"----": {context: "listing", masq: []string{"literal", "source"}},
	"....": {context: "literal", masq: []string{"listing", "source"}},
	"====": {context: "example", masq: []string{"admonition"}},
	"****": {context: "sidebar"},
	"____": {context: "quote", masq: []string{"verse"}},
	"++++": {context: "pass", masq: []string{"stem", "latexmath", "asciimath"}},
	"|===": {context: "table"},
	",===": {context: "table"},
	":===": {context: "table"},
	"!===": {context: "table"},
	"////": {context: "comment"},
}

// matchDelimiter reports whether line opens a delimited block. A fence is
// its four-character tip optionally extended with the tip's last character;
// the closing fence must repeat the opening line exactly.
func matchDelimiter(line string) (delimiter, bool) {
	n := len(line)
	if n < 2 {
		return delimiter{}, false
	}
	if n == 2 {
		if line == "--" {
			d := delimitedBlocks["--"]
			d.terminator = line
			return d, true
		}
		return delimiter{}, false
	}

	if strings.HasPrefix(line, "```") {
		lang := strings.TrimSpace(line[3:])
		if strings.HasPrefix(lang, "`") {
			return delimiter{}, false
		}
		return delimiter{context: "fenced_code", terminator: "```", language: lang}, true
	}

	if n < 4 {
		return delimiter{}, false
	}
	tip := line[:4]
	d, ok := delimitedBlocks[tip]
	if !ok {
		return delimiter{}, false
	}
	if d.context == "table" {
		if !table.IsFence(line) {
			return delimiter{}, false
		}
	} else if strings.Trim(line[1:], tip[3:]) != "" {
		return delimiter{}, false
	}
	d.terminator = line
	return d, true
}

func isDelimiterLine(line string) bool {
	_, ok := matchDelimiter(line)
	return ok
}

// breakKind recognizes thematic and page breaks. Apostrophe and less-than
// breaks are uniform runs of three or more; dash, asterisk and underscore
// breaks are three marks separated by equal runs of spaces.
func breakKind(line string) (adast.Kind, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return 0, false
	}
	if trimmed == line && len(line) >= 3 {
		switch {
		case strings.Trim(line, "'") == "":
			return adast.KindThematicBreak, true
		case strings.Trim(line, "<") == "":
			return adast.KindPageBreak, true
		}
	}
	if len(trimmed) < 3 {
		return 0, false
	}
	mark := trimmed[0]
	if mark != '-' && mark != '*' && mark != '_' {
		return 0, false
	}
	rest := trimmed[1:]
	gap := strings.Repeat(" ", len(rest)-len(strings.TrimLeft(rest, " ")))
	if trimmed != string(mark)+gap+string(mark)+gap+string(mark) {
		return 0, false
	}
	return adast.KindThematicBreak, true
}

// paragraphStop returns the condition that ends a paragraph: a block
// attribute line or a delimiter, and also any list item when breakAtList is
// set.
func paragraphStop(breakAtList bool) func(string) bool {
	return func(line string) bool {
		if isBlockAttributeLine(line) || isDelimiterLine(line) {
			return true
		}
		return breakAtList && isAnyListLine(line)
	}
}
