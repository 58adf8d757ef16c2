package parser

import (
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/adocblocks/pkg/adast"
	"github.com/yaklabco/adocblocks/pkg/callout"
	"github.com/yaklabco/adocblocks/pkg/diag"
	"github.com/yaklabco/adocblocks/pkg/reader"
)

// blockOptions carries the list context into nextBlock.
type blockOptions struct {
	// textOnly restricts recognition to paragraph text. It is used for the
	// first block of a list item whose text continues on the next line.
	textOnly bool

	// listType is set while reading the lines of a list item.
	listType adast.ListType
}

// Styles a paragraph may carry to become another kind of block.
//
//nolint:gochecknoglobals // Read-only tables.
var (
	paragraphStyles  = []string{"comment", "example", "literal", "listing", "normal", "open", "pass", "quote", "sidebar", "source", "verse", "abstract", "partintro"}
	verbatimStyles   = []string{"literal", "listing", "source", "verse"}
	admonitionStyles = []string{"NOTE", "TIP", "IMPORTANT", "WARNING", "CAUTION"}
)

// nextBlock reads the next block from cur. It returns nil when only
// metadata, comments or blank lines remain, or when the block is skipped.
func (s *session) nextBlock(cur *reader.Cursor, opts blockOptions) *adast.Block {
	skipped := cur.SkipBlank()
	if !cur.HasMore() {
		return nil
	}

	// Text-only recognition is dropped once a blank line separates the
	// content from the item marker.
	textOnly := opts.textOnly && skipped == 0

	attrs := make(map[string]string)
	for s.parseMetadataLine(cur, attrs, textOnly) {
		cur.SkipBlank()
		if !cur.HasMore() {
			return nil
		}
	}

	cur.Mark()
	first, _ := cur.Read()
	text := first.Text
	style := attrs[attrStyle]

	if d, ok := matchDelimiter(text); ok {
		context := d.context
		switch {
		case style == "":
			attrs[attrStyle] = context
		case style == context:
		case slices.Contains(d.masq, style):
			context = style
		case slices.Contains(d.masq, "admonition") && slices.Contains(admonitionStyles, style):
			context = "admonition"
		default:
			s.debug("unknown style for delimited block", "line", first.Number, "context", context, "style", style)
			attrs[attrStyle] = context
		}
		return s.delimitedBlock(cur, first, d, context, attrs)
	}

	if style != "" && slices.Contains(verbatimStyles, style) {
		cur.Unshift(first)
		return s.styledParagraph(cur, first, style, attrs)
	}

	indented := isLiteralLine(text)

	if !textOnly {
		if kind, ok := breakKind(text); ok {
			return s.finishBlock(adast.NewBlock(kind, kind.String(), first.Number), attrs)
		}
	}

	if blk := s.listBlock(cur, first, indented, attrs); blk != nil {
		return s.finishBlock(blk, attrs)
	}

	if style != "" && style != "normal" {
		switch {
		case slices.Contains(paragraphStyles, style), slices.Contains(admonitionStyles, style):
			cur.Unshift(first)
			return s.styledParagraph(cur, first, style, attrs)
		default:
			s.debug("unknown style for paragraph", "line", first.Number, "style", style)
			style = ""
		}
	}

	cur.Unshift(first)

	if indented && style == "" {
		var adjacent adast.ListType
		if skipped == 0 {
			adjacent = opts.listType
		}
		lines := reader.AdjustIndentation(reader.Texts(s.readParagraphLines(cur, adjacent != "", textOnly)))
		kind, context := adast.KindLiteral, "literal"
		if textOnly || adjacent == adast.ListDescription {
			kind, context = adast.KindParagraph, "paragraph"
		}
		blk := adast.NewBlock(kind, context, first.Number)
		blk.Lines = lines
		return s.finishBlock(blk, attrs)
	}

	lines := reader.Texts(s.readParagraphLines(cur, skipped == 0 && opts.listType != "", true))
	if indented && style == "normal" {
		lines = reader.AdjustIndentation(lines)
	}
	blk := adast.NewBlock(adast.KindParagraph, "paragraph", first.Number)
	if !textOnly {
		if m := admonitionRx.FindStringSubmatch(text); m != nil && len(lines) > 0 {
			lines[0] = m[2]
			blk.Context = "admonition"
			attrs[attrStyle] = m[1]
			s.admonitionAttributes(m[1], attrs)
		}
	}
	blk.Lines = lines
	return s.finishBlock(blk, attrs)
}

// listBlock recognizes a list starting at first and parses it. It returns
// nil when first starts no list.
func (s *session) listBlock(cur *reader.Cursor, first reader.Line, indented bool, attrs map[string]string) *adast.Block {
	text := first.Text
	switch {
	case !indented && strings.HasPrefix(text, "<") && calloutListRx.MatchString(text):
		cur.Unshift(first)
		attrs[attrStyle] = "arabic"
		return s.parseCalloutList(cur)
	case unorderedListRx.MatchString(text):
		cur.Unshift(first)
		return s.parseList(cur, adast.ListUnordered, attrs[attrStyle])
	case orderedListRx.MatchString(text):
		cur.Unshift(first)
		return s.parseList(cur, adast.ListOrdered, attrs[attrStyle])
	case strings.Contains(text, "::") || strings.Contains(text, ";;"):
		if m, ok := s.match.description(text, ""); ok {
			cur.Unshift(first)
			return s.parseDescriptionList(cur, m)
		}
	}
	return nil
}

// styledParagraph builds the block a style turns a paragraph into. The
// paragraph lines are still on the cursor.
func (s *session) styledParagraph(cur *reader.Cursor, first reader.Line, style string, attrs map[string]string) *adast.Block {
	if slices.Contains(verbatimStyles, style) && style != "verse" {
		lines, _ := cur.ReadUntil(reader.UntilOptions{BreakOnBlank: true, BreakOnContinuation: true}, nil)
		texts := reader.Texts(lines)
		if style == "literal" {
			blk := adast.NewBlock(adast.KindLiteral, "literal", first.Number)
			blk.Lines = trimBlankLines(texts)
			return s.finishBlock(blk, attrs)
		}
		return s.listingBlock(first, style, "", texts, attrs)
	}

	lines := reader.Texts(s.readParagraphLines(cur, false, true))

	switch {
	case style == "comment":
		return nil
	case slices.Contains(admonitionStyles, style):
		blk := adast.NewBlock(adast.KindParagraph, "admonition", first.Number)
		blk.Lines = lines
		s.admonitionAttributes(style, attrs)
		return s.finishBlock(blk, attrs)
	}

	context := style
	switch style {
	case "abstract", "partintro":
		context = "open"
	case "quote", "verse":
		rekey(attrs, "attribution", "citetitle")
	}
	blk := adast.NewBlock(adast.KindDelimited, context, first.Number)
	blk.Lines = lines
	return s.finishBlock(blk, attrs)
}

// readParagraphLines reads contiguous non-blank lines up to a continuation,
// a block attribute line or a delimiter, and also up to any list item when
// breakAtList is set.
func (s *session) readParagraphLines(cur *reader.Cursor, breakAtList, skipComments bool) []reader.Line {
	opts := reader.UntilOptions{BreakOnBlank: true, BreakOnContinuation: true, PreserveLast: true}
	if skipComments {
		opts.SkipComments = s.host.IsComment
	}
	lines, _ := cur.ReadUntil(opts, paragraphStop(breakAtList))
	return lines
}

// parseMetadataLine consumes one line of block metadata: an attribute list,
// an anchor, a title, an attribute entry, a line comment or a comment block.
// In text-only mode only attribute lists and comments count.
func (s *session) parseMetadataLine(cur *reader.Cursor, attrs map[string]string, textOnly bool) bool {
	line, ok := cur.Peek()
	if !ok || line.Text == "" {
		return false
	}
	text := line.Text

	switch text[0] {
	case '[':
		if strings.HasPrefix(text, "[[") {
			m := blockAnchorRx.FindStringSubmatch(text)
			if m == nil {
				return false
			}
			attrs[attrID] = m[1]
			if m[2] != "" {
				attrs["reftext"] = substituteAttributes(m[2], s.resolve)
			}
			cur.Advance()
			return true
		}
		if !isBlockAttributeLine(text) {
			return false
		}
		parseAttributeList(substituteAttributes(text[1:len(text)-1], s.resolve), attrs)
		cur.Advance()
		return true

	case '.':
		if textOnly {
			return false
		}
		m := blockTitleRx.FindStringSubmatch(text)
		if m == nil {
			return false
		}
		attrs[attrTitle] = m[1]
		cur.Advance()
		return true

	case '/':
		switch {
		case text == "//":
		case !textOnly && strings.Trim(text, "/") == "":
			if len(text) == 3 {
				return false
			}
			cur.Advance()
			if _, complete := cur.ReadUntil(reader.UntilOptions{Terminator: text}, nil); !complete {
				s.sink.Warn(diag.UnterminatedContainer, line.Number, "unterminated comment block")
			}
			return true
		case strings.HasPrefix(text, "//") && !strings.HasPrefix(text, "///"):
		default:
			return false
		}
		cur.Advance()
		return true

	case ':':
		if textOnly {
			return false
		}
		m := attributeEntryRx.FindStringSubmatch(text)
		if m == nil {
			return false
		}
		s.applyAttributeEntry(m[1], m[2])
		cur.Advance()
		return true
	}

	return false
}

// applyAttributeEntry defines or unsets a document attribute. Names with a
// leading or trailing "!" unset.
func (s *session) applyAttributeEntry(name, value string) {
	store, ok := s.host.(attributeStore)
	if !ok {
		return
	}
	if trimmed, unset := strings.CutPrefix(name, "!"); unset {
		store.UnsetAttribute(trimmed)
		return
	}
	if trimmed, unset := strings.CutSuffix(name, "!"); unset {
		store.UnsetAttribute(trimmed)
		return
	}
	store.SetAttribute(name, substituteAttributes(value, s.resolve))
}

func (s *session) admonitionAttributes(label string, attrs map[string]string) {
	name := strings.ToLower(label)
	attrs["name"] = name
	if caption, ok := attrs["caption"]; ok {
		attrs["textlabel"] = caption
		delete(attrs, "caption")
	} else if caption, ok := s.resolve(name + "-caption"); ok {
		attrs["textlabel"] = caption
	}
}

// finishBlock moves the collected metadata onto blk and registers the
// callouts of verbatim blocks.
func (s *session) finishBlock(blk *adast.Block, attrs map[string]string) *adast.Block {
	if blk == nil {
		return nil
	}
	applyAttributes(blk, attrs)
	if blk.Kind.IsVerbatim() {
		s.catalogCallouts(blk)
	}
	return blk
}

// applyAttributes copies named attributes onto blk. Title, style and id
// become block fields; positional attributes are dropped.
func applyAttributes(blk *adast.Block, attrs map[string]string) {
	for name, value := range attrs {
		switch name {
		case attrTitle:
			blk.Title = value
		case attrStyle:
			if value != "" {
				blk.Style = value
			}
		case attrID:
			blk.ID = value
		default:
			if _, err := strconv.Atoi(name); err == nil {
				continue
			}
			blk.SetAttr(name, value)
		}
	}
}

// catalogCallouts registers the callout markers of a verbatim block and
// records their ids in the "callouts" attribute.
func (s *session) catalogCallouts(blk *adast.Block) {
	scanner := s.scanner
	if lineComment, ok := blk.Attributes["line-comment"]; ok {
		scanner = callout.NewScanner(&lineComment)
	}
	if ids := scanner.Catalog(blk.Lines, s.reg); len(ids) > 0 {
		blk.SetAttr("callouts", strings.Join(ids, " "))
		s.debug("callouts registered", "line", blk.Line, "count", len(ids), "list", s.reg.ListIndex())
	}
}

// rekey moves positional attributes 2, 3, ... to names.
func rekey(attrs map[string]string, names ...string) {
	for i, name := range names {
		if value, ok := attrs[strconv.Itoa(i+2)]; ok {
			if _, exists := attrs[name]; !exists {
				attrs[name] = value
			}
		}
	}
}

// trimBlankLines drops leading and trailing blank lines.
func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && reader.IsBlank(lines[start]) {
		start++
	}
	for end > start && reader.IsBlank(lines[end-1]) {
		end--
	}
	return lines[start:end]
}
