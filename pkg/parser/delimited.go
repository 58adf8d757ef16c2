package parser

import (
	"strings"

	"github.com/yaklabco/adocblocks/pkg/adast"
	"github.com/yaklabco/adocblocks/pkg/diag"
	"github.com/yaklabco/adocblocks/pkg/langdetect"
	"github.com/yaklabco/adocblocks/pkg/reader"
	"github.com/yaklabco/adocblocks/pkg/table"
)

// delimitedBlock reads the block opened by the fence line open. context is
// the fence context after style masquerading.
func (s *session) delimitedBlock(cur *reader.Cursor, open reader.Line, d delimiter, context string, attrs map[string]string) *adast.Block {
	switch context {
	case "comment":
		s.readDelimited(cur, open, d.terminator, "comment", nil)
		return nil

	case "table":
		return s.tableBlock(cur, open, d, attrs)

	case "listing", "source", "fenced_code":
		lines := s.readDelimited(cur, open, d.terminator, "listing", nil)
		return s.listingBlock(open, context, d.language, reader.Texts(lines), attrs)

	case "literal":
		lines := s.readDelimited(cur, open, d.terminator, context, nil)
		blk := adast.NewBlock(adast.KindLiteral, context, open.Number)
		blk.Lines = trimBlankLines(reader.Texts(lines))
		return s.finishBlock(blk, attrs)

	case "pass", "stem", "latexmath", "asciimath", "verse":
		lines := s.readDelimited(cur, open, d.terminator, context, nil)
		if context == "verse" {
			rekey(attrs, "attribution", "citetitle")
		}
		blk := adast.NewBlock(adast.KindDelimited, context, open.Number)
		blk.Lines = reader.Texts(lines)
		return s.finishBlock(blk, attrs)
	}

	lines := s.readDelimited(cur, open, d.terminator, context, nil)

	switch context {
	case "abstract", "partintro":
		context = "open"
	case "quote":
		rekey(attrs, "attribution", "citetitle")
	case "admonition":
		s.admonitionAttributes(attrs[attrStyle], attrs)
	}

	blk := adast.NewBlock(adast.KindDelimited, context, open.Number)
	applyAttributes(blk, attrs)

	s.stack.Push(blk)
	s.parseBlocks(reader.New(lines))
	s.stack.Pop()

	s.debug("block closed", "context", context, "line", open.Number, "children", len(blk.Children))
	return blk
}

// readDelimited reads the lines up to the closing fence, which is consumed.
// A missing fence closes the block at the end of input with a warning.
func (s *session) readDelimited(cur *reader.Cursor, open reader.Line, terminator, context string, skipComments func(string) bool) []reader.Line {
	lines, complete := cur.ReadUntil(reader.UntilOptions{Terminator: terminator, SkipComments: skipComments}, nil)
	if !complete {
		s.sink.Warn(diag.UnterminatedContainer, open.Number, "unterminated %s block", context)
	}
	return lines
}

// listingBlock builds a listing block and resolves the language of source
// blocks. fenceInfo is the text after a ``` fence.
func (s *session) listingBlock(open reader.Line, context, fenceInfo string, lines []string, attrs map[string]string) *adast.Block {
	blk := adast.NewBlock(adast.KindListing, "listing", open.Number)
	blk.Lines = trimBlankLines(lines)

	docLanguage, hasDocLanguage := s.resolve("source-language")
	language := ""
	source := false

	switch {
	case context == "fenced_code":
		source = true
		info := fenceInfo
		if comma := strings.IndexByte(info, ','); comma >= 0 {
			if rest := info[comma+1:]; rest != "" {
				attrs["linenums"] = ""
			}
			info = info[:comma]
		}
		language = strings.TrimSpace(info)
	case context == "source":
		source = true
		language = attrs["2"]
		rekey(attrs, "language", "linenums")
	case attrs["1"] == "" && (attrs["2"] != "" || hasDocLanguage):
		source = true
		language = attrs["2"]
		rekey(attrs, "language", "linenums")
	}

	if source {
		attrs[attrStyle] = "source"
		if language == "" && hasDocLanguage {
			language = docLanguage
		}
		if language == "" {
			language = s.detectLanguage(blk.Lines)
		}
		if language != "" {
			attrs["language"] = language
		}
	}

	if _, ok := attrs["linenums"]; !ok {
		if _, ok := attrs["linenums-option"]; ok {
			attrs["linenums"] = ""
		}
	}

	return s.finishBlock(blk, attrs)
}

// detectLanguage guesses the language of an unlabelled source block when
// detection is enabled, falling back to the configured default.
func (s *session) detectLanguage(lines []string) string {
	if s.cfg.Source.DetectLanguage {
		body := make([]string, len(lines))
		for i, line := range lines {
			body[i] = s.scanner.Strip(line)
		}
		if lang, ok := langdetect.DetectLines(body); ok {
			s.debug("source language detected", "language", lang)
			return lang
		}
	}
	return s.cfg.Source.DefaultLanguage
}

// tableBlock reads a table up to its closing fence and builds its grid.
// Comment lines inside the table are dropped.
func (s *session) tableBlock(cur *reader.Cursor, open reader.Line, d delimiter, attrs map[string]string) *adast.Block {
	lines := s.readDelimited(cur, open, d.terminator, "table", s.host.IsComment)

	if _, ok := attrs["format"]; !ok {
		if format := table.FormatForFence(d.terminator); format != "" {
			attrs["format"] = format
		}
	}

	tbl := adast.NewTable(open.Number)
	applyAttributes(tbl, attrs)
	if tbl.Style == "table" {
		tbl.Style = ""
	}

	table.Parse(tbl, lines, s.tableOptions())
	return tbl
}
