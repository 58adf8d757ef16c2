// Package parser recognizes the block structure of AsciiDoc documents.
//
// A parse reads lines through a reader.Cursor, decides for every line which
// open container it belongs to and builds an adast.Block tree. Malformed
// markup never fails a parse; problems are recovered locally and recorded
// in a diag.Sink.
package parser

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/adocblocks/pkg/adast"
	"github.com/yaklabco/adocblocks/pkg/callout"
	"github.com/yaklabco/adocblocks/pkg/config"
	"github.com/yaklabco/adocblocks/pkg/diag"
	"github.com/yaklabco/adocblocks/pkg/reader"
	"github.com/yaklabco/adocblocks/pkg/table"
)

// Host answers the questions the recognizer asks about its environment.
type Host interface {
	// IsComment reports whether line is a line comment.
	IsComment(line string) bool

	// ResolveAttribute returns the value of a document attribute.
	ResolveAttribute(name string) (string, bool)

	// SafeMode returns the safe mode the document is processed in.
	SafeMode() config.SafeMode
}

// attributeStore is implemented by hosts that accept attribute entries.
type attributeStore interface {
	SetAttribute(name, value string)
	UnsetAttribute(name string)
}

// DocumentHost is the default Host, backed by a document attribute table.
// Attribute entries in the document update the table as they are read.
type DocumentHost struct {
	attrs map[string]string
	mode  config.SafeMode
}

// NewDocumentHost creates a host seeded with attrs. The map is copied.
func NewDocumentHost(attrs map[string]string, mode config.SafeMode) *DocumentHost {
	if mode == "" {
		mode = config.SafeModeSecure
	}
	lowered := make(map[string]string, len(attrs))
	for name, value := range attrs {
		lowered[strings.ToLower(name)] = value
	}
	return &DocumentHost{attrs: lowered, mode: mode}
}

// IsComment reports whether line is a "//" line comment. A line of three
// or more slashes is a comment block fence, not a line comment.
func (h *DocumentHost) IsComment(line string) bool {
	return strings.HasPrefix(line, "//") && !strings.HasPrefix(line, "///")
}

// ResolveAttribute returns the value of name.
func (h *DocumentHost) ResolveAttribute(name string) (string, bool) {
	value, ok := h.attrs[strings.ToLower(name)]
	return value, ok
}

// SafeMode returns the configured safe mode.
func (h *DocumentHost) SafeMode() config.SafeMode {
	return h.mode
}

// SetAttribute defines or replaces an attribute.
func (h *DocumentHost) SetAttribute(name, value string) {
	h.attrs[strings.ToLower(name)] = value
}

// UnsetAttribute removes an attribute.
func (h *DocumentHost) UnsetAttribute(name string) {
	delete(h.attrs, strings.ToLower(name))
}

// Attributes returns a copy of the attribute table.
func (h *DocumentHost) Attributes() map[string]string {
	return maps.Clone(h.attrs)
}

// Clone returns an independent copy of the host.
func (h *DocumentHost) Clone() *DocumentHost {
	return &DocumentHost{attrs: maps.Clone(h.attrs), mode: h.mode}
}

// Options configures a Parser.
type Options struct {
	// Config supplies recognition defaults. Nil means config.NewConfig().
	Config *config.Config

	// Logger receives debug traces. May be nil.
	Logger *log.Logger

	// Host answers comment and attribute queries. Nil means a DocumentHost
	// seeded from Config.Attributes, created per parse.
	Host Host

	// Registrar numbers callouts. Nil means a new registrar per parse.
	// Nested parses pass the registrar of the enclosing document.
	Registrar *callout.Registrar

	// Sink collects diagnostics. Nil means a new sink per parse.
	Sink *diag.Sink

	// Nested marks the parse of an AsciiDoc table cell.
	Nested bool
}

// Parser recognizes block structure. A Parser holds no per-document state
// and may be reused; concurrent use is safe when Options carries no shared
// Host, Registrar or Sink.
type Parser struct {
	opts Options
}

// New creates a parser.
func New(opts Options) *Parser {
	if opts.Config == nil {
		opts.Config = config.NewConfig()
	}
	return &Parser{opts: opts}
}

// Result is the outcome of one document parse.
type Result struct {
	// Path is the logical path of the source, used in diagnostics.
	Path string

	// Document is the root block.
	Document *adast.Block

	// Diagnostics lists the recovered problems in the order they were found.
	Diagnostics []diag.Diagnostic
}

// Parse recognizes content. The only error it returns is a cancelled
// context; malformed markup is reported through Result.Diagnostics.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	return p.ParseText(path, string(content)), nil
}

// ParseText recognizes text.
func (p *Parser) ParseText(path, text string) *Result {
	return p.ParseLines(path, reader.SplitLines(text, 1))
}

// ParseLines recognizes already split lines.
func (p *Parser) ParseLines(path string, lines []reader.Line) *Result {
	sess := p.newSession(path)
	doc := adast.NewDocument()
	if len(lines) > 0 {
		doc.Line = lines[0].Number
	}
	doc.SetAttr("safe-mode-name", string(sess.host.SafeMode()))

	sess.stack = NewStack(doc)
	sess.parseBlocks(reader.New(lines))

	if sess.logger != nil {
		sess.logger.Debug("document parsed",
			"path", path,
			"nested", sess.nested,
			"blocks", len(doc.Children),
			"diagnostics", sess.sink.Len(),
		)
	}

	return &Result{Path: path, Document: doc, Diagnostics: sess.sink.Diagnostics()}
}

// session is the state of one document parse.
type session struct {
	cfg     *config.Config
	logger  *log.Logger
	host    Host
	reg     *callout.Registrar
	sink    *diag.Sink
	scanner *callout.Scanner
	stack   *Stack
	match   matcher
	nested  bool
}

func (p *Parser) newSession(path string) *session {
	sess := &session{
		cfg:     p.opts.Config,
		logger:  p.opts.Logger,
		host:    p.opts.Host,
		reg:     p.opts.Registrar,
		sink:    p.opts.Sink,
		scanner: callout.NewScanner(p.opts.Config.Callouts.LineComment),
		nested:  p.opts.Nested,
	}
	if sess.host == nil {
		sess.host = NewDocumentHost(sess.cfg.Attributes, sess.cfg.SafeMode)
	}
	sess.match = newMatcher(sess.host)
	if sess.reg == nil {
		sess.reg = callout.NewRegistrar()
	}
	if sess.sink == nil {
		sess.sink = diag.NewSink(path, sess.logger)
	}
	return sess
}

// parseBlocks reads blocks from cur into the innermost open container until
// the cursor is exhausted.
func (s *session) parseBlocks(cur *reader.Cursor) {
	for cur.HasMore() {
		if blk := s.nextBlock(cur, blockOptions{}); blk != nil {
			s.stack.Attach(blk)
		}
	}
}

// parseCell parses the text of an AsciiDoc table cell as a nested document
// that shares the callout registrar and the diagnostic sink.
func (s *session) parseCell(lines []string, firstLine int) []*adast.Block {
	host := s.host
	if doc, ok := host.(*DocumentHost); ok {
		host = doc.Clone()
	}
	nested := New(Options{
		Config:    s.cfg,
		Logger:    s.logger,
		Host:      host,
		Registrar: s.reg,
		Sink:      s.sink,
		Nested:    true,
	})
	result := nested.ParseLines("", reader.FromStrings(lines, firstLine))
	return result.Document.Children
}

// tableOptions returns the grid builder options for a table in this parse.
func (s *session) tableOptions() table.Options {
	return table.Options{
		Nested:           s.nested,
		NoImplicitHeader: !s.cfg.Tables.ImplicitHeaderEnabled(),
		ParseCell:        s.parseCell,
		Sink:             s.sink,
		Logger:           s.logger,
	}
}

func (s *session) resolve(name string) (string, bool) {
	return s.host.ResolveAttribute(name)
}

func (s *session) debug(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}
