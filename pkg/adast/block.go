package adast

import (
	"sort"
	"strings"
)

// Block represents a single block-level element.
type Block struct {
	// Kind identifies the variant of this block.
	Kind Kind

	// Context is the AsciiDoc context name ("ulist", "example", "listing", ...).
	Context string

	// Style is the first positional attribute, or an implicit style
	// such as "arabic" for ordered lists.
	Style string

	// ID is the block anchor, if any.
	ID string

	// Title is the block title from a preceding ".Title" line.
	Title string

	// Attributes holds named block attributes. Options are stored as
	// "<name>-option" keys with an empty value.
	Attributes map[string]string

	// Lines holds raw content for leaf blocks.
	Lines []string

	// Line is the 1-based source line where the block starts.
	Line int

	// Children are owned child blocks in source order.
	Children []*Block

	// List holds list attributes for KindList and KindCalloutList.
	List *ListAttrs

	// Item holds list item attributes for KindListItem.
	Item *ItemAttrs

	// Table holds table attributes for KindTable.
	Table *TableAttrs

	// Cell holds cell attributes for KindTableCell.
	Cell *CellAttrs
}

// ListAttrs holds attributes for list blocks.
type ListAttrs struct {
	// Type is the list flavor.
	Type ListType

	// Marker is the sibling marker shared by the items ("**", "..", "::", "1.", "<1>").
	Marker string

	// Level is the 1-based nesting level among enclosing lists.
	Level int

	// Start is the first ordinal of an explicitly numbered ordered list.
	// Zero when the list starts at its natural first value.
	Start int
}

// ItemAttrs holds attributes for list items.
type ItemAttrs struct {
	// Text is the principal text of the item.
	Text string

	// Terms holds the terms of a description list entry.
	Terms []string

	// Marker is the marker as written on the item line.
	Marker string
}

// Row is one table row.
type Row []*Block

// Column describes one table column.
type Column struct {
	// Number is the 1-based column number.
	Number int

	// Width is the relative width as written (1 when omitted).
	Width int

	// Autowidth is true when the width was given as "~".
	Autowidth bool

	// Percent is the computed width percentage, to 4 decimals.
	Percent float64

	// HAlign is left, center or right.
	HAlign string

	// VAlign is top, middle or bottom.
	VAlign string

	// Style is the cell content style applied to this column.
	Style string

	// Implicit is true when the column was inferred from the first row.
	Implicit bool
}

// TableAttrs holds attributes for tables.
type TableAttrs struct {
	// Format is psv, csv, dsv or tsv.
	Format string

	// Separator is the cell separator.
	Separator string

	// Columns are the column specs, fixed once established.
	Columns []*Column

	// Head holds the header row, if any.
	Head []Row

	// Body holds the body rows.
	Body []Row

	// Foot holds the footer row, if any.
	Foot []Row
}

// CellAttrs holds attributes for table cells.
type CellAttrs struct {
	// Text is the normalized cell text.
	Text string

	// Paragraphs holds the text split on blank lines for default-styled cells.
	Paragraphs []string

	// Colspan is the number of columns the cell spans (>= 1).
	Colspan int

	// Rowspan is the number of rows the cell spans (>= 1).
	Rowspan int

	// HAlign is left, center or right.
	HAlign string

	// VAlign is top, middle or bottom.
	VAlign string

	// Style is the content style (asciidoc, literal, emphasis, ...). Empty for
	// header row cells and default cells.
	Style string

	// Header is true for cells in the header row.
	Header bool
}

// Attr returns the named attribute, or "" when unset.
func (b *Block) Attr(name string) string {
	if b == nil || b.Attributes == nil {
		return ""
	}
	return b.Attributes[name]
}

// HasAttr reports whether the named attribute is set.
func (b *Block) HasAttr(name string) bool {
	if b == nil || b.Attributes == nil {
		return false
	}
	_, ok := b.Attributes[name]
	return ok
}

// SetAttr sets a named attribute.
func (b *Block) SetAttr(name, value string) {
	if b.Attributes == nil {
		b.Attributes = make(map[string]string)
	}
	b.Attributes[name] = value
}

// HasOption reports whether the option is set on the block.
func (b *Block) HasOption(name string) bool {
	return b.HasAttr(name + "-option")
}

// SetOption sets an option on the block.
func (b *Block) SetOption(name string) {
	b.SetAttr(name+"-option", "")
}

// Options returns the sorted option names set on the block.
func (b *Block) Options() []string {
	var opts []string
	for key := range b.Attributes {
		if name, ok := strings.CutSuffix(key, "-option"); ok {
			opts = append(opts, name)
		}
	}
	sort.Strings(opts)
	return opts
}

// Source returns the raw content lines joined with newlines.
func (b *Block) Source() string {
	return strings.Join(b.Lines, "\n")
}

// Items returns the list items of a list block.
func (b *Block) Items() []*Block {
	if b.Kind != KindList && b.Kind != KindCalloutList {
		return nil
	}
	return b.Children
}

// Text returns the principal text of a list item or cell.
func (b *Block) Text() string {
	switch {
	case b.Item != nil:
		return b.Item.Text
	case b.Cell != nil:
		return b.Cell.Text
	default:
		return b.Source()
	}
}

// Rows returns all table rows in order: head, body, foot.
func (b *Block) Rows() []Row {
	if b.Table == nil {
		return nil
	}
	rows := make([]Row, 0, len(b.Table.Head)+len(b.Table.Body)+len(b.Table.Foot))
	rows = append(rows, b.Table.Head...)
	rows = append(rows, b.Table.Body...)
	rows = append(rows, b.Table.Foot...)
	return rows
}
