package adast

// Kind classifies a block in the document tree.
type Kind uint16

// Block kinds.
const (
	KindDocument Kind = iota
	KindParagraph
	KindLiteral
	KindListing
	KindDelimited
	KindList
	KindListItem
	KindCalloutList
	KindTable
	KindTableCell
	KindThematicBreak
	KindPageBreak
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindParagraph:
		return "paragraph"
	case KindLiteral:
		return "literal"
	case KindListing:
		return "listing"
	case KindDelimited:
		return "delimited"
	case KindList:
		return "list"
	case KindListItem:
		return "list_item"
	case KindCalloutList:
		return "callout_list"
	case KindTable:
		return "table"
	case KindTableCell:
		return "table_cell"
	case KindThematicBreak:
		return "thematic_break"
	case KindPageBreak:
		return "page_break"
	default:
		return "unknown"
	}
}

// IsContainer reports whether blocks of this kind may own child blocks.
func (k Kind) IsContainer() bool {
	switch k {
	case KindDocument, KindDelimited, KindList, KindListItem, KindCalloutList, KindTableCell:
		return true
	default:
		return false
	}
}

// IsVerbatim reports whether the content of this kind is kept as-is.
// Callouts are only recognized in verbatim content.
func (k Kind) IsVerbatim() bool {
	return k == KindLiteral || k == KindListing
}

// ListType identifies the flavor of a list.
type ListType string

// List types, named after their AsciiDoc contexts.
const (
	ListUnordered   ListType = "ulist"
	ListOrdered     ListType = "olist"
	ListDescription ListType = "dlist"
	ListCallout     ListType = "colist"
)

// Nestable reports whether a list of this type may appear nested inside a
// list item without an explicit continuation.
func (t ListType) Nestable() bool {
	return t == ListUnordered || t == ListOrdered || t == ListDescription
}
