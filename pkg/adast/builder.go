package adast

// NewBlock creates a block of the given kind and context at a source line.
func NewBlock(kind Kind, context string, line int) *Block {
	return &Block{
		Kind:    kind,
		Context: context,
		Line:    line,
	}
}

// NewDocument creates a new document root.
func NewDocument() *Block {
	return NewBlock(KindDocument, "document", 1)
}

// NewList creates a list block. Callout lists get KindCalloutList.
func NewList(listType ListType, line int) *Block {
	kind := KindList
	if listType == ListCallout {
		kind = KindCalloutList
	}
	blk := NewBlock(kind, string(listType), line)
	blk.List = &ListAttrs{Type: listType}
	return blk
}

// NewListItem creates a list item with principal text.
func NewListItem(text, marker string, line int) *Block {
	blk := NewBlock(KindListItem, "list_item", line)
	blk.Item = &ItemAttrs{Text: text, Marker: marker}
	return blk
}

// NewTable creates an empty table block.
func NewTable(line int) *Block {
	blk := NewBlock(KindTable, "table", line)
	blk.Table = &TableAttrs{}
	return blk
}

// NewCell creates a table cell spanning one column and one row.
func NewCell(text string, line int) *Block {
	blk := NewBlock(KindTableCell, "table_cell", line)
	blk.Cell = &CellAttrs{Text: text, Colspan: 1, Rowspan: 1}
	return blk
}

// AppendChild appends child to parent. Nil arguments are ignored.
func AppendChild(parent, child *Block) {
	if parent == nil || child == nil {
		return
	}
	parent.Children = append(parent.Children, child)
}

// ShiftChild removes and returns the first child of parent.
func ShiftChild(parent *Block) *Block {
	if parent == nil || len(parent.Children) == 0 {
		return nil
	}
	first := parent.Children[0]
	parent.Children[0] = nil
	parent.Children = parent.Children[1:]
	return first
}

// LastChild returns the last child of parent, or nil.
func LastChild(parent *Block) *Block {
	if parent == nil || len(parent.Children) == 0 {
		return nil
	}
	return parent.Children[len(parent.Children)-1]
}

// ParentOf returns the block under root that owns target, or nil.
// Table cells report their table as parent.
func ParentOf(root, target *Block) *Block {
	var found *Block

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(blk *Block) error {
		for _, child := range blk.Children {
			if child == target {
				found = blk
				return errStopWalk
			}
		}
		for _, row := range blk.Rows() {
			for _, cell := range row {
				if cell == target {
					found = blk
					return errStopWalk
				}
			}
		}
		return nil
	})

	return found
}
