package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/adocblocks/pkg/adast"
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	pipeMid    = "│   "
	pipeLast   = "    "
	ellipsis   = "…"
)

// TreeFormatter renders a block tree as an indented outline. Each line is
// truncated to Width display columns.
type TreeFormatter struct {
	styles *Styles
	width  int
}

// NewTreeFormatter creates a tree formatter. A width of 0 or less disables
// truncation.
func NewTreeFormatter(styles *Styles, width int) *TreeFormatter {
	return &TreeFormatter{styles: styles, width: width}
}

// Format renders root and its descendants.
func (f *TreeFormatter) Format(root *adast.Block) string {
	if root == nil {
		return ""
	}
	var builder strings.Builder
	f.writeNode(&builder, root, "", "")
	return builder.String()
}

func (f *TreeFormatter) writeNode(builder *strings.Builder, blk *adast.Block, prefix, childPrefix string) {
	f.writeLine(builder, prefix, Label(blk), Preview(blk))

	var children []*adast.Block
	for _, row := range blk.Rows() {
		children = append(children, row...)
	}
	children = append(children, blk.Children...)

	for i, child := range children {
		branch, pipe := branchMid, pipeMid
		if i == len(children)-1 {
			branch, pipe = branchLast, pipeLast
		}
		f.writeNode(builder, child, childPrefix+branch, childPrefix+pipe)
	}
}

func (f *TreeFormatter) writeLine(builder *strings.Builder, prefix, label, preview string) {
	used := runewidth.StringWidth(prefix)
	if f.width > 0 {
		room := f.width - used
		if room <= 0 {
			builder.WriteString(f.styles.TreeBranch.Render(prefix) + "\n")
			return
		}
		if runewidth.StringWidth(label) >= room {
			label = runewidth.Truncate(label, room, ellipsis)
			preview = ""
		} else if preview != "" {
			preview = runewidth.Truncate(preview, room-runewidth.StringWidth(label)-1, ellipsis)
		}
	}

	builder.WriteString(f.styles.TreeBranch.Render(prefix))
	builder.WriteString(f.styles.BlockKind.Render(label))
	if preview != "" {
		builder.WriteString(" " + f.styles.BlockText.Render(preview))
	}
	builder.WriteString("\n")
}

// Label describes a block on one line: kind, context, style, list details
// and source line. It never contains block content.
func Label(blk *adast.Block) string {
	parts := []string{blk.Kind.String()}
	if blk.Context != "" && blk.Context != blk.Kind.String() {
		parts = append(parts, blk.Context)
	}
	if blk.Style != "" {
		parts = append(parts, "["+blk.Style+"]")
	}
	if blk.ID != "" {
		parts = append(parts, "#"+blk.ID)
	}
	if blk.List != nil {
		parts = append(parts, fmt.Sprintf("level=%d", blk.List.Level))
		if blk.List.Start != 0 {
			parts = append(parts, fmt.Sprintf("start=%d", blk.List.Start))
		}
	}
	if blk.Item != nil && blk.Item.Marker != "" {
		parts = append(parts, blk.Item.Marker)
	}
	if blk.Cell != nil {
		if blk.Cell.Colspan > 1 || blk.Cell.Rowspan > 1 {
			parts = append(parts, fmt.Sprintf("span=%d.%d", blk.Cell.Colspan, blk.Cell.Rowspan))
		}
		if blk.Cell.Header {
			parts = append(parts, "header")
		}
	}
	if blk.Table != nil {
		parts = append(parts, fmt.Sprintf("%s cols=%d rows=%d", blk.Table.Format, len(blk.Table.Columns), len(blk.Rows())))
	}
	if blk.Line > 0 {
		parts = append(parts, fmt.Sprintf("@%d", blk.Line))
	}
	return strings.Join(parts, " ")
}

// Preview returns the first line of a block's content, quoted, or "" for
// blocks without content of their own.
func Preview(blk *adast.Block) string {
	var text string
	switch {
	case blk.Item != nil && len(blk.Item.Terms) > 0:
		text = strings.Join(blk.Item.Terms, "; ")
	case blk.Item != nil || blk.Cell != nil:
		text = blk.Text()
	case len(blk.Lines) > 0:
		text = blk.Lines[0]
		if len(blk.Lines) > 1 {
			text += " " + ellipsis
		}
	}
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i] + " " + ellipsis
	}
	if text == "" {
		return ""
	}
	return fmt.Sprintf("%q", text)
}
