package adast

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Snapshot is a serializable, renderer-neutral view of a block tree.
type Snapshot struct {
	Kind       string            `json:"kind" yaml:"kind"`
	Context    string            `json:"context" yaml:"context"`
	Line       int               `json:"line" yaml:"line"`
	Style      string            `json:"style,omitempty" yaml:"style,omitempty"`
	ID         string            `json:"id,omitempty" yaml:"id,omitempty"`
	Title      string            `json:"title,omitempty" yaml:"title,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Lines      []string          `json:"lines,omitempty" yaml:"lines,omitempty"`

	// List and item fields.
	Level  int      `json:"level,omitempty" yaml:"level,omitempty"`
	Start  int      `json:"start,omitempty" yaml:"start,omitempty"`
	Marker string   `json:"marker,omitempty" yaml:"marker,omitempty"`
	Text   string   `json:"text,omitempty" yaml:"text,omitempty"`
	Terms  []string `json:"terms,omitempty" yaml:"terms,omitempty"`

	// Table fields.
	Format  string           `json:"format,omitempty" yaml:"format,omitempty"`
	Columns []ColumnSnapshot `json:"columns,omitempty" yaml:"columns,omitempty"`
	Head    [][]*Snapshot    `json:"head,omitempty" yaml:"head,omitempty"`
	Body    [][]*Snapshot    `json:"body,omitempty" yaml:"body,omitempty"`
	Foot    [][]*Snapshot    `json:"foot,omitempty" yaml:"foot,omitempty"`

	// Cell fields.
	Colspan    int      `json:"colspan,omitempty" yaml:"colspan,omitempty"`
	Rowspan    int      `json:"rowspan,omitempty" yaml:"rowspan,omitempty"`
	HAlign     string   `json:"halign,omitempty" yaml:"halign,omitempty"`
	VAlign     string   `json:"valign,omitempty" yaml:"valign,omitempty"`
	Paragraphs []string `json:"paragraphs,omitempty" yaml:"paragraphs,omitempty"`

	Children []*Snapshot `json:"children,omitempty" yaml:"children,omitempty"`
}

// ColumnSnapshot is the serializable form of a Column.
type ColumnSnapshot struct {
	Number  int     `json:"number" yaml:"number"`
	Width   int     `json:"width" yaml:"width"`
	Percent float64 `json:"percent" yaml:"percent"`
	HAlign  string  `json:"halign" yaml:"halign"`
	VAlign  string  `json:"valign" yaml:"valign"`
	Style   string  `json:"style,omitempty" yaml:"style,omitempty"`
}

// NewSnapshot builds a snapshot of blk and its descendants.
func NewSnapshot(blk *Block) *Snapshot {
	if blk == nil {
		return nil
	}

	snap := &Snapshot{
		Kind:       blk.Kind.String(),
		Context:    blk.Context,
		Line:       blk.Line,
		Style:      blk.Style,
		ID:         blk.ID,
		Title:      blk.Title,
		Attributes: blk.Attributes,
		Lines:      blk.Lines,
	}

	if blk.List != nil {
		snap.Level = blk.List.Level
		snap.Start = blk.List.Start
		snap.Marker = blk.List.Marker
	}

	if blk.Item != nil {
		snap.Text = blk.Item.Text
		snap.Terms = blk.Item.Terms
		snap.Marker = blk.Item.Marker
	}

	if blk.Table != nil {
		snap.Format = blk.Table.Format
		for _, col := range blk.Table.Columns {
			snap.Columns = append(snap.Columns, ColumnSnapshot{
				Number:  col.Number,
				Width:   col.Width,
				Percent: col.Percent,
				HAlign:  col.HAlign,
				VAlign:  col.VAlign,
				Style:   col.Style,
			})
		}
		snap.Head = snapshotRows(blk.Table.Head)
		snap.Body = snapshotRows(blk.Table.Body)
		snap.Foot = snapshotRows(blk.Table.Foot)
	}

	if blk.Cell != nil {
		snap.Text = blk.Cell.Text
		snap.Colspan = blk.Cell.Colspan
		snap.Rowspan = blk.Cell.Rowspan
		snap.HAlign = blk.Cell.HAlign
		snap.VAlign = blk.Cell.VAlign
		snap.Style = blk.Cell.Style
		snap.Paragraphs = blk.Cell.Paragraphs
	}

	for _, child := range blk.Children {
		snap.Children = append(snap.Children, NewSnapshot(child))
	}

	return snap
}

func snapshotRows(rows []Row) [][]*Snapshot {
	if len(rows) == 0 {
		return nil
	}
	out := make([][]*Snapshot, 0, len(rows))
	for _, row := range rows {
		cells := make([]*Snapshot, 0, len(row))
		for _, cell := range row {
			cells = append(cells, NewSnapshot(cell))
		}
		out = append(out, cells)
	}
	return out
}

// ToJSON serializes the block tree as JSON.
func ToJSON(blk *Block, compact bool) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if !compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(NewSnapshot(blk)); err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAML serializes the block tree as YAML.
func ToYAML(blk *Block) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(NewSnapshot(blk)); err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}
