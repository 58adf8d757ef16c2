package adast_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/adocblocks/pkg/adast"
)

// sampleTree builds a document with a list and a one-row table.
func sampleTree() (*adast.Block, *adast.Block, *adast.Block) {
	doc := adast.NewDocument()

	list := adast.NewList(adast.ListUnordered, 1)
	list.List.Marker = "*"
	adast.AppendChild(list, adast.NewListItem("one", "*", 1))
	adast.AppendChild(list, adast.NewListItem("two", "*", 2))
	adast.AppendChild(doc, list)

	table := adast.NewTable(4)
	table.Table.Format = "psv"
	cell := adast.NewCell("a", 5)
	table.Table.Body = []adast.Row{{cell, adast.NewCell("b", 5)}}
	adast.AppendChild(doc, table)

	return doc, table, cell
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind adast.Kind
		want string
	}{
		{adast.KindDocument, "document"},
		{adast.KindListItem, "list_item"},
		{adast.KindCalloutList, "callout_list"},
		{adast.KindTableCell, "table_cell"},
		{adast.KindPageBreak, "page_break"},
		{adast.Kind(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestNewList_CalloutKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, adast.KindCalloutList, adast.NewList(adast.ListCallout, 1).Kind)
	assert.Equal(t, adast.KindList, adast.NewList(adast.ListOrdered, 1).Kind)
	assert.False(t, adast.ListCallout.Nestable())
	assert.True(t, adast.ListDescription.Nestable())
}

func TestBlock_Options(t *testing.T) {
	t.Parallel()

	blk := adast.NewTable(1)
	blk.SetOption("header")
	blk.SetOption("autowidth")
	blk.SetAttr("cols", "2")

	assert.True(t, blk.HasOption("header"))
	assert.False(t, blk.HasOption("footer"))
	assert.Equal(t, []string{"autowidth", "header"}, blk.Options())
	assert.Equal(t, "2", blk.Attr("cols"))
	assert.Empty(t, blk.Attr("frame"))
}

func TestWalk_VisitsCellsBeforeChildren(t *testing.T) {
	t.Parallel()

	doc, _, _ := sampleTree()

	var kinds []string
	err := adast.Walk(doc, func(blk *adast.Block) error {
		kinds = append(kinds, blk.Kind.String())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"document", "list", "list_item", "list_item", "table", "table_cell", "table_cell",
	}, kinds)
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	doc, _, _ := sampleTree()
	stop := errors.New("stop")

	visited := 0
	err := adast.Walk(doc, func(*adast.Block) error {
		visited++
		if visited == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, visited)
}

func TestFindAndParent(t *testing.T) {
	t.Parallel()

	doc, table, cell := sampleTree()

	assert.Len(t, adast.FindByKind(doc, adast.KindListItem), 2)
	assert.Len(t, adast.FindByContext(doc, "ulist"), 1)
	assert.Same(t, table, adast.ParentOf(doc, cell))
	assert.Same(t, doc, adast.ParentOf(doc, table))
	assert.Nil(t, adast.ParentOf(doc, adast.NewCell("x", 1)))

	first := adast.FindFirst(doc, func(blk *adast.Block) bool { return blk.Text() == "two" })
	require.NotNil(t, first)
	assert.Equal(t, 2, first.Line)
}

func TestShiftChild(t *testing.T) {
	t.Parallel()

	doc, table, _ := sampleTree()

	first := adast.ShiftChild(doc)
	assert.Equal(t, adast.KindList, first.Kind)
	assert.Same(t, table, adast.LastChild(doc))
	assert.Len(t, doc.Children, 1)
	assert.Nil(t, adast.ShiftChild(adast.NewDocument()))
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	doc, _, _ := sampleTree()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		out, err := adast.ToJSON(doc, true)
		require.NoError(t, err)

		var snap adast.Snapshot
		require.NoError(t, json.Unmarshal(out, &snap))
		assert.Equal(t, "document", snap.Kind)
		require.Len(t, snap.Children, 2)
		assert.Equal(t, "ulist", snap.Children[0].Context)
		assert.Equal(t, "two", snap.Children[0].Children[1].Text)
		require.Len(t, snap.Children[1].Body, 1)
		assert.Equal(t, "b", snap.Children[1].Body[0][1].Text)
		assert.Equal(t, 1, snap.Children[1].Body[0][1].Colspan)
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		out, err := adast.ToYAML(doc)
		require.NoError(t, err)

		var snap adast.Snapshot
		require.NoError(t, yaml.Unmarshal(out, &snap))
		assert.Equal(t, "psv", snap.Children[1].Format)
	})

	t.Run("nil block", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, adast.NewSnapshot(nil))
	})
}
