package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adocblocks/pkg/adast"
	"github.com/yaklabco/adocblocks/pkg/callout"
	"github.com/yaklabco/adocblocks/pkg/diag"
	"github.com/yaklabco/adocblocks/pkg/parser"
)

func TestCalloutList_Correlation(t *testing.T) {
	t.Parallel()

	source := "----\nputs 'a' <1>\nputs 'b' <2>\nputs 'c' <2>\n----\n<1> First\n<2> Second"
	result := parse(t, source)

	require.Len(t, result.Document.Children, 2)
	listing := result.Document.Children[0]
	assert.Equal(t, "CO1-1 CO1-2 CO1-3", listing.Attr("callouts"))

	colist := result.Document.Children[1]
	assert.Equal(t, adast.KindCalloutList, colist.Kind)
	assert.Equal(t, "arabic", colist.Style)
	require.Len(t, colist.Children, 2)
	assert.Equal(t, "First", colist.Children[0].Text())
	assert.Equal(t, "<1>", colist.Children[0].Item.Marker)
	assert.Equal(t, "CO1-1", colist.Children[0].Attr("coids"))
	assert.Equal(t, "CO1-2 CO1-3", colist.Children[1].Attr("coids"))
	assert.Empty(t, result.Diagnostics)
}

func TestCalloutList_SecondListAdvances(t *testing.T) {
	t.Parallel()

	source := "----\nx # <1>\n----\n<1> one\n\n----\ny // <1>\n----\n<1> again"
	result := parse(t, source)

	require.Len(t, result.Document.Children, 4)
	assert.Equal(t, "CO1-1", result.Document.Children[1].Children[0].Attr("coids"))
	assert.Equal(t, "CO2-1", result.Document.Children[3].Children[0].Attr("coids"))
}

func TestCalloutList_Sequence(t *testing.T) {
	t.Parallel()

	source := "----\nline <1>\nother <3>\n----\n<1> one\n<3> three"
	result := parse(t, source)

	assert.Equal(t, []string{
		"callout list item index: expected 2, got 3",
		"no callout found for <2>",
	}, messages(result))
	for _, d := range result.Diagnostics {
		assert.Equal(t, diag.SequenceViolation, d.Kind)
		assert.Equal(t, 6, d.Line)
	}
}

func TestCalloutList_AutoNumbered(t *testing.T) {
	t.Parallel()

	source := "----\nfirst <.>\nsecond <.>\n----\n<.> one\n<.> two"
	result := parse(t, source)

	colist := result.Document.Children[1]
	require.Len(t, colist.Children, 2)
	assert.Equal(t, "CO1-1", colist.Children[0].Attr("coids"))
	assert.Equal(t, "CO1-2", colist.Children[1].Attr("coids"))
	assert.Empty(t, result.Diagnostics)
}

func TestCalloutList_WithoutCallouts(t *testing.T) {
	t.Parallel()

	result := parse(t, "<1> orphan")

	require.Len(t, result.Document.Children, 1)
	assert.Equal(t, []string{"no callout found for <1>"}, messages(result))
}

func TestCallouts_LineCommentAttribute(t *testing.T) {
	t.Parallel()

	source := "[source,erlang,line-comment=%]\n----\nok. % <1>\n----\n<1> done"
	result := parse(t, source)

	assert.Equal(t, "CO1-1", result.Document.Children[0].Attr("callouts"))
	assert.Equal(t, "CO1-1", result.Document.Children[1].Children[0].Attr("coids"))
}

func TestCallouts_SharedRegistrar(t *testing.T) {
	t.Parallel()

	reg := callout.NewRegistrar()
	p := parser.New(parser.Options{Registrar: reg})

	p.ParseText("a.adoc", "----\nx <1>\n----\n<1> first")
	result := p.ParseText("a.adoc", "----\ny <1>\n----\n<1> second")

	assert.Equal(t, "CO2-1", result.Document.Children[1].Children[0].Attr("coids"))
	assert.Equal(t, 3, reg.ListIndex())
}

func TestTable_NestedCellsShareRegistrar(t *testing.T) {
	t.Parallel()

	source := "----\nx <1>\n----\n<1> outer\n\n[cols=\"1a\"]\n|===\n|\n----\ny <1>\n----\n<1> inner\n|==="
	result := parse(t, source)

	require.Len(t, result.Document.Children, 3)
	tbl := result.Document.Children[2]
	assert.Equal(t, adast.KindTable, tbl.Kind)
	require.Len(t, tbl.Table.Body, 1)

	cell := tbl.Table.Body[0][0]
	assert.Equal(t, "asciidoc", cell.Cell.Style)
	require.Len(t, cell.Children, 2)
	assert.Equal(t, adast.KindListing, cell.Children[0].Kind)
	assert.Equal(t, 9, cell.Children[0].Line)
	assert.Equal(t, "CO2-1", cell.Children[0].Attr("callouts"))
	assert.Equal(t, "CO2-1", cell.Children[1].Children[0].Attr("coids"))
	assert.Empty(t, result.Diagnostics)
}

func TestTable_Formats(t *testing.T) {
	t.Parallel()

	result := parse(t, "|===\n|A |B\n\n|c |d\n|===\n\n,===\nx,y\n,===\n\n:===\nm:n\n:===")

	require.Len(t, result.Document.Children, 3)

	psv := result.Document.Children[0]
	assert.Equal(t, "psv", psv.Table.Format)
	assert.Empty(t, psv.Style)
	assert.True(t, psv.HasOption("header"))
	require.Len(t, psv.Table.Head, 1)
	require.Len(t, psv.Table.Body, 1)

	csv := result.Document.Children[1]
	assert.Equal(t, "csv", csv.Table.Format)
	require.Len(t, csv.Table.Body, 1)
	assert.Len(t, csv.Table.Body[0], 2)

	dsv := result.Document.Children[2]
	assert.Equal(t, "dsv", dsv.Table.Format)
	require.Len(t, dsv.Table.Body, 1)
	assert.Len(t, dsv.Table.Body[0], 2)
}

func TestTable_CommentLinesDropped(t *testing.T) {
	t.Parallel()

	result := parse(t, "[cols=\"1,1\"]\n|===\n|a\n// not a cell\n|b\n|===")

	tbl := result.Document.Children[0]
	require.Len(t, tbl.Table.Body, 1)
	assert.Equal(t, "a", tbl.Table.Body[0][0].Cell.Text)
	assert.Equal(t, "b", tbl.Table.Body[0][1].Cell.Text)
}
