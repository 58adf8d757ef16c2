package callout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adocblocks/pkg/callout"
)

func TestRegistrar_RegisterAndIDs(t *testing.T) {
	t.Parallel()

	reg := callout.NewRegistrar()
	assert.Equal(t, "CO1-1", reg.Register(1))
	assert.Equal(t, "CO1-2", reg.Register(2))
	assert.Equal(t, "CO1-3", reg.Register(2))

	assert.Equal(t, []string{"CO1-1"}, reg.IDs(1))
	assert.Equal(t, "CO1-2 CO1-3", reg.JoinedIDs(2))
	assert.Empty(t, reg.IDs(3))

	reg.NextList()
	assert.Equal(t, 2, reg.ListIndex())
	assert.Equal(t, "CO2-1", reg.Register(1))
	assert.Equal(t, []string{"CO2-1"}, reg.IDs(1))
}

func TestRegistrar_RewindAndReadNextID(t *testing.T) {
	t.Parallel()

	reg := callout.NewRegistrar()
	reg.Register(1)
	reg.Register(2)
	reg.NextList()
	reg.Register(1)

	reg.Rewind()
	assert.Equal(t, "CO1-1", reg.ReadNextID())
	assert.Equal(t, "CO1-2", reg.ReadNextID())
	assert.Empty(t, reg.ReadNextID())

	reg.NextList()
	assert.Equal(t, "CO2-1", reg.ReadNextID())
}

func TestScanner_ScanLine(t *testing.T) {
	t.Parallel()

	scanner := callout.NewScanner(nil)

	tests := []struct {
		name  string
		line  string
		want  []callout.Marker
		count int
	}{
		{name: "none", line: "puts 'hello'", count: 0},
		{name: "single", line: "require 'sinatra' <1>", count: 1},
		{name: "two with space", line: "get '/hi' do <2> <3>", count: 2},
		{name: "two adjacent", line: "x <1><2>", count: 2},
		{name: "auto", line: "y <.>", count: 1},
		{name: "xml", line: "<a/> <!--1-->", count: 1},
		{name: "not at end", line: "a <1> b", count: 0},
		{name: "not a number", line: "List<T>", count: 0},
		{name: "mixed forms stop", line: "x <1> <!--2-->", count: 1},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, scanner.ScanLine(testCase.line), testCase.count)
		})
	}
}

func TestScanner_EscapedMarker(t *testing.T) {
	t.Parallel()

	scanner := callout.NewScanner(nil)
	markers := scanner.ScanLine(`puts "hi" \<1>`)
	require.Len(t, markers, 1)
	assert.True(t, markers[0].Escaped)
	assert.Equal(t, 1, markers[0].Number)
	assert.Equal(t, 10, markers[0].Offset)
}

func TestScanner_Catalog(t *testing.T) {
	t.Parallel()

	scanner := callout.NewScanner(nil)
	reg := callout.NewRegistrar()

	ids := scanner.Catalog([]string{
		"require 'sinatra' // <.>",
		"",
		"get '/hi' do <.> <.>",
		`  "Hello" \<4>`,
		"end",
	}, reg)

	assert.Equal(t, []string{"CO1-1", "CO1-2", "CO1-3"}, ids)
	assert.Equal(t, []string{"CO1-3"}, reg.IDs(3))
}

func TestScanner_SharedAcrossBlocks(t *testing.T) {
	t.Parallel()

	scanner := callout.NewScanner(nil)
	reg := callout.NewRegistrar()

	scanner.Catalog([]string{"a <1>"}, reg)
	scanner.Catalog([]string{"b <2>", "c <1>"}, reg)

	assert.Equal(t, "CO1-1 CO1-3", reg.JoinedIDs(1))
	assert.Equal(t, "CO1-2", reg.JoinedIDs(2))
}

func TestScanner_PrefixAndStrip(t *testing.T) {
	t.Parallel()

	scanner := callout.NewScanner(nil)
	assert.Equal(t, "//", scanner.Prefix("fmt.Println() // <1>"))
	assert.Equal(t, "fmt.Println()", scanner.Strip("fmt.Println() // <1>"))
	assert.Equal(t, "x = 1", scanner.Strip("x = 1 <1> <2>"))
	assert.Equal(t, "plain", scanner.Strip("plain"))

	none := ""
	bare := callout.NewScanner(&none)
	assert.Empty(t, bare.Prefix("fmt.Println() // <1>"))

	hash := "#"
	custom := callout.NewScanner(&hash)
	assert.Equal(t, "echo hi", custom.Strip("echo hi # <1>"))
}
