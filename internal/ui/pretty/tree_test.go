package pretty_test

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adocblocks/internal/ui/pretty"
	"github.com/yaklabco/adocblocks/pkg/parser"
)

func TestTreeFormatter(t *testing.T) {
	t.Parallel()

	res := parser.New(parser.Options{}).ParseText("doc.adoc", "* one\n** two\n\nclosing paragraph\n")
	got := pretty.NewTreeFormatter(pretty.NewStyles(false), 0).Format(res.Document)

	want := strings.Join([]string{
		"document @1",
		"├── list ulist level=1 @1",
		"│   └── list_item * @1 \"one\"",
		"│       └── list ulist level=2 @2",
		"│           └── list_item ** @2 \"two\"",
		"└── paragraph @4 \"closing paragraph\"",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestTreeFormatter_Truncates(t *testing.T) {
	t.Parallel()

	res := parser.New(parser.Options{}).ParseText("doc.adoc", strings.Repeat("wide ", 40)+"\n")
	const width = 30
	got := pretty.NewTreeFormatter(pretty.NewStyles(false), width).Format(res.Document)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(line), width, line)
	}
	assert.True(t, strings.HasSuffix(lines[1], "…"), lines[1])
}

func TestTreeFormatter_Nil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pretty.NewTreeFormatter(pretty.NewStyles(false), 0).Format(nil))
}
