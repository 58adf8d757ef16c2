package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adocblocks/pkg/adast"
)

//nolint:gochecknoglobals // Shared test fixture.
var testMatcher = newMatcher(NewDocumentHost(nil, ""))

// hashCommentHost treats lines starting with "#" as comments.
type hashCommentHost struct {
	*DocumentHost
}

func (hashCommentHost) IsComment(line string) bool {
	return strings.HasPrefix(line, "#")
}

func TestBreakKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		kind adast.Kind
		ok   bool
	}{
		{"'''", adast.KindThematicBreak, true},
		{"''''", adast.KindThematicBreak, true},
		{"<<<", adast.KindPageBreak, true},
		{"***", adast.KindThematicBreak, true},
		{"* * *", adast.KindThematicBreak, true},
		{"- - -", adast.KindThematicBreak, true},
		{"___", adast.KindThematicBreak, true},
		{"* *  *", 0, false},
		{"''", 0, false},
		{"    ***", 0, false},
		{"text", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			kind, ok := breakKind(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.kind, kind)
			}
		})
	}
}

func TestMatchDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line    string
		context string
		ok      bool
	}{
		{"----", "listing", true},
		{"------", "listing", true},
		{"---", "", false},
		{"----x", "", false},
		{"--", "open", true},
		{"....", "literal", true},
		{"====", "example", true},
		{"****", "sidebar", true},
		{"____", "quote", true},
		{"++++", "pass", true},
		{"////", "comment", true},
		{"|===", "table", true},
		{",===", "table", true},
		{"|=", "", false},
		{"```", "fenced_code", true},
		{"````", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			d, ok := matchDelimiter(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.context, d.context)
				if tt.context != "fenced_code" {
					assert.Equal(t, tt.line, d.terminator)
				}
			}
		})
	}

	d, ok := matchDelimiter("```ruby")
	require.True(t, ok)
	assert.Equal(t, "```", d.terminator)
	assert.Equal(t, "ruby", d.language)
}

func TestMatchDescription(t *testing.T) {
	t.Parallel()

	m, ok := testMatcher.description("CPU:: The brain", "")
	require.True(t, ok)
	assert.Equal(t, "CPU", m.term)
	assert.Equal(t, "::", m.marker)
	assert.Equal(t, "The brain", m.text)
	assert.True(t, m.hasText)

	m, ok = testMatcher.description("Nested:::", "")
	require.True(t, ok)
	assert.Equal(t, ":::", m.marker)
	assert.False(t, m.hasText)

	m, ok = testMatcher.description("  Q;; A", "")
	require.True(t, ok)
	assert.Equal(t, "Q", m.term)
	assert.Equal(t, ";;", m.marker)

	_, ok = testMatcher.description("a::b", "")
	assert.False(t, ok)

	_, ok = testMatcher.description("// note:: x", "")
	assert.False(t, ok)

	_, ok = testMatcher.description("Deeper:::", "::")
	assert.False(t, ok, "a fixed delimiter may not follow a colon")
}

func TestMatchDescription_HostComments(t *testing.T) {
	t.Parallel()

	mt := newMatcher(hashCommentHost{NewDocumentHost(nil, "")})

	_, ok := mt.description("# note:: x", "")
	assert.False(t, ok)

	m, ok := mt.description("// note:: x", "")
	require.True(t, ok)
	assert.Equal(t, "// note", m.term)
}

func TestIsSibling(t *testing.T) {
	t.Parallel()

	assert.True(t, testMatcher.sibling("* b", adast.ListUnordered, "*"))
	assert.False(t, testMatcher.sibling("** b", adast.ListUnordered, "*"))
	assert.True(t, testMatcher.sibling("7. b", adast.ListOrdered, "1."))
	assert.False(t, testMatcher.sibling("b. b", adast.ListOrdered, "1."))
	assert.True(t, testMatcher.sibling(".. b", adast.ListOrdered, ".."))
	assert.True(t, testMatcher.sibling("<4> b", adast.ListCallout, "<1>"))
	assert.True(t, testMatcher.sibling("Term::", adast.ListDescription, "::"))
	assert.False(t, testMatcher.sibling("Term:::", adast.ListDescription, "::"))
}

func TestClassifyItemLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		line         string
		withinNested bool
		want         Decision
	}{
		{"continuation", "+", false, AttachViaContinuation},
		{"sibling", "* next", false, CloseList},
		{"nested unordered", "** child", false, OpenList},
		{"nested ordered", ". step", false, OpenList},
		{"nested description", "term:: def", false, OpenList},
		{"unordered inside nested", "** child", true, Continue},
		{"description inside nested", "term:: def", true, OpenList},
		{"text", "more text", false, Continue},
		{"blank", "", false, NotAMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := testMatcher.classify(tt.line, adast.ListUnordered, "*", tt.withinNested)
			assert.Equal(t, tt.want, got, got.String())
		})
	}
}

func TestParseAttributeList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want map[string]string
	}{
		{
			name: "style shorthand",
			text: "source#main.lead.wide%linenums,ruby",
			want: map[string]string{
				"1": "source#main.lead.wide%linenums", "2": "ruby",
				"style": "source", "id": "main", "role": "lead wide", "linenums-option": "",
			},
		},
		{
			name: "named and quoted",
			text: `quote, "Abraham Lincoln", title='Speech, 1863'`,
			want: map[string]string{
				"1": "quote", "2": "Abraham Lincoln", "style": "quote", "title": "Speech, 1863",
			},
		},
		{
			name: "options",
			text: `cols="1,2", options="header,footer"`,
			want: map[string]string{
				"cols": "1,2", "header-option": "", "footer-option": "",
			},
		},
		{
			name: "role shorthand without style",
			text: ".lead,role=extra",
			want: map[string]string{"1": ".lead", "role": "lead extra"},
		},
		{
			name: "empty positional",
			text: ",python",
			want: map[string]string{"2": "python"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := make(map[string]string)
			parseAttributeList(tt.text, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstituteAttributes(t *testing.T) {
	t.Parallel()

	resolve := func(name string) (string, bool) {
		if name == "lang" {
			return "ruby", true
		}
		return "", false
	}

	assert.Equal(t, "ruby", substituteAttributes("{lang}", resolve))
	assert.Equal(t, "ruby and {missing}", substituteAttributes("{LANG} and {missing}", resolve))
	assert.Equal(t, "{lang}", substituteAttributes(`\{lang}`, resolve))
	assert.Equal(t, "plain", substituteAttributes("plain", resolve))
}

func TestOrdinals(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "XIV", intToRoman(14))
	assert.Equal(t, 14, romanToInt("xiv"))
	assert.Equal(t, 1994, romanToInt("MCMXCIV"))

	scheme, ok := matchOrderedScheme("iv)")
	require.True(t, ok)
	assert.Equal(t, "lowerroman", scheme.style)
	assert.Equal(t, 4, ordinalOf(scheme, "iv)"))
	assert.Equal(t, "v", formatOrdinal(scheme, 5))

	scheme, ok = matchOrderedScheme("C.")
	require.True(t, ok)
	assert.Equal(t, "upperalpha", scheme.style)
	assert.Equal(t, 3, ordinalOf(scheme, "C."))
	assert.Equal(t, "D", formatOrdinal(scheme, 4))

	assert.Equal(t, "1.", normalizeOrderedMarker("12."))
	assert.Equal(t, "..", normalizeOrderedMarker(".."))
}
