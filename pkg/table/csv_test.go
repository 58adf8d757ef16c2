package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adocblocks/pkg/config"
	"github.com/yaklabco/adocblocks/pkg/diag"
)

func TestParse_CSVMixedRecords(t *testing.T) {
	t.Parallel()

	source := `Year,Make,Model,Description,Price
1997,Ford,E350,"ac, abs, moon",3000.00
1999,Chevy,"Venture ""Extended Edition""","",4900.00
1999,Chevy,"Venture ""Extended Edition, Very Large""",,5000.00
1996,Jeep,Grand Cherokee,"MUST SELL!
air, moon roof, loaded",4799.00
2000,Toyota,Tundra,"""This one's gonna to blow you're socks off,"" per the sticker",10000.00
2000,Toyota,Tundra,"Check it, ""this one's gonna to blow you're socks off"", per the sticker",10000.00`

	tbl, sink := parseTable(t, map[string]string{"format": "csv", "header-option": ""}, 3, source)

	assert.Zero(t, sink.Len())
	assert.Equal(t, "csv", tbl.Table.Format)
	assert.Equal(t, ",", tbl.Table.Separator)
	require.Len(t, tbl.Table.Columns, 5)
	require.Len(t, tbl.Table.Head, 1)
	require.Len(t, tbl.Table.Body, 6)

	body := tbl.Table.Body
	assert.Equal(t, "ac, abs, moon", body[0][3].Cell.Text)
	assert.Equal(t, `Venture "Extended Edition"`, body[1][2].Cell.Text)
	assert.Empty(t, body[1][3].Cell.Text)
	assert.Equal(t, `Venture "Extended Edition, Very Large"`, body[2][2].Cell.Text)
	assert.Empty(t, body[2][3].Cell.Text)
	assert.Equal(t, "MUST SELL!\nair, moon roof, loaded", body[3][3].Cell.Text)
	assert.Equal(t, `"This one's gonna to blow you're socks off," per the sticker`, body[4][3].Cell.Text)
	assert.Equal(t, `Check it, "this one's gonna to blow you're socks off", per the sticker`, body[5][3].Cell.Text)
	assert.Equal(t, "10000.00", body[5][4].Cell.Text)
}

func TestParse_CSVTrailingComma(t *testing.T) {
	t.Parallel()

	tbl, _ := parseTable(t, map[string]string{"format": "csv"}, 3, "A1,\nB1,B2")
	require.Len(t, tbl.Table.Columns, 2)
	require.Len(t, tbl.Table.Body, 2)
	assert.Equal(t, []string{"A1", ""}, cellTexts(tbl.Table.Body[0]))
	assert.Equal(t, []string{"B1", "B2"}, cellTexts(tbl.Table.Body[1]))
}

func TestParse_CSVUnclosedQuote(t *testing.T) {
	t.Parallel()

	tbl, sink := parseTable(t, map[string]string{"format": "csv"}, 3, "a,b\nc,\"")

	require.Len(t, tbl.Table.Body, 2)
	assert.Equal(t, []string{"c", ""}, cellTexts(tbl.Table.Body[1]))

	diags := sink.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "unclosed quote in CSV data; setting cell to empty", diags[0].Message)
	assert.Equal(t, diag.MalformedQuoting, diags[0].Kind)
	assert.Equal(t, 4, diags[0].Line)
}

func TestParse_CSVUnclosedQuoteWithContent(t *testing.T) {
	t.Parallel()

	tbl, sink := parseTable(t, map[string]string{"format": "csv"}, 3, "a,b\nc,\"xyz")

	require.Len(t, tbl.Table.Body, 2)
	assert.Equal(t, []string{"c", ""}, cellTexts(tbl.Table.Body[1]))

	diags := sink.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "unclosed quote in CSV data; setting cell to empty", diags[0].Message)
	assert.Equal(t, diag.MalformedQuoting, diags[0].Kind)
	assert.Equal(t, config.SeverityError, diags[0].Severity)
}

func TestParse_CSVQuotesOnOwnLines(t *testing.T) {
	t.Parallel()

	tbl, sink := parseTable(t, map[string]string{"format": "csv", "cols": "2"}, 3, "\"\nA\n\",\"\nB\n\"")

	assert.Zero(t, sink.Len())
	require.Len(t, tbl.Table.Body, 1)
	assert.Equal(t, []string{"A", "B"}, cellTexts(tbl.Table.Body[0]))
}

func TestParse_CSVNewlinesInQuotedValues(t *testing.T) {
	t.Parallel()

	source := "\"A\nB\nC\",\"one\n\ntwo\n\nthree\",\"do\n\nre\n\nme\""
	tbl, _ := parseTable(t, map[string]string{"format": "csv", "cols": "1,1,1l"}, 3, source)

	require.Len(t, tbl.Table.Body, 1)
	row := tbl.Table.Body[0]
	require.Len(t, row, 3)
	assert.Equal(t, "A\nB\nC", row[0].Cell.Text)
	assert.Equal(t, []string{"one", "two", "three"}, row[1].Cell.Paragraphs)
	assert.Equal(t, "literal", row[2].Cell.Style)
	assert.Equal(t, []string{"do", "", "re", "", "me"}, row[2].Lines)
}

func TestParse_CSVNoImplicitHeaderWhenFirstValueSpansLines(t *testing.T) {
	t.Parallel()

	tbl, _ := parseTable(t, map[string]string{"format": "csv"}, 2, "\"A1\n\nA1 continued\",B1\nA2,B2")
	assert.Empty(t, tbl.Table.Head)
	require.Len(t, tbl.Table.Body, 2)
	assert.Equal(t, "A1\n\nA1 continued", tbl.Table.Body[0][0].Cell.Text)
}

func TestParse_DSV(t *testing.T) {
	t.Parallel()

	source := `root:x:0:0:root:/root:/bin/bash
bin:x:1:1:bin:/bin:/sbin/nologin
mysql:x:27:27:MySQL\:Server:/var/lib/mysql:/bin/bash
gdm:x:42:42::/var/lib/gdm:/sbin/nologin
sshd:x:74:74:Privilege-separated SSH:/var/empty/sshd:/sbin/nologin
nobody:x:99:99:Nobody:/:/sbin/nologin`

	tbl, sink := parseTable(t, map[string]string{"format": "dsv"}, 3, source)

	assert.Zero(t, sink.Len())
	assert.Equal(t, ":", tbl.Table.Separator)
	require.Len(t, tbl.Table.Columns, 7)
	require.Len(t, tbl.Table.Body, 6)
	assert.Equal(t, "MySQL:Server", tbl.Table.Body[2][4].Cell.Text)
	assert.Empty(t, tbl.Table.Body[3][4].Cell.Text)

	for _, col := range tbl.Table.Columns[:6] {
		assert.InDelta(t, 14.2857, col.Percent, 1e-9)
	}
	assert.InDelta(t, 14.2858, tbl.Table.Columns[6].Percent, 1e-9)
}

func TestParse_DSVEdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   [][]string
	}{
		{
			name:   "trailing delimiter",
			source: "A1:\nB1:B2",
			want:   [][]string{{"A1", ""}, {"B1", "B2"}},
		},
		{
			name:   "blank lines between records",
			source: "a:b\nc:d\n\ne:f",
			want:   [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tbl, _ := parseTable(t, map[string]string{"format": "dsv"}, 3, testCase.source)
			require.Len(t, tbl.Table.Body, len(testCase.want))
			for i, row := range tbl.Table.Body {
				assert.Equal(t, testCase.want[i], cellTexts(row))
			}
		})
	}
}

func TestParse_Separators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		attrs         map[string]string
		source        string
		wantFormat    string
		wantSeparator string
		want          []string
	}{
		{
			name:          "tsv",
			attrs:         map[string]string{"format": "tsv"},
			source:        "a\tb\nc\td",
			wantFormat:    "tsv",
			wantSeparator: "\t",
			want:          []string{"c", "d"},
		},
		{
			name:          "escaped tab separator",
			attrs:         map[string]string{"format": "csv", "separator": `\t`},
			source:        "a\tb\nc\td",
			wantFormat:    "csv",
			wantSeparator: "\t",
			want:          []string{"c", "d"},
		},
		{
			name:          "csv with semicolons",
			attrs:         map[string]string{"format": "csv", "separator": ";"},
			source:        "a;b\n\"c;1\";d",
			wantFormat:    "csv",
			wantSeparator: ";",
			want:          []string{"c;1", "d"},
		},
		{
			name:          "psv with custom separator",
			attrs:         map[string]string{"separator": "¦"},
			source:        "¦a ¦b\n¦c ¦d",
			wantFormat:    "psv",
			wantSeparator: "¦",
			want:          []string{"c", "d"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tbl, sink := parseTable(t, testCase.attrs, 3, testCase.source)
			assert.Zero(t, sink.Len())
			assert.Equal(t, testCase.wantFormat, tbl.Table.Format)
			assert.Equal(t, testCase.wantSeparator, tbl.Table.Separator)
			require.Len(t, tbl.Table.Body, 2)
			assert.Equal(t, testCase.want, cellTexts(tbl.Table.Body[1]))
		})
	}
}

func TestParse_IllegalFormat(t *testing.T) {
	t.Parallel()

	tbl, sink := parseTable(t, map[string]string{"format": "xls"}, 3, "|a |b")

	assert.Equal(t, "psv", tbl.Table.Format)
	require.Len(t, tbl.Table.Body, 1)
	require.Equal(t, 1, sink.Len())
	assert.Equal(t, "illegal table format: xls", sink.Diagnostics()[0].Message)
	assert.Equal(t, diag.InvalidAttribute, sink.Diagnostics()[0].Kind)
}
