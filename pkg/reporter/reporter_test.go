package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/adocblocks/pkg/parser"
	"github.com/yaklabco/adocblocks/pkg/reporter"
	"github.com/yaklabco/adocblocks/pkg/runner"
)

const workDir = "/work"

// sampleResult parses two documents: a clean list and an out-of-sequence
// ordered list with an unterminated listing block.
func sampleResult() *runner.Result {
	r := runner.New(parser.New(parser.Options{}), nil)
	ctx := context.Background()
	return runner.Collect(
		r.ParseSource(ctx, filepath.Join(workDir, "clean.adoc"), []byte("* one\n* two\n")),
		r.ParseSource(ctx, filepath.Join(workDir, "broken.adoc"), []byte("1. one\n3. three\n\n----\nopen\n")),
		runner.FileOutcome{Path: filepath.Join(workDir, "gone.adoc"), Error: errors.New("file not found")},
	)
}

func report(t *testing.T, opts reporter.Options) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"
	opts.WorkingDir = workDir

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	n, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	return buf.String(), n
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "tree", want: reporter.FormatTree},
		{input: "json", want: reporter.FormatJSON},
		{input: "yml", want: reporter.FormatYAML},
		{input: "summary", want: reporter.FormatSummary},
		{input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml", Writer: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.Options{Format: reporter.FormatText, ShowContext: true, ShowSummary: true})

	assert.Equal(t, 2, n)
	assert.Contains(t, out, "gone.adoc: error: file not found")
	assert.Contains(t, out, "broken.adoc (2 issues)")
	assert.Contains(t, out, "broken.adoc:2  warning  list item index: expected 2, got 3")
	assert.Contains(t, out, "        3. three\n")
	assert.Contains(t, out, "        ----\n")
	assert.NotContains(t, out, "clean.adoc")
	assert.Contains(t, out, "1 unreadable")
}

func TestTreeReporter(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatTree, Width: 200})

	assert.Contains(t, out, "clean.adoc\n")
	assert.Contains(t, out, "├── list_item * @1 \"one\"")
	assert.Contains(t, out, "└── list_item * @2 \"two\"")
	assert.Contains(t, out, "(unterminated-container)")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.Options{Format: reporter.FormatJSON, IncludeDocuments: true})
	assert.Equal(t, 2, n)

	var output reporter.Output
	require.NoError(t, json.Unmarshal([]byte(out), &output))

	require.Len(t, output.Files, 3)
	assert.Equal(t, "broken.adoc", output.Files[1].Path)
	assert.Equal(t, "utf-8", output.Files[1].Encoding)
	require.NotNil(t, output.Files[0].Document)
	assert.Equal(t, "document", output.Files[0].Document.Kind)
	assert.Equal(t, "file not found", output.Files[2].Error)
	assert.Equal(t, 2, output.Summary.Issues)
	assert.Equal(t, 1, output.Summary.FilesErrored)
}

func TestJSONReporter_CompactWithoutDocuments(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatJSON, Compact: true})

	assert.Equal(t, 1, strings.Count(out, "\n"), "compact output is one line")
	assert.NotContains(t, out, `"document"`)
}

func TestYAMLReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.Options{Format: reporter.FormatYAML})
	assert.Equal(t, 2, n)

	var output map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &output))
	assert.Equal(t, "1.0.0", output["version"])
	assert.Contains(t, out, "kind: sequence-violation")
	assert.Contains(t, out, "total_issues: 2")
}
