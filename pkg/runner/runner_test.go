package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adocblocks/pkg/adast"
	"github.com/yaklabco/adocblocks/pkg/config"
	"github.com/yaklabco/adocblocks/pkg/diag"
	"github.com/yaklabco/adocblocks/pkg/fsutil"
	"github.com/yaklabco/adocblocks/pkg/parser"
	"github.com/yaklabco/adocblocks/pkg/runner"
)

func newRunner() *runner.Runner {
	return runner.New(parser.New(parser.Options{Config: config.NewConfig()}), nil)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_ParsesFilesInPathOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "b.adoc", "* one\n* two\n")
	writeFile(t, dir, "a.adoc", "Just a paragraph.\n")
	writeFile(t, dir, "c/d.adoc", "----\nunterminated\n")

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	assert.Equal(t, filepath.Join(dir, "a.adoc"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.adoc"), result.Files[1].Path)
	assert.Equal(t, filepath.Join(dir, "c", "d.adoc"), result.Files[2].Path)

	lists := adast.FindByKind(result.Files[1].Document, adast.KindList)
	require.Len(t, lists, 1)
	assert.Len(t, lists[0].Items(), 2)

	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesParsed)
	assert.Equal(t, 1, result.Stats.FilesWithIssues)
	assert.Equal(t, 1, result.Stats.ByKind[diag.UnterminatedContainer])
	assert.True(t, result.HasIssues())
}

func TestRun_CountsBlocks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "doc.adoc", "First.\n\n* item\n")

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	// paragraph, list, list item
	assert.Equal(t, 3, result.Stats.Blocks)
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasFailures())
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "doc.adoc", "text\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseFile_ReadError(t *testing.T) {
	t.Parallel()

	outcome := newRunner().ParseFile(context.Background(), filepath.Join(t.TempDir(), "gone.adoc"))
	require.ErrorIs(t, outcome.Error, fsutil.ErrNotFound)
	assert.Nil(t, outcome.Document)

	result := runner.Collect(outcome)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.True(t, result.HasFailures())
}

func TestParseSource(t *testing.T) {
	t.Parallel()

	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte(". one\n. three\n")...)
	outcome := newRunner().ParseSource(context.Background(), "<stdin>", raw)
	require.NoError(t, outcome.Error)

	assert.Equal(t, fsutil.EncodingUTF8BOM, outcome.Encoding)
	require.NotNil(t, outcome.Document)
	assert.Len(t, adast.FindByKind(outcome.Document, adast.KindListItem), 2)

	result := runner.Collect(outcome)
	assert.Equal(t, 1, result.Stats.FilesParsed)
	assert.False(t, result.HasWarnings())
}

func TestCollect_Severities(t *testing.T) {
	t.Parallel()

	result := runner.Collect(
		runner.FileOutcome{Path: "a.adoc", Diagnostics: []diag.Diagnostic{
			{Kind: diag.SequenceViolation, Severity: config.SeverityWarning, Line: 2},
			{Kind: diag.InvalidAttribute, Line: 3},
		}},
		runner.FileOutcome{Path: "b.adoc", Diagnostics: []diag.Diagnostic{
			{Kind: diag.ConstraintViolation, Severity: config.SeverityError, Line: 1},
		}},
	)

	assert.Equal(t, 3, result.Stats.DiagnosticsTotal)
	assert.Equal(t, 2, result.Stats.BySeverity[config.SeverityWarning])
	assert.Equal(t, 1, result.Stats.BySeverity[config.SeverityError])
	assert.Equal(t, 2, result.Stats.FilesWithIssues)
	assert.True(t, result.HasWarnings())
	assert.True(t, result.HasFailures())
}
