package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/adocblocks/internal/cli"
)

const (
	cleanDoc    = "* one\n* two\n"
	warningDoc  = "1. one\n3. three\n"
	errorDoc    = "[cols=\"2\"]\n|===\n|a |b |c\n|===\n"
	calloutsDoc = "[source,ruby]\n----\nputs 1 # <1>\n----\n<1> Prints one.\n"
)

// testDocs writes name/content pairs into a fresh directory plus an empty
// config so tests never pick up configuration from the repository.
func testDocs(t *testing.T, docs map[string]string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range docs {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfgFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("safe_mode: secure\n"), 0o644))
	return dir, cfgFile
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	args = append(args, "--color", "never")
	if args[0] == "parse" || args[0] == "check" {
		args = append(args, "--no-asciidoctorconfig")
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_CheckExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		strict   bool
		wantCode int
		contains string
	}{
		{"clean", cleanDoc, true, cli.ExitSuccess, "No issues found"},
		{"warning", warningDoc, false, cli.ExitSuccess, "list item index: expected 2, got 3"},
		{"warning strict", warningDoc, true, cli.ExitDiagnosticWarnings, "list item index"},
		{"error", errorDoc, false, cli.ExitDiagnosticErrors, "dropping cells from incomplete row"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir, cfgFile := testDocs(t, map[string]string{"doc.adoc": tt.content})
			args := []string{"check", "--config", cfgFile, dir}
			if tt.strict {
				args = append(args, "--strict")
			}

			stdout, _, err := execute(t, "", args...)
			assert.Equal(t, tt.wantCode, cli.ExitCode(err))
			if tt.wantCode != cli.ExitSuccess {
				require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
			}
			assert.Contains(t, stdout, tt.contains)
		})
	}
}

func TestIntegration_CheckJSON(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testDocs(t, map[string]string{
		"a.adoc":        cleanDoc,
		"b/nested.adoc": warningDoc,
		"notes.txt":     warningDoc,
	})

	stdout, _, err := execute(t, "", "check", "--config", cfgFile, "--format", "json", dir)
	require.NoError(t, err)

	var out struct {
		Files []struct {
			Path        string `json:"path"`
			Diagnostics []struct {
				Kind string `json:"kind"`
				Line int    `json:"line"`
			} `json:"diagnostics"`
			Document any `json:"document"`
		} `json:"files"`
		Summary struct {
			Files    int `json:"filesParsed"`
			Warnings int `json:"warnings"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	require.Len(t, out.Files, 2)
	assert.True(t, strings.HasSuffix(out.Files[0].Path, "a.adoc"))
	assert.True(t, strings.HasSuffix(out.Files[1].Path, filepath.Join("b", "nested.adoc")))
	require.Len(t, out.Files[1].Diagnostics, 1)
	assert.Equal(t, 2, out.Files[1].Diagnostics[0].Line)
	assert.Nil(t, out.Files[0].Document, "check output omits documents")
	assert.Equal(t, 2, out.Summary.Files)
	assert.Equal(t, 1, out.Summary.Warnings)
}

func TestIntegration_CheckIgnore(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testDocs(t, map[string]string{
		"keep.adoc":       cleanDoc,
		"build/skip.adoc": errorDoc,
	})

	_, _, err := execute(t, "", "check", "--config", cfgFile, "--ignore", "build/**", dir)
	assert.NoError(t, err)
}

func TestIntegration_ParseTree(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testDocs(t, map[string]string{"guide.adoc": calloutsDoc})

	stdout, _, err := execute(t, "", "parse", "--config", cfgFile, "--width", "200", filepath.Join(dir, "guide.adoc"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "guide.adoc")
	assert.Contains(t, stdout, "listing")
	assert.Contains(t, stdout, "callout_list")
}

func TestIntegration_ParseOutputFile(t *testing.T) {
	t.Parallel()

	dir, cfgFile := testDocs(t, map[string]string{"doc.adoc": cleanDoc})
	output := filepath.Join(t.TempDir(), "dump.yaml")

	stdout, _, err := execute(t, "", "parse", "--config", cfgFile,
		"--format", "yaml", "--output", output, filepath.Join(dir, "doc.adoc"))
	require.NoError(t, err)
	assert.Empty(t, stdout)

	raw, err := os.ReadFile(output)
	require.NoError(t, err)

	var dump struct {
		Files []struct {
			Document struct {
				Context  string `yaml:"context"`
				Children []struct {
					Context string `yaml:"context"`
				} `yaml:"children"`
			} `yaml:"document"`
		} `yaml:"files"`
	}
	require.NoError(t, yaml.Unmarshal(raw, &dump))
	require.Len(t, dump.Files, 1)
	assert.Equal(t, "document", dump.Files[0].Document.Context)
	require.Len(t, dump.Files[0].Document.Children, 1)
	assert.Equal(t, "ulist", dump.Files[0].Document.Children[0].Context)
}

func TestIntegration_ParseStdin(t *testing.T) {
	t.Parallel()

	_, cfgFile := testDocs(t, nil)

	stdout, _, err := execute(t, "[#{anchor}]\n* one\n", "parse", "--config", cfgFile,
		"--format", "json", "-a", "anchor=intro", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"intro"`)
}

func TestIntegration_ParseRejectsTextFormat(t *testing.T) {
	t.Parallel()

	_, cfgFile := testDocs(t, nil)

	_, _, err := execute(t, "", "parse", "--config", cfgFile, "--format", "summary", "-")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir, _ := testDocs(t, map[string]string{"doc.adoc": cleanDoc})
	cfgFile := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("safe_mode: paranoid\n"), 0o644))

	_, _, err := execute(t, "", "check", "--config", cfgFile, dir)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_MissingPath(t *testing.T) {
	t.Parallel()

	_, cfgFile := testDocs(t, nil)

	_, _, err := execute(t, "", "check", "--config", cfgFile, filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), ".adocblocks.yml")

	_, _, err := execute(t, "", "init", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "safe_mode: secure")

	_, _, err = execute(t, "", "init", "--output", output)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err), "existing file needs --force")

	_, _, err = execute(t, "", "init", "--output", output, "--force", "--full")
	assert.NoError(t, err)
}
