package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every option. If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// optionDoc describes one configuration key for the full template.
type optionDoc struct {
	Key         string
	Value       string
	Description string
}

//nolint:gochecknoglobals // Static documentation table.
var optionDocs = []optionDoc{
	{
		Key: "safe_mode", Value: "secure",
		Description: "Safe mode reported to the parser: unsafe, safe, server or secure.",
	},
	{
		Key: "attributes", Value: "{}",
		Description: "Document attributes set before parsing. Attribute entries in the " +
			"document override them. Useful keys include line-comment and source-language.",
	},
	{
		Key: "lists.bullet_styles", Value: "[]",
		Description: "Default styles for unordered lists by nesting level, for example " +
			"[disc, circle, square]. Lists with an explicit style keep it.",
	},
	{
		Key: "lists.interactive", Value: "false",
		Description: "Mark every checklist as interactive.",
	},
	{
		Key: "tables.implicit_header", Value: "true",
		Description: "Promote the first table row to a header when a blank line follows it.",
	},
	{
		Key: "callouts.line_comment", Value: `"//"`,
		Description: "Line comment prefix callout markers may follow. Leave unset to accept " +
			"the built-in prefixes; an empty string accepts none.",
	},
	{
		Key: "source.detect_language", Value: "false",
		Description: "Detect the language of [source] blocks that do not name one.",
	},
	{
		Key: "source.default_language", Value: `""`,
		Description: "Language used for [source] blocks when none is named or detected.",
	},
	{
		Key: "ignore", Value: "[]",
		Description: "Glob patterns for files to skip.",
	},
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Safe mode: unsafe, safe, server or secure
safe_mode: secure

# Document attributes set before parsing
# attributes:
#   source-language: go
#   line-comment: "//"

# Infer header rows from a trailing blank line
# tables:
#   implicit_header: true

# File patterns to ignore (glob patterns)
# ignore:
#   - "build/**"
`)

	return buf.Bytes()
}

// generateFullTemplate creates a template with every option documented.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# Every option is listed with its default value.\n")

	for _, doc := range optionDocs {
		fmt.Fprintf(&buf, "\n# %s\n", wrapComment(doc.Description, commentWrapWidth))
		fmt.Fprintf(&buf, "# %s: %s\n", doc.Key, doc.Value)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	cfg := map[string]any{
		"safe_mode":  string(SafeModeSecure),
		"attributes": map[string]string{},
		"lists": map[string]any{
			"interactive": false,
		},
		"tables": map[string]any{
			"implicit_header": true,
		},
		"source": map[string]any{
			"detect_language": false,
		},
		"ignore": []string{},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# adocblocks configuration
# See: https://github.com/yaklabco/adocblocks`
}
