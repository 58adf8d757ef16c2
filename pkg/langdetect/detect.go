// Package langdetect guesses the language of unlabelled source blocks.
//
// Detection runs a shebang check, then a set of cheap content rules, then
// the go-enry classifier restricted to languages commonly shown in
// AsciiDoc listings. Inconclusive input yields no language.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fallback is returned by Detect when no language could be determined.
const Fallback = "text"

// classifierCandidates limits the enry classifier to likely languages.
//
//nolint:gochecknoglobals // Read-only table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust",
	"Java", "Kotlin", "C", "C++", "C#", "SQL", "JSON", "YAML", "XML",
	"HTML", "CSS", "Dockerfile",
}

// rule recognizes a language from a strongly indicative pattern.
type rule struct {
	lang  string
	match func(text string, trimmed []byte) bool
}

//nolint:gochecknoglobals // Read-only table, checked in order.
var rules = []rule{
	{lang: "go", match: func(_ string, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{lang: "console", match: func(text string, _ []byte) bool {
		return strings.HasPrefix(strings.TrimSpace(text), "$ ")
	}},
	{lang: "xml", match: func(_ string, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("<?xml"))
	}},
	{lang: "html", match: func(_ string, trimmed []byte) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.Contains(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html"))
	}},
	{lang: "java", match: func(text string, _ []byte) bool {
		return strings.Contains(text, "public class ") || strings.Contains(text, "public static void main")
	}},
	{lang: "ruby", match: func(text string, _ []byte) bool {
		return strings.Contains(text, "require '") || (strings.Contains(text, "def ") && strings.Contains(text, "\nend"))
	}},
	{lang: "python", match: func(text string, _ []byte) bool {
		return (strings.Contains(text, "def ") && strings.Contains(text, "):")) || strings.Contains(text, "__name__")
	}},
	{lang: "json", match: func(_ string, trimmed []byte) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`":`))
	}},
	{lang: "sql", match: func(text string, _ []byte) bool {
		upper := strings.ToUpper(strings.TrimSpace(text))
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{lang: "rust", match: func(text string, _ []byte) bool {
		return strings.Contains(text, "fn main()") || strings.Contains(text, "println!") || strings.Contains(text, "let mut ")
	}},
	{lang: "javascript", match: func(text string, _ []byte) bool {
		return strings.Contains(text, "console.log") || strings.Contains(text, "=> {")
	}},
	{lang: "yaml", match: func(text string, _ []byte) bool {
		return yamlKeys(text) >= 2
	}},
}

// Detect returns the language of content, or Fallback.
func Detect(content []byte) string {
	if lang, ok := detect(content); ok {
		return lang
	}
	return Fallback
}

// DetectLines returns the language of a block given as lines. ok is false
// when detection is inconclusive.
func DetectLines(lines []string) (string, bool) {
	return detect([]byte(strings.Join(lines, "\n")))
}

func detect(content []byte) (string, bool) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang), true
	}

	text := string(content)
	for _, r := range rules {
		if r.match(text, trimmed) {
			return r.lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang), true
	}

	return "", false
}

// yamlKeys counts lines shaped like YAML mappings or sequence entries.
func yamlKeys(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ": ") && !strings.ContainsAny(line, "({;") && !strings.HasPrefix(line, `"`) {
			count++
		}
		if strings.HasPrefix(line, "- ") {
			count++
		}
	}
	return count
}

// normalize converts enry language names to AsciiDoc source languages.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	case "C#":
		return "csharp"
	default:
		return strings.ToLower(lang)
	}
}
