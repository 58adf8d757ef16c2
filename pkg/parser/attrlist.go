package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Reserved attribute keys filled from block metadata lines.
const (
	attrStyle = "style"
	attrID    = "id"
	attrTitle = "title"
	attrRole  = "role"
)

//nolint:gochecknoglobals // Compiled once.
var attributeReferenceRx = regexp.MustCompile(`\\?\{([\p{L}\p{N}_][\p{L}\p{N}_-]*)\}`)

// parseAttributeList parses the text between the brackets of a block
// attribute line into attrs. Positional attributes are stored under "1",
// "2", ... and the first one is expanded as a style shorthand
// (style#id.role%option). Values of options/opts become "<name>-option"
// keys.
func parseAttributeList(text string, attrs map[string]string) {
	pos := 0
	index := 0
	n := len(text)

	skipBlank := func() {
		for pos < n && (text[pos] == ' ' || text[pos] == '\t') {
			pos++
		}
	}

	for {
		skipBlank()
		if pos >= n {
			return
		}

		name, quoted := scanAttributeValue(text, &pos)
		skipBlank()

		if pos < n && text[pos] == '=' && !quoted {
			pos++
			skipBlank()
			value, _ := scanAttributeValue(text, &pos)
			setNamedAttribute(attrs, strings.TrimSpace(name), value)
		} else {
			index++
			if index == 1 && !quoted {
				parseStyleShorthand(name, attrs)
			}
			if name != "" || quoted {
				attrs[strconv.Itoa(index)] = name
			}
		}

		skipBlank()
		if pos >= n || text[pos] != ',' {
			return
		}
		pos++
	}
}

// scanAttributeValue reads one quoted or unquoted value starting at *pos.
// Unquoted values end before the next ',' or '=' and are trimmed.
func scanAttributeValue(text string, pos *int) (string, bool) {
	n := len(text)
	if *pos < n && (text[*pos] == '"' || text[*pos] == '\'') {
		quote := text[*pos]
		var b strings.Builder
		i := *pos + 1
		for i < n {
			c := text[i]
			if c == '\\' && i+1 < n && text[i+1] == quote {
				b.WriteByte(quote)
				i += 2
				continue
			}
			if c == quote {
				*pos = i + 1
				return b.String(), true
			}
			b.WriteByte(c)
			i++
		}
		// Unbalanced quote: treat the rest as an unquoted value.
	}

	start := *pos
	for *pos < n && text[*pos] != ',' && text[*pos] != '=' {
		*pos++
	}
	return strings.TrimSpace(text[start:*pos]), false
}

func setNamedAttribute(attrs map[string]string, name, value string) {
	switch name {
	case "options", "opts":
		for _, opt := range strings.Split(value, ",") {
			if opt = strings.TrimSpace(opt); opt != "" {
				attrs[opt+"-option"] = ""
			}
		}
	case attrRole:
		appendRole(attrs, value)
	default:
		attrs[name] = value
	}
}

// parseStyleShorthand expands the first positional attribute. Text before
// the first '#', '.' or '%' is the style.
func parseStyleShorthand(value string, attrs map[string]string) {
	if value == "" {
		return
	}
	cut := strings.IndexAny(value, "#.%")
	if cut < 0 {
		attrs[attrStyle] = value
		return
	}
	if cut > 0 {
		attrs[attrStyle] = value[:cut]
	}

	rest := value[cut:]
	for rest != "" {
		kind := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, "#.%")
		if end < 0 {
			end = len(rest)
		}
		part := rest[:end]
		rest = rest[end:]
		if part == "" {
			continue
		}
		switch kind {
		case '#':
			attrs[attrID] = part
		case '.':
			appendRole(attrs, part)
		case '%':
			attrs[part+"-option"] = ""
		}
	}
}

func appendRole(attrs map[string]string, role string) {
	if role == "" {
		return
	}
	if existing := attrs[attrRole]; existing != "" {
		attrs[attrRole] = existing + " " + role
		return
	}
	attrs[attrRole] = role
}

// substituteAttributes replaces {name} references that resolve. Escaped
// references keep their braces and lose the backslash.
func substituteAttributes(text string, resolve func(string) (string, bool)) string {
	if !strings.Contains(text, "{") {
		return text
	}
	return attributeReferenceRx.ReplaceAllStringFunc(text, func(ref string) string {
		if strings.HasPrefix(ref, `\`) {
			return ref[1:]
		}
		name := strings.ToLower(ref[1 : len(ref)-1])
		if value, ok := resolve(name); ok {
			return value
		}
		return ref
	})
}
