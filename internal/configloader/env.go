package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/adocblocks/pkg/config"
)

// envVarPrefix is the prefix for all adocblocks environment variables.
const envVarPrefix = "ADOCBLOCKS_"

// envAttributePrefix marks variables that set a document attribute, such as
// ADOCBLOCKS_ATTR_SOURCE_LANGUAGE=go for source-language.
const envAttributePrefix = envVarPrefix + "ATTR_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"SAFE_MODE":        {"safe_mode", envTypeString, "Safe mode: unsafe, safe, server or secure"},
	"FORMAT":           {"format", envTypeString, "Output format: text, tree, json or yaml"},
	"JOBS":             {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"STRICT":           {"strict", envTypeBool, "Fail check on warnings: true or false"},
	"IGNORE":           {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"BULLET_STYLES":    {"lists.bullet_styles", envTypeSlice, "Comma-separated bullet styles by level"},
	"INTERACTIVE":      {"lists.interactive", envTypeBool, "Mark checklists interactive: true or false"},
	"IMPLICIT_HEADER":  {"tables.implicit_header", envTypeBool, "Infer table header rows: true or false"},
	"LINE_COMMENT":     {"callouts.line_comment", envTypeString, "Line comment prefix for callouts"},
	"DETECT_LANGUAGE":  {"source.detect_language", envTypeBool, "Detect [source] languages: true or false"},
	"DEFAULT_LANGUAGE": {"source.default_language", envTypeString, "Fallback [source] language"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with ADOCBLOCKS_ (e.g., ADOCBLOCKS_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value, ok := os.LookupEnv(envVar)
		if !ok || (value == "" && mapping.field != "callouts.line_comment") {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	applyEnvAttributes(cfg, os.Environ())

	return nil
}

// applyEnvAttributes copies ADOCBLOCKS_ATTR_* variables into cfg.Attributes.
// The suffix is lowercased and underscores become dashes.
func applyEnvAttributes(cfg *config.Config, environ []string) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		suffix, ok := strings.CutPrefix(name, envAttributePrefix)
		if !ok || suffix == "" {
			continue
		}
		if cfg.Attributes == nil {
			cfg.Attributes = make(map[string]string)
		}
		cfg.Attributes[strings.ReplaceAll(strings.ToLower(suffix), "_", "-")] = value
	}
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "safe_mode":
		cfg.SafeMode = config.SafeMode(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "callouts.line_comment":
		cfg.Callouts.LineComment = &value
	case "source.default_language":
		cfg.Source.DefaultLanguage = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "strict":
		cfg.Strict = value
	case "lists.interactive":
		cfg.Lists.Interactive = value
	case "tables.implicit_header":
		cfg.Tables.ImplicitHeader = &value
	case "source.detect_language":
		cfg.Source.DetectLanguage = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "lists.bullet_styles":
		cfg.Lists.BulletStyles = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings)+1)
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	vars[envAttributePrefix+"<NAME>"] = "Document attribute <name> (lowercased, _ becomes -)"
	return vars
}
