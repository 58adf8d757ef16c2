package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/gobwas/glob"

	"github.com/yaklabco/adocblocks/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "lists.bullet_styles[0]").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownSafeModes lists valid safe mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownSafeModes = map[config.SafeMode]bool{
	config.SafeModeUnsafe: true,
	config.SafeModeSafe:   true,
	config.SafeModeServer: true,
	config.SafeModeSecure: true,
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText: true,
	config.FormatTree: true,
	config.FormatJSON: true,
	config.FormatYAML: true,
}

// knownBulletStyles lists the unordered list styles renderers understand.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBulletStyles = map[string]bool{
	"disc":      true,
	"circle":    true,
	"square":    true,
	"none":      true,
	"no-bullet": true,
	"unstyled":  true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.SafeMode != "" && !knownSafeModes[cfg.SafeMode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "safe_mode",
			Value:   cfg.SafeMode,
			Message: fmt.Sprintf("invalid safe mode %q; must be one of: unsafe, safe, server, secure", cfg.SafeMode),
		})
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, tree, json, yaml", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	for i, style := range cfg.Lists.BulletStyles {
		if !knownBulletStyles[style] {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("lists.bullet_styles[%d]", i),
				Value:   style,
				Message: fmt.Sprintf("unknown bullet style %q; it is passed through as-is", style),
			})
		}
	}

	validateAttributes(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateAttributes warns about attribute names a document could never
// reference.
func validateAttributes(cfg *config.Config, result *ValidationResult) {
	names := slices.Sorted(maps.Keys(cfg.Attributes))
	for _, name := range names {
		if name == "" || strings.ContainsFunc(name, unicode.IsSpace) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "attributes",
				Value:   name,
				Message: fmt.Sprintf("attribute name %q is not a valid name", name),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
