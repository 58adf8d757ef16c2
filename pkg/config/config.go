// Package config defines core configuration types for adocblocks.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank orders severities from least (info) to most (error) severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// SafeMode restricts what the parser may reach outside the document.
type SafeMode string

const (
	SafeModeUnsafe SafeMode = "unsafe"
	SafeModeSafe   SafeMode = "safe"
	SafeModeServer SafeMode = "server"
	SafeModeSecure SafeMode = "secure"
)

// Level returns the numeric safe mode level (0 unsafe to 20 secure).
func (m SafeMode) Level() int {
	switch m {
	case SafeModeUnsafe:
		return 0
	case SafeModeSafe:
		return 1
	case SafeModeServer:
		return 10
	default:
		return 20
	}
}

// OutputFormat specifies how parse results are written.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatTree OutputFormat = "tree"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ListsConfig controls list recognition.
type ListsConfig struct {
	// BulletStyles assigns a default style to unordered lists by nesting
	// level (index 0 is level 1). Lists with an explicit style keep it.
	BulletStyles []string `mapstructure:"bullet_styles" yaml:"bullet_styles,omitempty"`

	// Interactive marks every checklist as interactive.
	Interactive bool `mapstructure:"interactive" yaml:"interactive"`
}

// TablesConfig controls the table grid builder.
type TablesConfig struct {
	// ImplicitHeader enables promoting the first row to a header when it is
	// followed by a blank line.
	ImplicitHeader *bool `mapstructure:"implicit_header" yaml:"implicit_header,omitempty"`
}

// ImplicitHeaderEnabled reports whether implicit header rows are inferred.
func (t TablesConfig) ImplicitHeaderEnabled() bool {
	return t.ImplicitHeader == nil || *t.ImplicitHeader
}

// CalloutsConfig controls callout scanning in verbatim blocks.
type CalloutsConfig struct {
	// LineComment is the line comment prefix callouts may follow. Nil keeps
	// the built-in prefixes; an empty string allows none.
	LineComment *string `mapstructure:"line_comment" yaml:"line_comment,omitempty"`
}

// SourceConfig controls [source] block handling.
type SourceConfig struct {
	// DetectLanguage fills in the language of [source] blocks that name none.
	DetectLanguage bool `mapstructure:"detect_language" yaml:"detect_language"`

	// DefaultLanguage is used when a [source] block names no language and
	// detection is off or inconclusive.
	DefaultLanguage string `mapstructure:"default_language" yaml:"default_language,omitempty"`
}

// Config is the root configuration structure for adocblocks.
type Config struct {
	// SafeMode is the safe mode reported to the parser host.
	SafeMode SafeMode `mapstructure:"safe_mode" yaml:"safe_mode"`

	// Attributes seeds the document attribute table.
	Attributes map[string]string `mapstructure:"attributes" yaml:"attributes,omitempty"`

	// Lists configures list recognition.
	Lists ListsConfig `mapstructure:"lists" yaml:"lists"`

	// Tables configures table parsing.
	Tables TablesConfig `mapstructure:"tables" yaml:"tables"`

	// Callouts configures callout scanning.
	Callouts CalloutsConfig `mapstructure:"callouts" yaml:"callouts"`

	// Source configures source blocks.
	Source SourceConfig `mapstructure:"source" yaml:"source"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Strict makes warnings fail the check command.
	Strict bool `mapstructure:"-" yaml:"-"`

	// Output is the file a parse dump is written to. Empty means stdout.
	Output string `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SafeMode:   SafeModeSecure,
		Attributes: make(map[string]string),
		Format:     FormatText,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}
