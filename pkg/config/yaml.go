package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Attributes == nil {
		cfg.Attributes = make(map[string]string)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		SafeMode: c.SafeMode,
		Lists: ListsConfig{
			BulletStyles: slices.Clone(c.Lists.BulletStyles),
			Interactive:  c.Lists.Interactive,
		},
		Source: c.Source,
		Ignore: slices.Clone(c.Ignore),
		Format: c.Format,
		Jobs:   c.Jobs,
		Strict: c.Strict,
		Output: c.Output,
	}

	if c.Attributes != nil {
		clone.Attributes = make(map[string]string, len(c.Attributes))
		maps.Copy(clone.Attributes, c.Attributes)
	}

	if c.Tables.ImplicitHeader != nil {
		implicit := *c.Tables.ImplicitHeader
		clone.Tables.ImplicitHeader = &implicit
	}

	if c.Callouts.LineComment != nil {
		comment := *c.Callouts.LineComment
		clone.Callouts.LineComment = &comment
	}

	return clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
