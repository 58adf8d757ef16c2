package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adocblocks/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		clone := c.Clone()
		assert.Nil(t, clone)
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies Attributes map", func(t *testing.T) {
		original := &config.Config{
			Attributes: map[string]string{"source-language": "go"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, "go", clone.Attributes["source-language"])

		clone.Attributes["source-language"] = "ruby"
		assert.Equal(t, "go", original.Attributes["source-language"])
	})

	t.Run("deep copies Ignore slice", func(t *testing.T) {
		original := &config.Config{
			Ignore: []string{"*.adoc", "build/**"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original.Ignore, clone.Ignore)

		clone.Ignore[0] = "changed"
		assert.Equal(t, "*.adoc", original.Ignore[0])
	})

	t.Run("deep copies pointer options", func(t *testing.T) {
		implicit := false
		comment := "#"
		original := &config.Config{
			Tables:   config.TablesConfig{ImplicitHeader: &implicit},
			Callouts: config.CalloutsConfig{LineComment: &comment},
		}

		clone := original.Clone()
		require.NotNil(t, clone.Tables.ImplicitHeader)
		require.NotNil(t, clone.Callouts.LineComment)
		assert.NotSame(t, original.Tables.ImplicitHeader, clone.Tables.ImplicitHeader)

		*clone.Callouts.LineComment = "//"
		assert.Equal(t, "#", *original.Callouts.LineComment)
	})

	t.Run("preserves all fields", func(t *testing.T) {
		original := &config.Config{
			SafeMode: config.SafeModeServer,
			Lists:    config.ListsConfig{BulletStyles: []string{"disc", "circle"}, Interactive: true},
			Source:   config.SourceConfig{DetectLanguage: true, DefaultLanguage: "go"},
			Format:   config.FormatJSON,
			Jobs:     4,
			Strict:   true,
			Output:   "tree.json",
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original.SafeMode, clone.SafeMode)
		assert.Equal(t, original.Lists, clone.Lists)
		assert.Equal(t, original.Source, clone.Source)
		assert.Equal(t, original.Format, clone.Format)
		assert.Equal(t, original.Jobs, clone.Jobs)
		assert.Equal(t, original.Strict, clone.Strict)
		assert.Equal(t, original.Output, clone.Output)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		cfg := &config.Config{
			SafeMode: config.SafeModeSafe,
			Source:   config.SourceConfig{DetectLanguage: true},
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "safe_mode: safe")
		assert.Contains(t, string(data), "detect_language: true")
	})

	t.Run("header is prepended", func(t *testing.T) {
		cfg := config.NewConfig()

		data, err := cfg.ToYAMLWithHeader(config.DefaultTemplateHeader())
		require.NoError(t, err)
		assert.Contains(t, string(data), "# adocblocks configuration\n")
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		yaml := []byte(`
safe_mode: server
attributes:
  line-comment: "#"
tables:
  implicit_header: false
`)
		cfg, err := config.FromYAML(yaml)
		require.NoError(t, err)
		assert.Equal(t, config.SafeModeServer, cfg.SafeMode)
		assert.Equal(t, "#", cfg.Attributes["line-comment"])
		assert.False(t, cfg.Tables.ImplicitHeaderEnabled())
	})

	t.Run("initializes empty Attributes map", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`safe_mode: secure`))
		require.NoError(t, err)
		assert.NotNil(t, cfg.Attributes)
		assert.True(t, cfg.Tables.ImplicitHeaderEnabled())
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := config.FromYAML([]byte("attributes: [unclosed"))
		require.Error(t, err)
	})
}
