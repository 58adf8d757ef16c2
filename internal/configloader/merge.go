package configloader

import (
	"maps"

	"github.com/yaklabco/adocblocks/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Pointer fields: override wins when non-nil, so false can be expressed
//   - Plain booleans: only true propagates
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.SafeMode != "" {
		result.SafeMode = override.SafeMode
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Strict {
		result.Strict = true
	}

	result.Attributes = mergeAttributes(base.Attributes, override.Attributes)

	if override.Lists.BulletStyles != nil {
		result.Lists.BulletStyles = override.Lists.BulletStyles
	}
	if override.Lists.Interactive {
		result.Lists.Interactive = true
	}

	if override.Tables.ImplicitHeader != nil {
		result.Tables.ImplicitHeader = override.Tables.ImplicitHeader
	}
	if override.Callouts.LineComment != nil {
		result.Callouts.LineComment = override.Callouts.LineComment
	}

	if override.Source.DetectLanguage {
		result.Source.DetectLanguage = true
	}
	if override.Source.DefaultLanguage != "" {
		result.Source.DefaultLanguage = override.Source.DefaultLanguage
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeAttributes returns a new map holding base overlaid with override.
func mergeAttributes(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
