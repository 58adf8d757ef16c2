package config

import (
	"fmt"
	"strings"
)

// ParseOutputFormat converts a flag or config value to an OutputFormat.
// The empty string selects text.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatText:
		return FormatText, nil
	case FormatTree:
		return FormatTree, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, tree, json, yaml)", value)
	}
}

// ParseSafeMode converts a config value to a SafeMode. The empty string
// selects secure.
func ParseSafeMode(value string) (SafeMode, error) {
	switch SafeMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", SafeModeSecure:
		return SafeModeSecure, nil
	case SafeModeServer:
		return SafeModeServer, nil
	case SafeModeSafe:
		return SafeModeSafe, nil
	case SafeModeUnsafe:
		return SafeModeUnsafe, nil
	default:
		return "", fmt.Errorf("unknown safe mode %q (valid: unsafe, safe, server, secure)", value)
	}
}
