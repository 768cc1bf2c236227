package config

import _ "embed"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultTOML returns the embedded defaults, comments included
func DefaultTOML() []byte {
	return defaultConfig
}
