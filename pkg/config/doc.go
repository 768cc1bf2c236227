// Package config loads the organizer configuration.
//
// Values are layered with koanf, later sources winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. a config file: --config, or config.toml in the XDG config directory
//  3. ORGANIZER_* environment variables
//  4. command line flags the user actually set
//
// The key delimiter is "/" since rule keys contain dots (".png"). Nested
// keys therefore read "logging/stream_level", and environment variables
// separate sections with a double underscore.
package config
