package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/organizer/pkg/errors"
)

// isolate keeps the user's own config and environment out of a test
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix) {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
	return dir
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("organizer", pflag.ContinueOnError)
	fs.StringP("dest", "d", "", "")
	fs.BoolP("recursive", "R", false, "")
	fs.BoolP("dry-run", "n", false, "")
	fs.BoolP("clean", "C", false, "")
	fs.BoolP("combine", "c", false, "")
	fs.StringP("rules", "r", "", "")
	fs.String("rules-file", "", "")
	fs.String("stream-level", "info", "")
	fs.String("write-level", "debug", "")
	fs.String("log-file", "", "")
	fs.String("style", "simple", "")
	fs.String("format", "auto", "")
	fs.String("config", "", "")
	fs.CountP("verbose", "v", "")
	return fs
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Source)
	assert.False(t, cfg.Recursive)
	assert.False(t, cfg.DryRun)
	assert.False(t, cfg.CleanSource)
	assert.False(t, cfg.Combine)
	assert.Empty(t, cfg.Rules)
	assert.Equal(t, "info", cfg.Logging.StreamLevel)
	assert.Equal(t, "debug", cfg.Logging.WriteLevel)
	assert.Equal(t, "simple", cfg.Logging.Style)
	assert.Equal(t, "auto", cfg.Output.Format)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	configFile := writeFile(t, dir, "organizer.toml", `
dest = "/from/file"
recursive = true
dry_run = true

[logging]
stream_level = "warn"
style = "modern"

[rules]
".md" = "Notes"
"py" = "Scripts"
`)
	t.Setenv("ORGANIZER_RECURSIVE", "false")
	t.Setenv("ORGANIZER_LOGGING__STYLE", "minimal")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--dest", "/from/flag", "-v"}))

	cfg, err := Load(LoadOptions{ConfigFile: configFile, Flags: flags, Source: "/data/inbox"})
	require.NoError(t, err)

	assert.Equal(t, "/data/inbox", cfg.Source)
	assert.Equal(t, "/from/flag", cfg.Dest, "flag beats file")
	assert.False(t, cfg.Recursive, "env beats file")
	assert.True(t, cfg.DryRun, "file beats defaults")
	assert.Equal(t, "warn", cfg.Logging.StreamLevel)
	assert.Equal(t, "minimal", cfg.Logging.Style)
	assert.Equal(t, "debug", cfg.Logging.WriteLevel, "unchanged flag does not override")
	assert.Equal(t, map[string]string{".md": "Notes", "py": "Scripts"}, cfg.Rules)
}

func TestLoad_UserConfigFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "xdg/organizer/config.toml", "clean_source = true\n")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.True(t, cfg.CleanSource)
}

func TestLoad_ConfigFileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "cfg.json", `{"recursive": true, "rules": {"txt": "Texts"}, "logging": {"write_level": "error"}}`},
		{"yaml", "cfg.yaml", "recursive: true\nrules:\n  txt: Texts\nlogging:\n  write_level: error\n"},
		{"flat_json", "flat.json", `{"recursive": "true", "rules": {"txt": "Texts"}, "write_level": "error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := writeFile(t, dir, tt.file, tt.content)

			cfg, err := Load(LoadOptions{ConfigFile: path})
			require.NoError(t, err)
			assert.True(t, cfg.Recursive)
			assert.Equal(t, map[string]string{"txt": "Texts"}, cfg.Rules)
			assert.Equal(t, "error", cfg.Logging.WriteLevel)
		})
	}
}

func TestLoad_RulesFlag(t *testing.T) {
	isolate(t)

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--rules", "txt=Texts, py=Scripts", "--combine", "-n"}))

	cfg, err := Load(LoadOptions{Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"txt": "Texts", "py": "Scripts"}, cfg.Rules)
	assert.True(t, cfg.Combine)
	assert.True(t, cfg.DryRun)

	opts := cfg.RuleOptions()
	assert.True(t, opts.Combine)
	assert.Equal(t, cfg.Rules, opts.Explicit)
}

func TestLoad_RulesFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("ORGANIZER_RULES", `{"log": "Logs"}`)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"log": "Logs"}, cfg.Rules)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, dir string) LoadOptions
		wantCode errors.ErrorCode
	}{
		{
			name: "missing_config_file",
			setup: func(t *testing.T, dir string) LoadOptions {
				return LoadOptions{ConfigFile: filepath.Join(dir, "nope.toml")}
			},
			wantCode: errors.ErrConfigLoad,
		},
		{
			name: "invalid_config_syntax",
			setup: func(t *testing.T, dir string) LoadOptions {
				return LoadOptions{ConfigFile: writeFile(t, dir, "bad.json", `{"recursive": `)}
			},
			wantCode: errors.ErrConfigParse,
		},
		{
			name: "non_boolean_value",
			setup: func(t *testing.T, dir string) LoadOptions {
				return LoadOptions{ConfigFile: writeFile(t, dir, "bad.toml", `dry_run = "maybe"`)}
			},
			wantCode: errors.ErrConfigParse,
		},
		{
			name: "malformed_inline_rules",
			setup: func(t *testing.T, dir string) LoadOptions {
				flags := newFlags()
				require.NoError(t, flags.Parse([]string{"--rules", "txt"}))
				return LoadOptions{Flags: flags}
			},
			wantCode: errors.ErrConfigParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			_, err := Load(tt.setup(t, dir))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
			assert.Equal(t, errors.KindConfig, errors.KindOf(err))
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Source:  "/data",
			Logging: LoggingConfig{StreamLevel: "info", WriteLevel: "success", Style: "simple"},
			Output:  OutputConfig{Format: "auto"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing_source", func(c *Config) { c.Source = " " }},
		{"bad_stream_level", func(c *Config) { c.Logging.StreamLevel = "loud" }},
		{"bad_write_level", func(c *Config) { c.Logging.WriteLevel = "loud" }},
		{"bad_style", func(c *Config) { c.Logging.Style = "fancy" }},
		{"bad_format", func(c *Config) { c.Output.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		})
	}
}

func TestRequestDefaultsDestToSource(t *testing.T) {
	cfg := &Config{Source: "/data", Recursive: true}
	req := cfg.Request()
	assert.Equal(t, "/data", req.DestRoot)
	assert.True(t, req.Recursive)
}

func TestToTOMLRoundTrip(t *testing.T) {
	dir := isolate(t)
	cfg := &Config{
		Source:  "/data",
		Rules:   map[string]string{".md": "Notes"},
		Logging: LoggingConfig{StreamLevel: "info", WriteLevel: "debug", Style: "simple"},
		Output:  OutputConfig{Format: "json"},
	}

	data, err := ToTOML(cfg)
	require.NoError(t, err)
	path := writeFile(t, dir, "exported.toml", string(data))

	loaded, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, cfg.Rules, loaded.Rules)
	assert.Equal(t, "json", loaded.Output.Format)
	assert.Equal(t, "/data", loaded.Source)
}

func TestDefaultTOMLLoads(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "defaults.toml", string(DefaultTOML()))

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.StreamLevel)
}
