package config

import (
	"strings"

	"github.com/arthur-debert/organizer/pkg/errors"
	"github.com/arthur-debert/organizer/pkg/logging"
	"github.com/arthur-debert/organizer/pkg/rules"
	"github.com/arthur-debert/organizer/pkg/types"
	"github.com/arthur-debert/organizer/pkg/ui"
)

// Config is the effective configuration of one invocation
type Config struct {
	Source      string            `koanf:"source" toml:"source"`
	Dest        string            `koanf:"dest" toml:"dest"`
	Recursive   bool              `koanf:"recursive" toml:"recursive"`
	DryRun      bool              `koanf:"dry_run" toml:"dry_run"`
	CleanSource bool              `koanf:"clean_source" toml:"clean_source"`
	Combine     bool              `koanf:"combine" toml:"combine"`
	RulesFile   string            `koanf:"rules_file" toml:"rules_file"`
	Rules       map[string]string `koanf:"rules" toml:"rules,omitempty"`
	Logging     LoggingConfig     `koanf:"logging" toml:"logging"`
	Output      OutputConfig      `koanf:"output" toml:"output"`
}

// LoggingConfig controls the console and file log sinks
type LoggingConfig struct {
	StreamLevel string `koanf:"stream_level" toml:"stream_level"`
	WriteLevel  string `koanf:"write_level" toml:"write_level"`
	File        string `koanf:"file" toml:"file"`
	Style       string `koanf:"style" toml:"style"`
}

// OutputConfig controls how the run summary is printed
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"`
}

// Validate checks everything a run needs. Commands that do not organize
// use ValidateLogging instead.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return errors.New(errors.ErrConfigValid, "source directory is required")
	}
	if _, err := ui.ParseFormat(c.Output.Format); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid output format").
			WithDetail("key", "output.format")
	}
	return c.ValidateLogging()
}

// ValidateLogging checks the logging section only
func (c *Config) ValidateLogging() error {
	levels := []struct{ key, value string }{
		{"logging.stream_level", c.Logging.StreamLevel},
		{"logging.write_level", c.Logging.WriteLevel},
	}
	for _, level := range levels {
		if level.value == "" {
			continue
		}
		if _, err := logging.ParseLevel(level.value); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "invalid %s", level.key).WithDetail("key", level.key)
		}
	}
	if !logging.ValidStyle(c.Logging.Style) {
		return errors.Newf(errors.ErrConfigValid, "unknown log style %q", c.Logging.Style).
			WithDetail("key", "logging.style")
	}
	return nil
}

// Request builds the organize request
func (c *Config) Request() types.OrganizeRequest {
	return types.NewOrganizeRequest(c.Source, c.Dest, c.Recursive, c.DryRun, c.CleanSource)
}

// RuleOptions returns the rule sources to resolve
func (c *Config) RuleOptions() rules.Options {
	return rules.Options{
		Explicit: c.Rules,
		File:     c.RulesFile,
		Combine:  c.Combine,
	}
}

// LogOptions returns the logger options; verbosity is the -v count
func (c *Config) LogOptions(verbosity int) logging.Options {
	return logging.Options{
		StreamLevel: c.Logging.StreamLevel,
		WriteLevel:  c.Logging.WriteLevel,
		File:        c.Logging.File,
		Style:       c.Logging.Style,
		Verbosity:   verbosity,
	}
}
