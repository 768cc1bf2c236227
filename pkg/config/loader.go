package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/arthur-debert/organizer/pkg/errors"
	"github.com/arthur-debert/organizer/pkg/paths"
)

const (
	// Delim separates nested keys
	Delim = "/"

	// EnvPrefix marks environment variables read as configuration
	EnvPrefix = "ORGANIZER_"
)

// FlagKeys maps command line flag names to configuration keys. Flags not
// listed here (config, verbose, help, version) are not configuration.
var FlagKeys = map[string]string{
	"dest":         "dest",
	"recursive":    "recursive",
	"dry-run":      "dry_run",
	"clean":        "clean_source",
	"combine":      "combine",
	"rules":        "rules",
	"rules-file":   "rules_file",
	"stream-level": "logging/stream_level",
	"write-level":  "logging/write_level",
	"log-file":     "logging/file",
	"style":        "logging/style",
	"format":       "output/format",
}

// flatKeys are the top-level spellings of logging keys accepted in config
// files for compatibility with flat configs
var flatKeys = map[string]string{
	"stream_level": "logging/stream_level",
	"write_level":  "logging/write_level",
	"log_file":     "logging/file",
	"style":        "logging/style",
}

// LoadOptions lists the sources above the embedded defaults
type LoadOptions struct {
	// ConfigFile is an explicit config file; it must exist
	ConfigFile string
	// Flags is the parsed flag set; only changed flags are applied
	Flags *pflag.FlagSet
	// Source is the positional source argument, if any
	Source string
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	k, err := load(opts)
	if err != nil {
		return nil, err
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.expandPaths()
	return cfg, nil
}

func load(opts LoadOptions) (*koanf.Koanf, error) {
	k := koanf.New(Delim)

	// 1. Embedded defaults
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "embedded defaults are invalid")
	}

	// 2. Config file
	configFile, required := opts.ConfigFile, true
	if configFile == "" {
		configFile, required = paths.ConfigFile(), false
	}
	if err := loadFile(k, paths.ExpandHome(configFile), required); err != nil {
		return nil, err
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, Delim, func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", Delim)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Flags set on the command line
	if opts.Flags != nil {
		provider := posflag.ProviderWithFlag(opts.Flags, Delim, k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := FlagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flags")
		}
	}

	// 5. Positional source argument
	if opts.Source != "" {
		if err := k.Load(confmap.Provider(map[string]interface{}{"source": opts.Source}, Delim), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot set source")
		}
	}

	return k, nil
}

// loadFile merges a config file into k. A missing optional file is ignored.
func loadFile(k *koanf.Koanf, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if !required && os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
			WithDetail("path", path)
	}

	fileK := koanf.New(Delim)
	if err := fileK.Load(file.Provider(path), parserFor(path)); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "invalid config file %s", path).
			WithDetail("path", path)
	}
	for flat, nested := range flatKeys {
		if fileK.Exists(flat) && !fileK.Exists(nested) {
			if err := fileK.Set(nested, fileK.Get(flat)); err != nil {
				return errors.Wrap(err, errors.ErrInternal, "cannot remap config key")
			}
			fileK.Delete(flat)
		}
	}
	if err := k.Merge(fileK); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "cannot merge config file %s", path)
	}
	return nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Parser()
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				inlineRulesHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	return &cfg, nil
}

// inlineRulesHookFunc decodes rules given as a string (flag or
// environment) with ParseInlineRules
func inlineRulesHookFunc() mapstructure.DecodeHookFuncType {
	rulesType := reflect.TypeOf(map[string]string{})
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != rulesType {
			return data, nil
		}
		return ParseInlineRules(data.(string))
	}
}

func (c *Config) expandPaths() {
	c.Source = paths.ExpandHome(c.Source)
	c.Dest = paths.ExpandHome(c.Dest)
	c.RulesFile = paths.ExpandHome(c.RulesFile)
	c.Logging.File = paths.ExpandHome(c.Logging.File)
}
