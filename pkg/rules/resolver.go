package rules

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/organizer/pkg/errors"
	"github.com/arthur-debert/organizer/pkg/logging"
	"github.com/arthur-debert/organizer/pkg/types"
)

// Options selects the rule sources for one run
type Options struct {
	// Explicit rules win over every other source
	Explicit map[string]string
	// File is a rules file path; empty means none
	File string
	// Combine loads the bundled defaults underneath the other sources
	Combine bool
}

// Resolver builds rule tables
type Resolver struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewResolver creates a resolver reading rules files through fs
func NewResolver(fs types.FS, logger zerolog.Logger) *Resolver {
	return &Resolver{
		fs:     fs,
		logger: logging.Component(logger, "rules.resolver"),
	}
}

// Resolve builds the table for opts. A rules file that cannot be read or is
// not a mapping of strings fails with a rule error naming the file.
func (r *Resolver) Resolve(opts Options) (*Table, error) {
	table := NewTable()

	if opts.Combine {
		if err := r.mergeDefaults(table); err != nil {
			return nil, err
		}
	}

	if opts.File != "" {
		fileRules, err := r.LoadFile(opts.File)
		if err != nil {
			return nil, err
		}
		if err := table.Merge(fileRules); err != nil {
			return nil, errors.Wrapf(err, errors.ErrRuleInvalid, "invalid rules file %s", opts.File).
				WithDetail("path", opts.File)
		}
		r.logger.Debug().Str("path", opts.File).Int("rules", len(fileRules)).Msg("Merged rules file")
	}

	if len(opts.Explicit) > 0 {
		if err := table.Merge(opts.Explicit); err != nil {
			return nil, err
		}
		r.logger.Debug().Int("rules", len(opts.Explicit)).Msg("Merged explicit rules")
	}

	if table.Len() == 0 {
		r.logger.Debug().Msg("No rules configured, using defaults")
		if err := r.mergeDefaults(table); err != nil {
			return nil, err
		}
	}

	r.logger.Debug().Int("rules", table.Len()).Bool("combine", opts.Combine).Msg("Rule table resolved")
	return table, nil
}

func (r *Resolver) mergeDefaults(table *Table) error {
	defaults, err := Defaults()
	if err != nil {
		return err
	}
	return table.Merge(defaults)
}

// LoadFile reads a rules file. The parser is chosen by extension and
// defaults to JSON.
func (r *Resolver) LoadFile(path string) (map[string]string, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleLoad, "cannot read rules file %s", path).
			WithDetail("path", path)
	}

	raw, err := parserFor(path).Unmarshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleLoad, "rules file %s is not a valid mapping", path).
			WithDetail("path", path)
	}

	if raw == nil {
		return nil, errors.Newf(errors.ErrRuleLoad, "rules file %s is not a mapping", path).
			WithDetail("path", path)
	}
	return toRuleMap(raw, path)
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".toml":
		return toml.Parser()
	default:
		return json.Parser()
	}
}

// toRuleMap checks that every value of a parsed document is a folder name
func toRuleMap(raw map[string]interface{}, source string) (map[string]string, error) {
	rules := make(map[string]string, len(raw))
	for ext, value := range raw {
		folder, ok := value.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrRuleInvalid,
				"rule %q in %s must map to a folder name, got %s", ext, source, describe(value)).
				WithDetail("path", source)
		}
		rules[ext] = folder
	}
	return rules, nil
}

func describe(v interface{}) string {
	switch v.(type) {
	case map[string]interface{}:
		return "a nested mapping"
	case []interface{}:
		return "a list"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
