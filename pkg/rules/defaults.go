package rules

import (
	_ "embed"

	"github.com/knadh/koanf/parsers/json"

	"github.com/arthur-debert/organizer/pkg/errors"
)

//go:embed embedded/default_rules.json
var defaultRulesJSON []byte

// DefaultRulesJSON returns the bundled rules file
func DefaultRulesJSON() []byte {
	return defaultRulesJSON
}

// Defaults returns the bundled rules
func Defaults() (map[string]string, error) {
	raw, err := json.Parser().Unmarshal(defaultRulesJSON)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "bundled rules are not valid JSON")
	}
	return toRuleMap(raw, "bundled rules")
}

// DefaultTable returns a table holding only the bundled rules
func DefaultTable() (*Table, error) {
	defaults, err := Defaults()
	if err != nil {
		return nil, err
	}
	table := NewTable()
	if err := table.Merge(defaults); err != nil {
		return nil, err
	}
	return table, nil
}
