package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/json"

	"github.com/arthur-debert/organizer/pkg/errors"
)

// ParseInlineRules parses rules given on the command line. Two forms are
// accepted: a JSON object ({"txt": "Texts"}, single quotes allowed) and
// comma separated pairs (txt=Texts,py=Scripts). Blank input yields nil.
func ParseInlineRules(s string) (map[string]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "{") {
		return parseRulesObject(s)
	}

	rules := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		ext, folder, ok := strings.Cut(pair, "=")
		ext, folder = strings.TrimSpace(ext), strings.TrimSpace(folder)
		if !ok || ext == "" || folder == "" {
			return nil, errors.Newf(errors.ErrConfigParse, "invalid rule %q, expected ext=Folder", pair).
				WithDetail("key", "rules")
		}
		rules[ext] = folder
	}
	return rules, nil
}

func parseRulesObject(s string) (map[string]string, error) {
	raw, err := json.Parser().Unmarshal([]byte(s))
	if err != nil && strings.Contains(s, "'") {
		raw, err = json.Parser().Unmarshal([]byte(strings.ReplaceAll(s, "'", `"`)))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "rules must be a JSON object of extension to folder").
			WithDetail("key", "rules")
	}

	rules := make(map[string]string, len(raw))
	for ext, value := range raw {
		folder, ok := value.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrConfigParse, "rule %q must map to a folder name, got %s", ext, fmt.Sprint(value)).
				WithDetail("key", "rules")
		}
		rules[ext] = folder
	}
	return rules, nil
}
