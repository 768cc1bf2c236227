package rules

import (
	"sort"
	"strings"

	"github.com/arthur-debert/organizer/pkg/errors"
	"github.com/arthur-debert/organizer/pkg/types"
)

// DefaultFolder receives files whose extension has no rule
const DefaultFolder = "Others"

// Entry is one extension to folder rule
type Entry = types.RuleEntry

// Table maps normalized extensions to folder names. The zero value is not
// usable; call NewTable.
type Table struct {
	entries map[string]string
}

// NewTable returns an empty table
func NewTable() *Table {
	return &Table{entries: make(map[string]string)}
}

// NormalizeExtension lower-cases ext and makes sure it starts with a dot.
// Blank input stays empty.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Set adds or replaces the rule for ext. The folder name is kept verbatim.
func (t *Table) Set(ext, folder string) error {
	key := NormalizeExtension(ext)
	if key == "" || key == "." {
		return errors.Newf(errors.ErrRuleInvalid, "rule for folder %q has an empty extension", folder).
			WithDetail("folder", folder)
	}
	if strings.TrimSpace(folder) == "" {
		return errors.Newf(errors.ErrRuleInvalid, "rule %q has an empty folder", key).
			WithDetail("extension", key)
	}
	t.entries[key] = folder
	return nil
}

// Merge sets every rule in rules; later sources win over existing keys
func (t *Table) Merge(rules map[string]string) error {
	// sorted so a failing rule is reported deterministically
	keys := make([]string, 0, len(rules))
	for ext := range rules {
		keys = append(keys, ext)
	}
	sort.Strings(keys)
	for _, ext := range keys {
		if err := t.Set(ext, rules[ext]); err != nil {
			return err
		}
	}
	return nil
}

// Folder returns the folder for ext, or DefaultFolder when no rule matches
func (t *Table) Folder(ext string) string {
	if folder, ok := t.entries[NormalizeExtension(ext)]; ok {
		return folder
	}
	return DefaultFolder
}

// Lookup is Folder without the fallback
func (t *Table) Lookup(ext string) (string, bool) {
	folder, ok := t.entries[NormalizeExtension(ext)]
	return folder, ok
}

// Len is the number of rules
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the rules sorted by extension
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for ext, folder := range t.entries {
		out = append(out, Entry{Extension: ext, Folder: folder})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Extension < out[j].Extension })
	return out
}

// Map returns a copy of the rules
func (t *Table) Map() map[string]string {
	out := make(map[string]string, len(t.entries))
	for ext, folder := range t.entries {
		out[ext] = folder
	}
	return out
}
