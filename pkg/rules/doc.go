// Package rules holds the extension to folder mapping used by a run.
//
// A Table maps normalized extensions (lower case, leading dot) to folder
// names and answers lookups with the "Others" fallback. A Resolver builds
// the table for one run from up to three sources, each merged over the
// previous one:
//
//  1. the bundled defaults, when combining is requested
//  2. a rules file (JSON object; YAML and TOML are accepted by extension)
//  3. explicit rules given on the command line or in the config file
//
// When none of them yields an entry the bundled defaults are used, so the
// engine never runs with an empty table.
package rules
