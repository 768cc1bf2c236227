package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Sort the files of a directory into folders by extension"
	MsgRulesShort      = "Show the rule table a run would use"
	MsgConfigShort     = "Show the effective configuration"
	MsgGenConfigShort  = "Print the default configuration file"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Version output
	MsgVersionFormat   = "organizer version %s\n"
	MsgCommitFormat    = "Commit: %s\n"
	MsgBuiltFormat     = "Built:  %s\n"
	MsgVersionTemplate = "organizer {{.Version}}\n"

	// Status messages
	MsgManWritten = "Man pages written to %s"

	// Rule sources
	MsgSourceDefaults = "defaults"
	MsgSourceInline   = "inline"

	// Error messages
	MsgErrArgs         = "expected at most one source directory, got %d"
	MsgErrFlags        = "invalid flags"
	MsgErrLogging      = "cannot set up logging"
	MsgErrRender       = "failed to render output"
	MsgErrOutputFormat = "invalid output format"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagVersion     = "Print the version and exit"
	MsgFlagDest        = "Destination root for the rule folders (default: the source directory)"
	MsgFlagRecursive   = "Also organize files in sub-directories"
	MsgFlagDryRun      = "Preview changes without executing them"
	MsgFlagClean       = "Remove empty directories left in the source afterwards"
	MsgFlagCombine     = "Combine the built-in rules with the given rules"
	MsgFlagRules       = "Inline rules: JSON object or ext=Folder pairs separated by commas"
	MsgFlagRulesFile   = "Rules file mapping extensions to folders (JSON, YAML or TOML)"
	MsgFlagConfig      = "Config file (default is $XDG_CONFIG_HOME/organizer/config.toml)"
	MsgFlagStreamLevel = "Console log level (trace, debug, info, warn, error)"
	MsgFlagWriteLevel  = "Log file level (trace, debug, info, warn, error)"
	MsgFlagLogFile     = "Also write JSON logs to this file"
	MsgFlagStyle       = "Console log style (simple, modern, minimal, json)"
	MsgFlagFormat      = "Output format (auto, term, text, json)"
	MsgFlagManDir      = "Directory the man pages are written to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/rules-long.txt
	msgRulesLongRaw string
	MsgRulesLong    = strings.TrimSpace(msgRulesLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/gen-config-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
