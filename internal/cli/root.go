package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/organizer/internal/version"
	"github.com/arthur-debert/organizer/pkg/errors"
)

// globalOptions holds the flags that are not configuration keys
type globalOptions struct {
	verbosity  int
	configFile string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "organizer [flags] <source>",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.String(),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.Newf(errors.ErrConfigValid, MsgErrArgs, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			source := ""
			if len(args) == 1 {
				source = args[0]
			}
			return runOrganize(cmd, opts, source)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Organize flags
	flags := rootCmd.Flags()
	flags.StringP("dest", "d", "", MsgFlagDest)
	flags.BoolP("recursive", "R", false, MsgFlagRecursive)
	flags.BoolP("dry-run", "n", false, MsgFlagDryRun)
	flags.BoolP("clean", "C", false, MsgFlagClean)
	flags.BoolP("version", "V", false, MsgFlagVersion)
	_ = rootCmd.MarkFlagDirname("dest")

	// Flags shared with the inspection commands
	pflags := rootCmd.PersistentFlags()
	pflags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	pflags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	pflags.BoolP("combine", "c", false, MsgFlagCombine)
	pflags.StringP("rules", "r", "", MsgFlagRules)
	pflags.String("rules-file", "", MsgFlagRulesFile)
	pflags.String("stream-level", "", MsgFlagStreamLevel)
	pflags.String("write-level", "", MsgFlagWriteLevel)
	pflags.String("log-file", "", MsgFlagLogFile)
	pflags.String("style", "", MsgFlagStyle)
	pflags.String("format", "", MsgFlagFormat)
	_ = rootCmd.MarkPersistentFlagFilename("config", "toml", "json", "yaml", "yml")
	_ = rootCmd.MarkPersistentFlagFilename("rules-file", "json", "toml", "yaml", "yml")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrConfigValid, MsgErrFlags)
	})
	rootCmd.SetVersionTemplate(MsgVersionTemplate)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Disable automatic help command; -h covers every command
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Add all commands
	rootCmd.AddCommand(newRulesCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}
