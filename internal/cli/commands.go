package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/organizer/internal/version"
	"github.com/arthur-debert/organizer/pkg/config"
	"github.com/arthur-debert/organizer/pkg/errors"
	"github.com/arthur-debert/organizer/pkg/rules"
	"github.com/arthur-debert/organizer/pkg/types"
)

func newRulesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: MsgRulesShort,
		Long:  MsgRulesLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts, "")
			if err != nil {
				return err
			}
			if err := cfg.ValidateLogging(); err != nil {
				return err
			}

			logger, closer, err := setupLogging(cmd, cfg, opts.verbosity)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			renderer, err := newRenderer(cmd, cfg)
			if err != nil {
				return err
			}

			table, err := resolveRules(cfg, logger)
			if err != nil {
				return err
			}

			listing := &types.RuleListing{
				Sources:  ruleSources(cfg.RuleOptions()),
				Rules:    table.Entries(),
				Fallback: rules.DefaultFolder,
			}
			if err := renderer.RenderResult(listing); err != nil {
				return errors.Wrap(err, errors.ErrInternal, MsgErrRender)
			}
			return nil
		},
	}
}

// ruleSources names the layers of a rule table, lowest priority first
func ruleSources(opts rules.Options) []string {
	var sources []string
	if opts.Combine {
		sources = append(sources, MsgSourceDefaults)
	}
	if opts.File != "" {
		sources = append(sources, opts.File)
	}
	if len(opts.Explicit) > 0 {
		sources = append(sources, MsgSourceInline)
	}
	if len(sources) == 0 {
		sources = append(sources, MsgSourceDefaults)
	}
	return sources
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts, "")
			if err != nil {
				return err
			}
			if err := cfg.ValidateLogging(); err != nil {
				return err
			}

			data, err := config.ToTOML(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen-config",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(config.DefaultTOML())
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
			return err
		},
	}
}

// ManHeader is the header of the generated man pages
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "ORGANIZER",
		Section: "1",
		Source:  "organizer " + version.Version,
		Manual:  "organizer manual",
	}
}

func newManCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			if err := doc.GenManTree(cmd.Root(), ManHeader(), dir); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten+"\n", dir)
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", MsgFlagManDir)
	return cmd
}
