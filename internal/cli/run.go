package cli

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/organizer/pkg/config"
	"github.com/arthur-debert/organizer/pkg/errors"
	"github.com/arthur-debert/organizer/pkg/filesystem"
	"github.com/arthur-debert/organizer/pkg/logging"
	"github.com/arthur-debert/organizer/pkg/organizer"
	"github.com/arthur-debert/organizer/pkg/paths"
	"github.com/arthur-debert/organizer/pkg/rules"
	"github.com/arthur-debert/organizer/pkg/runlock"
	"github.com/arthur-debert/organizer/pkg/types"
	"github.com/arthur-debert/organizer/pkg/ui"
)

// loadConfig layers defaults, config file, environment and the flags the
// user set on cmd
func loadConfig(cmd *cobra.Command, opts *globalOptions, source string) (*config.Config, error) {
	return config.Load(config.LoadOptions{
		ConfigFile: opts.configFile,
		Flags:      cmd.Flags(),
		Source:     source,
	})
}

// setupLogging builds the logger for cfg and installs it globally. Logs go
// to the command's error stream.
func setupLogging(cmd *cobra.Command, cfg *config.Config, verbosity int) (zerolog.Logger, io.Closer, error) {
	logOpts := cfg.LogOptions(verbosity)
	logOpts.Out = cmd.ErrOrStderr()

	logger, closer, err := logging.New(logOpts)
	if err != nil {
		return logger, closer, errors.Wrap(err, errors.ErrConfigValid, MsgErrLogging)
	}
	logging.SetupGlobal(logger)
	log.Debug().Str("command", cmd.Name()).Msg("Command started")
	return logger, closer, nil
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) (ui.Renderer, error) {
	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, MsgErrOutputFormat).
			WithDetail("key", "output.format")
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

func resolveRules(cfg *config.Config, logger zerolog.Logger) (*rules.Table, error) {
	resolver := rules.NewResolver(filesystem.NewOS(), logging.Component(logger, "rules"))
	return resolver.Resolve(cfg.RuleOptions())
}

// runOrganize is the root command: one organize run over source
func runOrganize(cmd *cobra.Command, opts *globalOptions, source string) error {
	cfg, err := loadConfig(cmd, opts, source)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
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

	req := cfg.Request()
	absSource, err := paths.Abs(req.Source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrPathNotFound, "cannot resolve %s", req.Source)
	}
	absDest, err := paths.Abs(req.Dest())
	if err != nil {
		return errors.Wrapf(err, errors.ErrPathNotFound, "cannot resolve %s", req.Dest())
	}

	if !req.DryRun {
		lock, err := runlock.Acquire(paths.LockDir(), absSource)
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn().Err(err).Msg("Failed to release run lock")
			}
		}()
		logger.Trace().Str("lock", lock.Path()).Msg("Run lock acquired")
	}

	table, err := resolveRules(cfg, logger)
	if err != nil {
		return err
	}

	report := &types.RunReport{Source: absSource, Dest: absDest}
	engine := organizer.New(filesystem.NewOS(), logging.Component(logger, "organizer"),
		organizer.WithObserver(func(result types.FileResult) {
			report.Files = append(report.Files, types.NewFileOutcome(result))
		}))

	stats, err := engine.Organize(cmd.Context(), req, table)
	if err != nil && !errors.IsErrorCode(err, errors.ErrInterrupted) {
		return err
	}
	report.Stats = stats

	if renderErr := renderer.RenderResult(report); renderErr != nil {
		return errors.Wrap(renderErr, errors.ErrInternal, MsgErrRender)
	}
	return err
}
