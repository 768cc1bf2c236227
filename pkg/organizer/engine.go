package organizer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/organizer/pkg/errors"
	"github.com/arthur-debert/organizer/pkg/logging"
	"github.com/arthur-debert/organizer/pkg/planner"
	"github.com/arthur-debert/organizer/pkg/reaper"
	"github.com/arthur-debert/organizer/pkg/rules"
	"github.com/arthur-debert/organizer/pkg/types"
)

// Observer receives every file result as soon as it is known
type Observer func(types.FileResult)

// Engine organizes directory trees. An Engine can run many passes but not
// concurrently.
type Engine struct {
	fs       types.FS
	logger   zerolog.Logger
	observer Observer
}

// Option configures an Engine
type Option func(*Engine)

// WithObserver registers fn to be called for every processed file
func WithObserver(fn Observer) Option {
	return func(e *Engine) {
		e.observer = fn
	}
}

// New creates an engine operating on fs
func New(fs types.FS, logger zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		fs:     fs,
		logger: logging.Component(logger, "organizer"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// run holds the state of a single pass
type run struct {
	req     types.OrganizeRequest
	table   *rules.Table
	logger  zerolog.Logger
	planner *planner.Planner
	stats   types.RunStats
	// planned moves, used to simulate the reaper under dry-run
	vacated []string
	filled  []string
}

// Organize sorts the files of req.Source into rule folders under the
// destination root. It fails before touching anything when the source is
// missing or not a directory. On cancellation it stops before the next
// file and returns the statistics gathered so far with an interrupted error.
func (e *Engine) Organize(ctx context.Context, req types.OrganizeRequest, table *rules.Table) (types.RunStats, error) {
	if table == nil {
		return types.RunStats{DryRun: req.DryRun}, errors.New(errors.ErrInternal, "organize called without a rule table")
	}

	runID := uuid.NewString()
	r := &run{
		req:    req,
		table:  table,
		logger: e.logger.With().Str("run_id", runID).Logger(),
		stats:  types.RunStats{RunID: runID, DryRun: req.DryRun},
	}
	r.planner = planner.New(e.fs, r.logger)

	source, dest, err := e.checkPaths(req)
	if err != nil {
		return r.stats, err
	}
	r.req.Source, r.req.DestRoot = source, dest

	done := logging.LogOperationStart(r.logger, "organize")
	defer done()

	r.logger.Info().
		Str("source", source).
		Str("dest", dest).
		Bool("recursive", req.Recursive).
		Bool("dry_run", req.DryRun).
		Bool("clean_source", req.CleanSource).
		Int("rules", table.Len()).
		Msg("Organizing")

	files, err := e.snapshot(ctx, r)
	if err != nil {
		return r.stats, err
	}

	for i, file := range files {
		if ctx.Err() != nil {
			return r.stats, e.interrupted(ctx, r, len(files)-i)
		}
		result := e.processFile(r, file)
		r.stats.Record(result)
		if e.observer != nil {
			e.observer(result)
		}
	}
	if ctx.Err() != nil {
		return r.stats, e.interrupted(ctx, r, 0)
	}

	if req.CleanSource {
		rp := reaper.New(e.fs, r.logger)
		r.stats.Removed = rp.ReapWith(source, reaper.Options{
			DryRun:  req.DryRun,
			Vacated: r.vacated,
			Filled:  r.filled,
		})
	}

	e.summarize(r)
	return r.stats, nil
}

// checkPaths resolves source and destination to absolute paths and makes
// sure both can be used
func (e *Engine) checkPaths(req types.OrganizeRequest) (string, string, error) {
	source, err := filepath.Abs(req.Source)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrPathNotFound, "cannot resolve source %s", req.Source)
	}
	info, err := e.fs.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", errors.Newf(errors.ErrPathNotFound, "source %s does not exist", source).
				WithDetail("path", source)
		}
		return "", "", errors.Wrapf(err, errors.ErrPathNotFound, "cannot access source %s", source).
			WithDetail("path", source)
	}
	if !info.IsDir() {
		return "", "", errors.Newf(errors.ErrPathNotDir, "source %s is not a directory", source).
			WithDetail("path", source)
	}

	dest, err := filepath.Abs(req.Dest())
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrPathNotFound, "cannot resolve destination %s", req.Dest())
	}
	// a missing destination is created on first move
	if info, err := e.fs.Stat(dest); err == nil && !info.IsDir() {
		return "", "", errors.Newf(errors.ErrPathNotDir, "destination %s is not a directory", dest).
			WithDetail("path", dest)
	}
	return source, dest, nil
}

// interrupted ends a cancelled run; completed moves are kept and the
// reaper does not run
func (e *Engine) interrupted(ctx context.Context, r *run, remaining int) error {
	r.logger.Warn().Int("remaining", remaining).Msg("Interrupted, stopping before next file")
	e.summarize(r)
	return errors.Wrap(ctx.Err(), errors.ErrInterrupted, "organize interrupted")
}

func (e *Engine) summarize(r *run) {
	r.logger.Info().
		Int(r.stats.MovedLabel(), r.stats.Moved).
		Int("skipped", r.stats.Skipped).
		Int("removed", r.stats.Removed).
		Int("errors", r.stats.Errors).
		Bool("dry_run", r.stats.DryRun).
		Msg("Organize finished")
}
