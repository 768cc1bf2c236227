package organizer

import (
	"github.com/arthur-debert/organizer/pkg/errors"
	"github.com/arthur-debert/organizer/pkg/filesystem"
	"github.com/arthur-debert/organizer/pkg/types"
)

// processFile plans and executes the move of one file. Every failure is
// returned in the result; nothing here aborts the run.
func (e *Engine) processFile(r *run, path string) types.FileResult {
	result := types.FileResult{Path: path}

	plan, err := r.planner.Plan(path, r.req.DestRoot, r.table)
	result.Plan = plan
	if err != nil {
		result.Err = errors.Wrapf(err, errors.ErrFileMove, "cannot plan %s", path).WithDetail("source", path)
		e.logFailure(r, result)
		return result
	}

	switch {
	case plan.Action == types.ActionSkip:
		r.logger.Info().
			Str("source", plan.SourcePath).
			Str("target", plan.TargetPath).
			Str("action", string(plan.Action)).
			Bool("dry_run", r.req.DryRun).
			Msgf("Already in place: %s", plan.SourcePath)

	case r.req.DryRun:
		r.planner.Reserve(plan.TargetPath)
		r.vacated = append(r.vacated, plan.SourcePath)
		r.filled = append(r.filled, plan.TargetPath)
		r.logger.Info().
			Str("source", plan.SourcePath).
			Str("target", plan.TargetPath).
			Str("action", string(plan.Action)).
			Bool("dry_run", true).
			Msgf("[Dry Run] Moves: %s --> %s", plan.SourcePath, plan.TargetPath)

	default:
		if err := e.fs.MkdirAll(plan.TargetDir, 0755); err != nil {
			result.Err = errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", plan.TargetDir).
				WithDetail("source", path)
			e.logFailure(r, result)
			return result
		}
		if err := filesystem.Move(e.fs, plan.SourcePath, plan.TargetPath); err != nil {
			result.Err = errors.Wrapf(err, errors.ErrFileMove, "cannot move %s", path).
				WithDetail("source", path).
				WithDetail("target", plan.TargetPath)
			e.logFailure(r, result)
			return result
		}
		r.logger.Info().
			Str("source", plan.SourcePath).
			Str("target", plan.TargetPath).
			Str("action", string(plan.Action)).
			Bool("dry_run", false).
			Msgf("Moved: %s --> %s", plan.SourcePath, plan.TargetPath)
	}

	return result
}

func (e *Engine) logFailure(r *run, result types.FileResult) {
	r.logger.Error().
		Err(result.Err).
		Str("source", result.Path).
		Str("target", result.Plan.TargetPath).
		Msg("Failed to organize file")
}
