package organizer

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/organizer/pkg/errors"
)

// snapshot lists the regular files to process before anything moves, so a
// file moved into a folder below the source is never visited twice.
// Symlinks and other special files are skipped and directories are only
// entered in recursive mode.
func (e *Engine) snapshot(ctx context.Context, r *run) ([]string, error) {
	entries, err := e.fs.ReadDir(r.req.Source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPathNotFound, "cannot list source %s", r.req.Source).
			WithDetail("path", r.req.Source)
	}

	var files []string
	pending := []string{}
	for _, entry := range entries {
		path := filepath.Join(r.req.Source, entry.Name())
		switch {
		case entry.IsDir():
			if r.req.Recursive {
				pending = append(pending, path)
			}
		case entry.Type().IsRegular():
			files = append(files, path)
		default:
			r.logger.Trace().Str("path", path).Msg("Skipping non-regular entry")
		}
	}

	for len(pending) > 0 {
		if ctx.Err() != nil {
			break
		}
		dir := pending[0]
		pending = pending[1:]

		entries, err := e.fs.ReadDir(dir)
		if err != nil {
			// the files below dir are lost to this run
			r.stats.Errors++
			r.logger.Error().Err(err).Str("dir", dir).Msg("Cannot list directory, skipping it")
			continue
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			switch {
			case entry.IsDir():
				pending = append(pending, path)
			case entry.Type().IsRegular():
				files = append(files, path)
			default:
				r.logger.Trace().Str("path", path).Msg("Skipping non-regular entry")
			}
		}
	}

	r.logger.Debug().Int("files", len(files)).Bool("recursive", r.req.Recursive).Msg("Collected files")
	return files, nil
}
