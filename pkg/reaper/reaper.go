// Package reaper removes directories left empty after files were moved out.
package reaper

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/organizer/pkg/logging"
	"github.com/arthur-debert/organizer/pkg/types"
)

// Options controls one reaper pass
type Options struct {
	DryRun bool
	// Vacated lists files a dry run would have moved away; they are treated
	// as already gone when checking for emptiness
	Vacated []string
	// Filled lists paths a dry run would have created; their parent
	// directories are never empty
	Filled []string
}

// Reaper deletes empty directories bottom-up
type Reaper struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a reaper
func New(fs types.FS, logger zerolog.Logger) *Reaper {
	return &Reaper{
		fs:     fs,
		logger: logging.Component(logger, "reaper"),
	}
}

// Reap removes every empty directory below root and returns how many were
// removed (or would be, under dryRun). root itself is never removed.
func (r *Reaper) Reap(root string, dryRun bool) int {
	return r.ReapWith(root, Options{DryRun: dryRun})
}

// ReapWith runs a single pass over the directories below root, deepest
// first, so a parent emptied by its children's removal is handled in the
// same pass. Errors are logged and the directory is left in place.
func (r *Reaper) ReapWith(root string, opts Options) int {
	root = filepath.Clean(root)
	dirs := r.collect(root)

	sort.SliceStable(dirs, func(i, j int) bool {
		return depth(dirs[i]) > depth(dirs[j])
	})

	gone := make(map[string]bool, len(opts.Vacated))
	for _, path := range opts.Vacated {
		gone[filepath.Clean(path)] = true
	}
	filled := make(map[string]bool)
	for _, path := range opts.Filled {
		for dir := filepath.Dir(filepath.Clean(path)); dir != root && strings.HasPrefix(dir, root); dir = filepath.Dir(dir) {
			filled[dir] = true
		}
	}

	removed := 0
	for _, dir := range dirs {
		if filled[dir] {
			continue
		}
		empty, err := r.isEmpty(dir, gone)
		if err != nil {
			r.logger.Warn().Err(err).Str("dir", dir).Msg("Cannot read directory, leaving it in place")
			continue
		}
		if !empty {
			continue
		}

		if opts.DryRun {
			gone[dir] = true
			removed++
			r.logger.Info().Str("dir", dir).Bool("dry_run", true).Msg("[Dry Run] Removes empty directory")
			continue
		}

		if err := r.fs.Remove(dir); err != nil {
			event := r.logger.Warn()
			if !os.IsPermission(err) {
				event = r.logger.Error()
			}
			event.Err(err).Str("dir", dir).Msg("Cannot remove directory, leaving it in place")
			continue
		}
		removed++
		r.logger.Info().Str("dir", dir).Msg("Removed empty directory")
	}

	r.logger.Debug().Str("root", root).Int("removed", removed).Bool("dry_run", opts.DryRun).Msg("Reaper pass finished")
	return removed
}

// collect lists every directory below root without following symlinks
func (r *Reaper) collect(root string) []string {
	var dirs []string
	entries, err := r.fs.ReadDir(root)
	if err != nil {
		r.logger.Warn().Err(err).Str("dir", root).Msg("Cannot read directory, skipping subtree")
		return nil
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		dirs = append(dirs, path)
		dirs = append(dirs, r.collect(path)...)
	}
	return dirs
}

func (r *Reaper) isEmpty(dir string, gone map[string]bool) (bool, error) {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if !gone[filepath.Join(dir, entry.Name())] {
			return false, nil
		}
	}
	return true, nil
}

func depth(path string) int {
	return strings.Count(path, string(filepath.Separator))
}
