// Package planner decides where a single file goes: the rule folder under
// the destination root, a skip when the file is already there, and a
// numbered name when the target path is taken.
package planner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/organizer/pkg/logging"
	"github.com/arthur-debert/organizer/pkg/rules"
	"github.com/arthur-debert/organizer/pkg/types"
)

// Planner computes move plans against a filesystem. It is not safe for
// concurrent use.
type Planner struct {
	fs       types.FS
	logger   zerolog.Logger
	reserved map[string]struct{}
}

// New creates a planner
func New(fs types.FS, logger zerolog.Logger) *Planner {
	return &Planner{
		fs:       fs,
		logger:   logging.Component(logger, "planner"),
		reserved: make(map[string]struct{}),
	}
}

// Extension returns the extension of the file name in path, including the
// dot. Names without a dot, names whose only dot is the leading one
// (".bashrc") and names ending in a dot have no extension.
func Extension(path string) string {
	base := filepath.Base(path)
	idx := strings.LastIndex(base, ".")
	if idx <= 0 || idx == len(base)-1 {
		return ""
	}
	return base[idx:]
}

// CollisionName returns the n-th alternative for a taken file name:
// "report.pdf" becomes "report_(n).pdf".
func CollisionName(name string, n int) string {
	ext := Extension(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_(%d)%s", stem, n, ext)
}

// Reserve marks path as taken for later plans. Dry runs use it so that
// simulated moves collide the same way real ones would.
func (p *Planner) Reserve(path string) {
	p.reserved[filepath.Clean(path)] = struct{}{}
}

// Plan computes the plan for filePath under destRoot
func (p *Planner) Plan(filePath, destRoot string, table *rules.Table) (types.MovePlan, error) {
	filePath = filepath.Clean(filePath)
	folder := table.Folder(Extension(filePath))
	plan := types.MovePlan{
		SourcePath: filePath,
		TargetDir:  filepath.Join(destRoot, folder),
	}

	// must come before collision handling or a placed file collides with itself
	if filepath.Dir(filePath) == plan.TargetDir {
		plan.Action = types.ActionSkip
		plan.TargetPath = filePath
		return plan, nil
	}

	name := filepath.Base(filePath)
	candidate := filepath.Join(plan.TargetDir, name)
	for n := 1; ; n++ {
		taken, err := p.taken(candidate, filePath)
		if err != nil {
			return plan, err
		}
		if !taken {
			break
		}
		candidate = filepath.Join(plan.TargetDir, CollisionName(name, n))
	}

	if n := filepath.Base(candidate); n != name {
		p.logger.Debug().
			Str("source", filePath).
			Str("target", candidate).
			Msg("Resolved name collision")
	}

	plan.Action = types.ActionMove
	plan.TargetPath = candidate
	return plan, nil
}

// taken reports whether something other than source occupies candidate
func (p *Planner) taken(candidate, source string) (bool, error) {
	if candidate == source {
		return false, nil
	}
	if _, ok := p.reserved[candidate]; ok {
		return true, nil
	}
	info, err := p.fs.Lstat(candidate)
	if err != nil {
		// ENOTDIR: the folder name is taken by a file; creating it fails later
		if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
			return false, nil
		}
		return false, err
	}
	if srcInfo, err := p.fs.Lstat(source); err == nil && os.SameFile(srcInfo, info) {
		return false, nil
	}
	return true, nil
}
