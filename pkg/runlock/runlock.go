// Package runlock keeps two organizer processes from moving files out of
// the same source directory at the same time.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/arthur-debert/organizer/pkg/errors"
	"github.com/arthur-debert/organizer/pkg/internal/hashutil"
)

// Lock is a held run lock
type Lock struct {
	source string
	lock   *flock.Flock
}

// PathFor returns the lock file used for source inside dir
func PathFor(dir, source string) string {
	return filepath.Join(dir, hashutil.ShortSum(filepath.Clean(source), 8)+".lock")
}

// Acquire takes the lock for source without blocking. It fails with
// ErrRunLocked when another process holds it.
func Acquire(dir, source string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot create lock directory %s", dir)
	}

	path := PathFor(dir, source)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot acquire lock %s", path)
	}
	if !ok {
		return nil, errors.Newf(errors.ErrRunLocked, "another organizer run is already working on %s", source).
			WithDetail("lock", path).
			WithDetail("source", source)
	}
	return &Lock{source: source, lock: fl}, nil
}

// Path returns the lock file path
func (l *Lock) Path() string {
	return l.lock.Path()
}

// Release unlocks. The lock file itself is left in place.
func (l *Lock) Release() error {
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock for %s: %w", l.source, err)
	}
	return nil
}
