package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"syscall"

	"github.com/arthur-debert/organizer/pkg/types"
)

var errDirNotEmpty = syscall.ENOTEMPTY

// Move renames src to dst. When the rename crosses filesystems the file is
// streamed to dst with its mode preserved and the source removed afterwards.
func Move(fsys types.FS, src, dst string) error {
	err := fsys.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	return copyAndRemove(fsys, src, dst)
}

func copyAndRemove(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	if err := copyFile(fsys, src, dst, info.Mode().Perm()); err != nil {
		return err
	}
	if err := fsys.Remove(src); err != nil {
		// leave a single copy behind rather than two
		_ = fsys.Remove(dst)
		return err
	}
	return nil
}

// copyFile removes a partial dst when any step fails
func copyFile(fsys types.FS, src, dst string, perm fs.FileMode) (err error) {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := fsys.Create(dst, perm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = fsys.Remove(dst)
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
