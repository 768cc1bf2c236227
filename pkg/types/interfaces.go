package types

import (
	"io"
	"io/fs"
)

// FS is the slice of a filesystem that organizer touches
type FS interface {
	// planner: walking the source and probing targets
	ReadDir(name string) ([]fs.DirEntry, error)
	Lstat(name string) (fs.FileInfo, error)
	Stat(name string) (fs.FileInfo, error)

	// engine: creating category folders and moving files
	MkdirAll(path string, perm fs.FileMode) error
	Rename(oldpath, newpath string) error

	// reaper, and cleanup after a cross-device copy
	Remove(name string) error

	// rules files
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// cross-device copy; Create fails when name already exists
	Open(name string) (io.ReadCloser, error)
	Create(name string, perm fs.FileMode) (io.WriteCloser, error)
}
