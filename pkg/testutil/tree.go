package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/organizer/pkg/filesystem"
	"github.com/arthur-debert/organizer/pkg/types"
)

// NewTestFS returns an empty in-memory filesystem
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// WriteTree creates files under root. Keys are slash-separated paths
// relative to root; a key ending in "/" creates an empty directory.
func WriteTree(t testing.TB, fsys types.FS, root string, files map[string]string) {
	t.Helper()

	require.NoError(t, fsys.MkdirAll(root, 0755))
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, fsys.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
	}
}

// ListFiles returns every regular file under root as sorted slash paths
// relative to root
func ListFiles(t testing.TB, fsys types.FS, root string) []string {
	t.Helper()
	return walk(t, fsys, root, "", false)
}

// ListDirs returns every directory below root as sorted slash paths
// relative to root
func ListDirs(t testing.TB, fsys types.FS, root string) []string {
	t.Helper()
	return walk(t, fsys, root, "", true)
}

func walk(t testing.TB, fsys types.FS, root, prefix string, dirs bool) []string {
	t.Helper()

	entries, err := fsys.ReadDir(filepath.Join(root, filepath.FromSlash(prefix)))
	require.NoError(t, err)

	var out []string
	for _, entry := range entries {
		rel := entry.Name()
		if prefix != "" {
			rel = prefix + "/" + entry.Name()
		}
		if entry.IsDir() {
			if dirs {
				out = append(out, rel)
			}
			out = append(out, walk(t, fsys, root, rel, dirs)...)
			continue
		}
		if !dirs && entry.Type()&fs.ModeType == 0 {
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out
}

// ReadString returns the content of path
func ReadString(t testing.TB, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
