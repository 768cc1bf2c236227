package organizer_test

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/organizer/pkg/errors"
	"github.com/arthur-debert/organizer/pkg/filesystem"
	"github.com/arthur-debert/organizer/pkg/organizer"
	"github.com/arthur-debert/organizer/pkg/rules"
	"github.com/arthur-debert/organizer/pkg/testutil"
	"github.com/arthur-debert/organizer/pkg/types"
)

func defaultTable(t *testing.T) *rules.Table {
	t.Helper()
	table, err := rules.DefaultTable()
	require.NoError(t, err)
	return table
}

func organize(t *testing.T, fsys types.FS, req types.OrganizeRequest, opts ...organizer.Option) types.RunStats {
	t.Helper()
	stats, err := organizer.New(fsys, zerolog.Nop(), opts...).Organize(context.Background(), req, defaultTable(t))
	require.NoError(t, err)
	return stats
}

func TestOrganize_Flat(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/src", map[string]string{
		"a.txt":        "a",
		"b.PNG":        "b",
		"c.unknown":    "c",
		"README":       "r",
		"nested/d.mp3": "d",
	})

	stats := organize(t, fsys, types.NewOrganizeRequest("/src", "", false, false, false))

	assert.Equal(t, 4, stats.Moved)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 0, stats.Errors)
	assert.NotEmpty(t, stats.RunID)
	assert.Equal(t, []string{
		"Documents/a.txt",
		"Images/b.PNG",
		"Others/README",
		"Others/c.unknown",
		"nested/d.mp3",
	}, testutil.ListFiles(t, fsys, "/src"))
}

func TestOrganize_Recursive(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/src", map[string]string{
		"a.txt":           "a",
		"x/y/song.mp3":    "s",
		"x/clip.mp4":      "c",
		"Documents/b.pdf": "b",
	})

	stats := organize(t, fsys, types.NewOrganizeRequest("/src", "", true, false, false))

	assert.Equal(t, 3, stats.Moved)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, []string{
		"Documents/a.txt",
		"Documents/b.pdf",
		"Music/song.mp3",
		"Videos/clip.mp4",
	}, testutil.ListFiles(t, fsys, "/src"))
	// without cleaning, emptied directories stay
	assert.Contains(t, testutil.ListDirs(t, fsys, "/src"), "x/y")
}

func TestOrganize_SeparateDestination(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/src", map[string]string{"a.txt": "a", "sub/b.zip": "b"})

	stats := organize(t, fsys, types.NewOrganizeRequest("/src", "/out", true, false, true))

	assert.Equal(t, 2, stats.Moved)
	assert.Equal(t, 1, stats.Removed)
	assert.Empty(t, testutil.ListFiles(t, fsys, "/src"))
	assert.Empty(t, testutil.ListDirs(t, fsys, "/src"))
	assert.Equal(t, []string{"Archives/b.zip", "Documents/a.txt"}, testutil.ListFiles(t, fsys, "/out"))
}

func TestOrganize_Idempotent(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/src", map[string]string{
		"a.txt":      "a",
		"b.jpg":      "b",
		"deep/c.wav": "c",
	})
	req := types.NewOrganizeRequest("/src", "", true, false, false)

	first := organize(t, fsys, req)
	require.Equal(t, 3, first.Moved)
	after := testutil.ListFiles(t, fsys, "/src")

	second := organize(t, fsys, req)
	assert.Equal(t, 0, second.Moved)
	assert.Equal(t, 3, second.Skipped)
	assert.Equal(t, after, testutil.ListFiles(t, fsys, "/src"))
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestOrganize_LogsEveryFileAtInfo(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/src", map[string]string{
		"Documents/a.txt": "a",
		"b.jpg":           "b",
	})

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	stats, err := organizer.New(fsys, logger).Organize(context.Background(),
		types.NewOrganizeRequest("/src", "", true, false, false), defaultTable(t))
	require.NoError(t, err)
	require.Equal(t, 1, stats.Moved)
	require.Equal(t, 1, stats.Skipped)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `"action":"skip"`))
	assert.Equal(t, 1, strings.Count(out, `"action":"move"`))
	assert.Contains(t, out, `"level":"info"`)
}

func TestOrganize_CollisionKeepsBothFiles(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/src", map[string]string{
		"one/a.txt": "first",
		"two/a.txt": "second",
	})

	stats := organize(t, fsys, types.NewOrganizeRequest("/src", "", true, false, true))

	assert.Equal(t, 2, stats.Moved)
	assert.Equal(t, 2, stats.Removed)
	assert.Equal(t, []string{"Documents/a.txt", "Documents/a_(1).txt"}, testutil.ListFiles(t, fsys, "/src"))

	contents := []string{
		testutil.ReadString(t, fsys, "/src/Documents/a.txt"),
		testutil.ReadString(t, fsys, "/src/Documents/a_(1).txt"),
	}
	sort.Strings(contents)
	assert.Equal(t, []string{"first", "second"}, contents)
}

func TestOrganize_CollisionWithExistingFile(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/src", map[string]string{
		"a.txt":           "new",
		"Documents/a.txt": "old",
	})

	stats := organize(t, fsys, types.NewOrganizeRequest("/src", "", false, false, false))

	assert.Equal(t, 1, stats.Moved)
	assert.Equal(t, "old", testutil.ReadString(t, fsys, "/src/Documents/a.txt"))
	assert.Equal(t, "new", testutil.ReadString(t, fsys, "/src/Documents/a_(1).txt"))
}

func TestOrganize_DryRunMakesNoChanges(t *testing.T) {
	fsys := testutil.NewFaultFS(testutil.NewTestFS())
	testutil.WriteTree(t, fsys, "/src", map[string]string{
		"a.txt":       "a",
		"x/a.txt":     "b",
		"x/y/pic.gif": "c",
		"empty/":      "",
	})
	filesBefore := testutil.ListFiles(t, fsys, "/src")
	dirsBefore := testutil.ListDirs(t, fsys, "/src")
	mutations := fsys.MutationCalls()

	stats := organize(t, fsys, types.NewOrganizeRequest("/src", "/out", true, true, true))

	assert.True(t, stats.DryRun)
	assert.Equal(t, 3, stats.Moved)
	// x/y, empty and x would all be emptied
	assert.Equal(t, 3, stats.Removed)
	assert.Equal(t, mutations, fsys.MutationCalls())
	assert.Equal(t, filesBefore, testutil.ListFiles(t, fsys, "/src"))
	assert.Equal(t, dirsBefore, testutil.ListDirs(t, fsys, "/src"))
	_, err := fsys.Stat("/out")
	assert.True(t, os.IsNotExist(err))
}

func TestOrganize_DryRunMatchesRealRun(t *testing.T) {
	tree := map[string]string{
		"a.txt":            "1",
		"one/a.txt":        "2",
		"two/a.txt":        "3",
		"Documents/a.txt":  "4",
		"photos/x.JPG":     "5",
		"photos/raw/x.jpg": "6",
		"misc/Makefile":    "7",
		"misc/empty/":      "",
		"Images/keep.png":  "8",
	}

	run := func(dryRun bool) ([]types.MovePlan, types.RunStats) {
		fsys := testutil.NewTestFS()
		testutil.WriteTree(t, fsys, "/src", tree)

		var plans []types.MovePlan
		observer := organizer.WithObserver(func(r types.FileResult) {
			require.NoError(t, r.Err)
			plans = append(plans, r.Plan)
		})
		stats := organize(t, fsys, types.NewOrganizeRequest("/src", "", true, dryRun, true), observer)
		return plans, stats
	}

	dryPlans, dryStats := run(true)
	realPlans, realStats := run(false)

	assert.Equal(t, realPlans, dryPlans)
	assert.Equal(t, realStats.Moved, dryStats.Moved)
	assert.Equal(t, realStats.Skipped, dryStats.Skipped)
	assert.Equal(t, realStats.Removed, dryStats.Removed)
	assert.Equal(t, 6, realStats.Moved)
	assert.Equal(t, 2, realStats.Skipped)
	assert.Equal(t, 6, realStats.Removed)
}

func TestOrganize_CleanSourceRemovesEmptiedDirs(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/src", map[string]string{
		"a/b/c/file.txt": "x",
		"a/song.mp3":     "y",
		"d/e/":           "",
	})

	stats := organize(t, fsys, types.NewOrganizeRequest("/src", "", true, false, true))

	assert.Equal(t, 2, stats.Moved)
	assert.Equal(t, 5, stats.Removed)
	assert.Equal(t, []string{"Documents", "Music"}, testutil.ListDirs(t, fsys, "/src"))

	info, err := fsys.Stat("/src")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOrganize_CleanSourceKeepsNonEmptyDirs(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/src", map[string]string{
		"a/file.txt": "x",
		"b/c/d.md":   "y",
	})

	// flat: nothing below the root is touched, so nothing is emptied
	stats := organize(t, fsys, types.NewOrganizeRequest("/src", "", false, false, true))

	assert.Equal(t, 0, stats.Moved)
	assert.Equal(t, 0, stats.Removed)
	assert.Equal(t, []string{"a", "b", "b/c"}, testutil.ListDirs(t, fsys, "/src"))
}

func TestOrganize_ErrorIsolation(t *testing.T) {
	denied := func(path string) error {
		return &fs.PathError{Op: "rename", Path: path, Err: fs.ErrPermission}
	}
	fsys := testutil.NewFaultFS(testutil.NewTestFS()).
		WithError(testutil.OpRename, "/src/b.txt", denied("/src/b.txt")).
		WithError(testutil.OpRename, "/src/sub/e.png", denied("/src/sub/e.png"))
	testutil.WriteTree(t, fsys, "/src", map[string]string{
		"a.txt":     "a",
		"b.txt":     "b",
		"c.mp3":     "c",
		"sub/d.zip": "d",
		"sub/e.png": "e",
	})

	var failed []types.FileResult
	observer := organizer.WithObserver(func(r types.FileResult) {
		if r.Failed() {
			failed = append(failed, r)
		}
	})
	stats := organize(t, fsys, types.NewOrganizeRequest("/src", "", true, false, true), observer)

	assert.Equal(t, 2, stats.Errors)
	assert.Equal(t, 3, stats.Moved)
	assert.Equal(t, []string{
		"Archives/d.zip",
		"Documents/a.txt",
		"Music/c.mp3",
		"b.txt",
		"sub/e.png",
	}, testutil.ListFiles(t, fsys, "/src"))

	require.Len(t, failed, 2)
	for _, r := range failed {
		assert.True(t, errors.IsErrorCode(r.Err, errors.ErrFileMove))
		assert.ErrorIs(t, r.Err, fs.ErrPermission)
	}
}

func TestOrganize_DirCreateFailureIsCounted(t *testing.T) {
	fsys := testutil.NewFaultFS(testutil.NewTestFS()).
		WithError(testutil.OpMkdirAll, "/src/Music", &fs.PathError{Op: "mkdir", Path: "/src/Music", Err: fs.ErrPermission})
	testutil.WriteTree(t, fsys, "/src", map[string]string{"a.mp3": "a", "b.wav": "b", "c.txt": "c"})

	var codes []errors.ErrorCode
	observer := organizer.WithObserver(func(r types.FileResult) {
		if r.Failed() {
			codes = append(codes, errors.GetErrorCode(r.Err))
		}
	})
	stats := organize(t, fsys, types.NewOrganizeRequest("/src", "", false, false, false), observer)

	assert.Equal(t, 2, stats.Errors)
	assert.Equal(t, 1, stats.Moved)
	assert.Equal(t, []errors.ErrorCode{errors.ErrDirCreate, errors.ErrDirCreate}, codes)
}

func TestOrganize_PathErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		dest     string
		wantCode errors.ErrorCode
	}{
		{"missing_source", "/nope", "", errors.ErrPathNotFound},
		{"source_is_file", "/src/a.txt", "", errors.ErrPathNotDir},
		{"dest_is_file", "/src", "/src/a.txt", errors.ErrPathNotDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := testutil.NewFaultFS(testutil.NewTestFS())
			testutil.WriteTree(t, fsys, "/src", map[string]string{"a.txt": "a"})
			mutations := fsys.MutationCalls()

			stats, err := organizer.New(fsys, zerolog.Nop()).Organize(
				context.Background(),
				types.NewOrganizeRequest(tt.source, tt.dest, true, false, true),
				defaultTable(t),
			)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(err))
			assert.Equal(t, errors.KindPath, errors.KindOf(err))
			assert.Equal(t, 0, stats.Processed())
			assert.Equal(t, mutations, fsys.MutationCalls())
		})
	}
}

func TestOrganize_Cancelled(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/src", map[string]string{"a.txt": "a", "b.txt": "b", "c.txt": "c", "d/": ""})

	ctx, cancel := context.WithCancel(context.Background())
	observer := organizer.WithObserver(func(types.FileResult) { cancel() })

	stats, err := organizer.New(fsys, zerolog.Nop(), observer).Organize(
		ctx,
		types.NewOrganizeRequest("/src", "", false, false, true),
		defaultTable(t),
	)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInterrupted))
	assert.Equal(t, errors.ExitInterrupted, errors.ExitCode(err))
	assert.Equal(t, 1, stats.Moved)
	assert.Equal(t, 0, stats.Removed)
	// the completed move stays and the reaper did not run
	assert.Equal(t, []string{"Documents/a.txt", "b.txt", "c.txt"}, testutil.ListFiles(t, fsys, "/src"))
	assert.Contains(t, testutil.ListDirs(t, fsys, "/src"), "d")
}

func TestOrganize_NilTable(t *testing.T) {
	fsys := testutil.NewTestFS()
	_, err := organizer.New(fsys, zerolog.Nop()).Organize(context.Background(), types.OrganizeRequest{Source: "/"}, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func TestOrganize_RealFilesystemSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	fsys := filesystem.NewOS()
	testutil.WriteTree(t, fsys, src, map[string]string{
		"a.txt":       "a",
		"inner/b.png": "b",
	})
	outside := filepath.Join(root, "outside")
	testutil.WriteTree(t, fsys, outside, map[string]string{"c.mp3": "c"})
	require.NoError(t, os.Symlink(filepath.Join(src, "a.txt"), filepath.Join(src, "link.txt")))
	require.NoError(t, os.Symlink(outside, filepath.Join(src, "linked-dir")))

	stats := organize(t, fsys, types.NewOrganizeRequest(src, "", true, false, true))

	assert.Equal(t, 2, stats.Moved)
	assert.Equal(t, 0, stats.Errors)
	assert.Equal(t, 1, stats.Removed)
	assert.Equal(t, []string{"Documents/a.txt", "Images/b.png"}, testutil.ListFiles(t, fsys, src))

	_, err := os.Lstat(filepath.Join(src, "link.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "c", testutil.ReadString(t, fsys, filepath.Join(outside, "c.mp3")))
}
