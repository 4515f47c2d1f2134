package discover

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	a := touch(t, root, "a.xlsx")
	b := touch(t, root, "sub/b.txt")
	c := touch(t, root, "sub/deeper/c.xls")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	files, err := Walk(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, c}, files)

	for _, f := range files {
		assert.True(t, filepath.IsAbs(f), f)
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

// lockedFS fails to list the directories named in locked.
type lockedFS struct {
	fstest.MapFS
	locked map[string]bool
}

func (f lockedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if f.locked[name] {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrPermission}
	}
	return f.MapFS.ReadDir(name)
}

func TestWalkFS_UnreadableDirectories(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "data")
	files := fstest.MapFS{
		"a.xlsx":             {Data: []byte("x")},
		"locked/b.xlsx":      {Data: []byte("x")},
		"locked/deep/c.xlsx": {Data: []byte("x")},
		"open/d.xls":         {Data: []byte("x")},
	}

	tests := []struct {
		name     string
		locked   []string
		expected []string
		wantErr  bool
		warnings int
	}{
		{
			name:     "Nothing locked",
			expected: []string{"a.xlsx", "locked/b.xlsx", "locked/deep/c.xlsx", "open/d.xls"},
		},
		{
			name:     "Locked subdirectory is skipped",
			locked:   []string{"locked"},
			expected: []string{"a.xlsx", "open/d.xls"},
			warnings: 1,
		},
		{
			name:     "Locked nested directory is skipped",
			locked:   []string{"locked/deep", "open"},
			expected: []string{"a.xlsx", "locked/b.xlsx"},
			warnings: 2,
		},
		{
			name:    "Locked root fails",
			locked:  []string{"."},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := lockedFS{MapFS: files, locked: map[string]bool{}}
			for _, dir := range tt.locked {
				fsys.locked[dir] = true
			}
			var logs bytes.Buffer
			logger := log.New(&logs)

			got, err := walkFS(fsys, base, logger)
			if tt.wantErr {
				assert.ErrorIs(t, err, fs.ErrPermission)
				return
			}
			require.NoError(t, err)

			want := make([]string, len(tt.expected))
			for i, rel := range tt.expected {
				want[i] = filepath.Join(base, filepath.FromSlash(rel))
			}
			assert.Equal(t, want, got)
			assert.Equal(t, tt.warnings, bytes.Count(logs.Bytes(), []byte("skipping unreadable directory")))
		})
	}
}

func TestWalk_UnreadableSubdirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits do not block directory listing on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root can list any directory")
	}

	root := t.TempDir()
	a := touch(t, root, "a.xlsx")
	touch(t, root, "private/b.xlsx")
	c := touch(t, root, "z/c.xls")

	private := filepath.Join(root, "private")
	require.NoError(t, os.Chmod(private, 0o000))
	t.Cleanup(func() { os.Chmod(private, 0o755) })

	files, err := Walk(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{a, c}, files)

	require.NoError(t, os.Chmod(root, 0o000))
	t.Cleanup(func() { os.Chmod(root, 0o755) })
	_, err = Walk(root, nil)
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("dot-file convention is Unix only")
	}

	root := t.TempDir()
	want := []string{
		touch(t, root, "book.xlsx"),
		touch(t, root, "legacy.xls"),
		touch(t, root, "nested/inner.xlsx"),
	}
	touch(t, root, ".hidden.xlsx")
	touch(t, root, "~$book.xlsx")
	touch(t, root, "notes.txt")
	touch(t, root, "nested/~$inner.xlsx")
	touch(t, root, "nested/.dot.xls")

	got, err := NewClassifier().Scan(root, nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFilter_PreservesOrderAndDropsFailures(t *testing.T) {
	paths := make([]string, 0, 50)
	for i := range 50 {
		paths = append(paths, filepath.Join("/data", string(rune('a'+i%26))+".xlsx"))
	}
	paths = append(paths, "/data/broken.xlsx")

	c := Classifier{Hidden: func(p string) (bool, error) {
		if filepath.Base(p) == "broken.xlsx" {
			return false, errors.New("stat failed")
		}
		return false, nil
	}}

	got := c.Filter(paths, nil)
	assert.Equal(t, paths[:50], got)
}

func TestIsHidden_MissingFile(t *testing.T) {
	_, err := IsHidden(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
