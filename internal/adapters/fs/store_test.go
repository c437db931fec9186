package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/breakdown/internal/adapters/fs"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
)

var (
	_ ports.ContentStore = (*fs.Store)(nil)
	_ ports.ContentStore = (*fs.MemoryStore)(nil)
)

func TestStore_WriteReadExists(t *testing.T) {
	root := t.TempDir()
	store := fs.NewStore(root, fs.NewWalker())

	require.NoError(t, store.Write("to/project/f_project.md", []byte("Hello {name}")))

	assert.FileExists(t, filepath.Join(root, "to", "project", "f_project.md"))
	assert.True(t, store.Exists("to/project/f_project.md"))
	assert.False(t, store.Exists("to/project"), "directories are not documents")

	data, err := store.Read("to/project/f_project.md")
	require.NoError(t, err)
	assert.Equal(t, "Hello {name}", string(data))
}

func TestStore_ReadMissing(t *testing.T) {
	store := fs.NewStore(t.TempDir(), fs.NewWalker())

	_, err := store.Read("to/project/missing.md")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_RejectsEscapingPaths(t *testing.T) {
	store := fs.NewStore(t.TempDir(), fs.NewWalker())

	_, err := store.Read("../outside.md")
	assert.ErrorIs(t, err, domain.ErrMalformedPath)

	err = store.Write("/etc/passwd", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrMalformedPath)

	assert.False(t, store.Exists("../../x"))
}

func TestStore_List(t *testing.T) {
	root := t.TempDir()
	store := fs.NewStore(root, fs.NewWalker())

	require.NoError(t, store.Write("to/task/f_task.md", []byte("b")))
	require.NoError(t, store.Write("summary/issue/f_issue.md", []byte("a")))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".DS_Store"), []byte("junk"), 0o600))

	paths, err := store.List("")
	require.NoError(t, err)
	assert.Equal(t, []string{"summary/issue/f_issue.md", "to/task/f_task.md"}, paths)

	paths, err = store.List("to")
	require.NoError(t, err)
	assert.Equal(t, []string{"to/task/f_task.md"}, paths)
}

func TestStore_ListMissingRoot(t *testing.T) {
	store := fs.NewStore(filepath.Join(t.TempDir(), "absent"), fs.NewWalker())

	paths, err := store.List("")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestMemoryStore(t *testing.T) {
	store := fs.NewMemoryStore(map[string]string{
		"to/project/f_project.md": "Hello",
		"/to/issue/f_issue.md":    "Issue",
	})

	assert.True(t, store.Exists("to/issue/f_issue.md"))

	data, err := store.Read("to/project/f_project.md")
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(data))

	_, err = store.Read("nope.md")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Write("summary/x/f_x.md", []byte("S")))
	paths, err := store.List("")
	require.NoError(t, err)
	assert.Equal(t, []string{"summary/x/f_x.md", "to/issue/f_issue.md", "to/project/f_project.md"}, paths)

	paths, err = store.List("to/")
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestMemoryStore_FailWrites(t *testing.T) {
	boom := errors.New("disk full")
	store := fs.NewMemoryStore(nil)
	store.FailWrites = map[string]error{"a/b/c.md": boom}

	err := store.Write("a/b/c.md", []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, store.Exists("a/b/c.md"))
}

func TestStore_ListUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not restrict root")
	}
	root := t.TempDir()
	store := fs.NewStore(root, fs.NewWalker())
	require.NoError(t, store.Write("to/task/f_task.md", []byte("x")))

	locked := filepath.Join(root, "to")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o750) })

	_, err := store.List("")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
}
