package fs

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	set "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalWalk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "rom", "eq"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git", "objects"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rom", "eq", "a.arc"), []byte("abc"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rom", "._a.arc"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Thumbs.db"), []byte("x"), 0644))

	entries, err := NewLocalFS().Walk(dir, set.NewSet[string](".git", "Thumbs.db"))
	require.NoError(t, err)
	var paths []string
	for _, e := range entries {
		paths = append(paths, e.RelativePath)
		if e.RelativePath == "rom/eq/a.arc" {
			assert.False(t, e.IsDir)
			assert.Equal(t, int64(3), e.Size)
		}
		if e.RelativePath == "empty" {
			assert.True(t, e.IsDir)
		}
	}
	sort.Strings(paths)
	assert.Equal(t, []string{"empty", "rom", "rom/eq", "rom/eq/a.arc"}, paths)

	_, err = NewLocalFS().Walk(filepath.Join(dir, "missing"), nil)
	assert.Error(t, err)
}

func TestLocalRemoveAllAndReadDir(t *testing.T) {
	dir := t.TempDir()
	l := NewLocalFS()
	require.NoError(t, l.MkdirAll(l.Join(dir, "a", "b")))
	require.NoError(t, os.WriteFile(l.Join(dir, "a", "b", "x.arc"), nil, 0644))
	infos, err := l.ReadDir(l.Join(dir, "a"))
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.True(t, infos[0].IsDir)
	assert.Equal(t, "b", infos[0].Name)

	require.NoError(t, l.RemoveAll(l.Join(dir, "a")))
	assert.False(t, l.IsReadableDirectory(l.Join(dir, "a")))
	assert.NoError(t, l.RemoveAll(l.Join(dir, "a")))
}

func TestRelPath(t *testing.T) {
	rel, err := relPath("/mods/x", "/mods/x/rom/eq")
	require.NoError(t, err)
	assert.Equal(t, "rom/eq", rel)
	rel, err = relPath("/mods/x/", "/mods/x")
	require.NoError(t, err)
	assert.Equal(t, ".", rel)
	_, err = relPath("/mods/x", "/mods/xy/rom")
	assert.Error(t, err)
}
