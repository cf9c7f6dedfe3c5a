package service

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	set "github.com/deckarep/golang-set/v2"
	mfs "github.com/m-manu/ddda-modfix/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTree(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "MyMod")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Mod", "eq"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Mod", "eq", "f_a_eq00012.arc"), []byte("12345"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Thumbs.db"), []byte("junk"), 0644))

	root, size, err := LoadTree(mfs.NewLocalFS(), dir, set.NewSet[string]("Thumbs.db"))
	require.NoError(t, err)
	assert.Equal(t, "MyMod", root.Name())
	assert.Equal(t, int64(7), size)
	assert.Equal(t, 2, root.FileCount())
	body := root.Find("Mod/eq/f_a_eq00012.arc")
	require.NotNil(t, body)
	assert.Equal(t, int64(5), body.Meta().Size)
	require.NotNil(t, root.Find("empty"))
	assert.True(t, root.Find("empty").IsDir())
	assert.Nil(t, root.Find("Thumbs.db"))

	var buf bytes.Buffer
	require.NoError(t, TreeToCsv(root, &buf))
	assert.Contains(t, buf.String(), "Mod/eq/f_a_eq00012.arc,file,5,")
	assert.Contains(t, buf.String(), "empty,directory,0,")
}

func TestLoadTreeMissingDirectory(t *testing.T) {
	_, _, err := LoadTree(mfs.NewLocalFS(), filepath.Join(t.TempDir(), "nope"), set.NewSet[string]())
	assert.Error(t, err)
}
