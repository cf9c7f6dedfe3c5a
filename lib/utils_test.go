package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFileExt(t *testing.T) {
	tests := map[string]string{
		"f_a_eq00012.arc":  ".arc",
		"texture.3F2A9C1D": ".3f2a9c1d",
		"README":           "",
		"archive.tar.gz":   ".gz",
	}
	for name, expected := range tests {
		assert.Equal(t, expected, GetFileExt(name), "name: %s", name)
	}
}

func TestTrimFileExt(t *testing.T) {
	assert.Equal(t, "texture", TrimFileExt("texture.3f2a9c1d"))
	assert.Equal(t, "archive.tar", TrimFileExt("archive.tar.gz"))
	assert.Equal(t, "README", TrimFileExt("README"))
}

func TestLineSeparatedStrToSet(t *testing.T) {
	lines, firstFew := LineSeparatedStrToSet("Thumbs.db\r\n\n# comment\n.DS_Store\ndesktop.ini\n Thumbs.db \n__MACOSX\n")
	assert.Equal(t, 4, lines.Cardinality())
	assert.True(t, lines.Contains(".DS_Store"))
	assert.False(t, lines.Contains("# comment"))
	assert.Equal(t, []string{"Thumbs.db", ".DS_Store", "desktop.ini"}, firstFew)
}
