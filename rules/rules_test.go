package rules

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderNames(t *testing.T) {
	r := Default()
	assert.True(t, r.IsValidRoot("rom"))
	assert.True(t, r.IsValidRoot("ROM"))
	assert.True(t, r.IsValidRoot("Movie"))
	assert.False(t, r.IsValidRoot("eq"))
	canonical, ok := r.CanonicalRoot("SOUND")
	assert.True(t, ok)
	assert.Equal(t, "sound", canonical)
	_, ok = r.CanonicalRoot("nativePC")
	assert.False(t, ok)

	assert.True(t, r.IsValidChild("eq"))
	assert.True(t, r.IsValidChild("initialize"))
	assert.True(t, r.IsValidChild("Initialize"))
	assert.False(t, r.IsValidChild("textures"))
	assert.Equal(t, "rom", r.ArchiveRoot())
}

func TestSameFolder(t *testing.T) {
	r := Default()
	assert.True(t, r.SameFolder("Rom", "rom"))
	assert.True(t, r.SameFolder("EQ", "eq"))
	assert.False(t, r.SameFolder("rom", "roms"))
}

func TestHasValidExtension(t *testing.T) {
	r := Default()
	for _, name := range []string{"a.arc", "B.ARC", "x.pck", "intro.wmv", "bgm.sngw"} {
		assert.True(t, r.HasValidExtension(name), name)
	}
	for _, name := range []string{"readme.txt", "arc", "a.arc.bak", "texture.tex"} {
		assert.False(t, r.HasValidExtension(name), name)
	}
	extended := New(Overrides{ExtraValidExtensions: []string{"TEX", " .dds"}})
	assert.True(t, extended.HasValidExtension("texture.tex"))
	assert.True(t, extended.HasValidExtension("texture.dds"))
	assert.False(t, r.HasValidExtension("texture.tex"), "default rule set must not change")
}

func TestIsBackupFolder(t *testing.T) {
	r := Default()
	for _, name := range []string{"backup", "Backup", "BACK UP", "my back  up files", "old_backups"} {
		assert.True(t, r.IsBackupFolder(name), name)
	}
	for _, name := range []string{"back", "up", "rom", "back_up"} {
		assert.False(t, r.IsBackupFolder(name), name)
	}
}

func TestHexExtension(t *testing.T) {
	r := Default()
	assert.True(t, r.IsHexExtension(".3f2a9c1d"))
	assert.True(t, r.IsHexExtension(".ABCDEF01"))
	assert.False(t, r.IsHexExtension(".3f2a9c1"))
	assert.False(t, r.IsHexExtension(".3f2a9c1d0"))
	assert.False(t, r.IsHexExtension(".3f2a9c1g"))
	assert.False(t, r.IsHexExtension("3f2a9c1d"))

	assert.True(t, r.IsHexExcluded("rom/sound/se/x.3f2a9c1d"))
	assert.True(t, r.IsHexExcluded("rom/IngameManual/x.3f2a9c1d"))
	assert.True(t, r.IsHexExcluded("rom/item_b/x.3f2a9c1d"))
	assert.False(t, r.IsHexExcluded("rom/eq/x.3f2a9c1d"))
	assert.False(t, r.IsHexExcluded("x.3f2a9c1d"))

	extended := New(Overrides{ExtraHexExclusions: []string{"**/gui/**"}})
	assert.True(t, extended.IsHexExcluded("rom/GUI/x.3f2a9c1d"))
}

func TestParseBodyFile(t *testing.T) {
	r := Default()
	tests := []struct {
		name        string
		category    string
		destination string
		dlc         bool
	}{
		{"f_a_eq00012.arc", "a_eq", "rom/eq/a_eq/f/", false},
		{"m_a_acc001.arc", "a_acc", "rom/eq/a_acc/", false},
		{"m_w_leg01.arc", "w_leg", "rom/eq/w_leg/", false},
		{"f_i_body000.arc", "i_body", "rom/eq/i_body/", false},
		{"m_w_arm003.arc", "w_arm", "rom/eq/w_arm/m/", false},
		{"f_a_eq8201.arc", "a_eq", "rom/dl1/eq/a_eq/f/", true},
		{"m_a_acc8209.arc", "a_acc", "rom/dl1/eq/a_acc/", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := r.ParseBodyFile(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.category, b.Category)
			assert.Equal(t, tc.name[0], b.Gender)
			assert.Equal(t, tc.dlc, b.DLC)
			assert.Equal(t, tc.destination, b.Destination())
		})
	}
}

func TestParseBodyFileRejects(t *testing.T) {
	r := Default()
	for _, name := range []string{"x_a_eq001.arc", "f_b_eq001.arc", "f_a_eq001.pck", "f_a_eq001.arc.bak", "readme.txt"} {
		_, err := r.ParseBodyFile(name)
		assert.ErrorIs(t, err, ErrNotBodyFile, name)
	}
	for _, name := range []string{"f_a_1.arc", "f_a_x_y.arc", "f_a_0eq.arc"} {
		_, err := r.ParseBodyFile(name)
		assert.ErrorIs(t, err, ErrAmbiguousBodyFile, name)
	}
}

func FuzzParseBodyFile(f *testing.F) {
	for _, seed := range []string{"f_a_eq00012.arc", "m_a_acc8201.arc", "f_a_1.arc", "m_w__x_.arc", "readme"} {
		f.Add(seed)
	}
	r := Default()
	f.Fuzz(func(t *testing.T, name string) {
		b, err := r.ParseBodyFile(name)
		if err != nil {
			if !errors.Is(err, ErrNotBodyFile) && !errors.Is(err, ErrAmbiguousBodyFile) {
				t.Fatalf("unexpected error for %q: %v", name, err)
			}
			return
		}
		if !strings.HasPrefix(b.Category, string(b.Part)+"_") || len(b.Category) <= 2 {
			t.Fatalf("category %q of %q lacks its part prefix", b.Category, name)
		}
		if !strings.HasPrefix(b.Destination(), "rom/") || !strings.HasSuffix(b.Destination(), "/") {
			t.Fatalf("destination %q of %q is not a rom directory", b.Destination(), name)
		}
	})
}
