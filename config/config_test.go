package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-manu/ddda-modfix/checker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modfix.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, checker.DefaultQuarantineName, cfg.QuarantineFolder)
	assert.Equal(t, TableAuto, cfg.Output.Table)
	assert.Empty(t, cfg.Exclusions)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
exclusions = ["desktop.ini", "  "]
quarantine_folder = " trash "

[rules]
extra_valid_extensions = ["TEX", ".dds"]
extra_child_folders = ["textures"]
extra_hex_exclusions = ["**/gui/**"]

[output]
table = "Plain"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"desktop.ini"}, cfg.Exclusions)
	assert.Equal(t, "trash", cfg.QuarantineFolder)
	assert.Equal(t, []string{".tex", ".dds"}, cfg.Rules.ExtraValidExtensions)
	assert.Equal(t, TablePlain, cfg.Output.Table)

	overrides := cfg.RuleOverrides()
	assert.Equal(t, []string{"textures"}, overrides.ExtraChildFolders)
	assert.Equal(t, []string{"**/gui/**"}, overrides.ExtraHexExclusions)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := writeConfig(t, `
quarantine_folder = "a/b"

[rules]
extra_valid_extensions = ["tar.gz"]
extra_hex_exclusions = ["[unclosed"]

[output]
table = "fancy"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quarantine_folder")
	assert.Contains(t, err.Error(), "extra_valid_extensions")
	assert.Contains(t, err.Error(), "extra_hex_exclusions")
	assert.Contains(t, err.Error(), "output.table")
}

func TestLoadRejectsUnknownKeysAndMissingFiles(t *testing.T) {
	_, err := Load(writeConfig(t, `colour = "blue"`))
	assert.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
