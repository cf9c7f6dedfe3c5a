package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	set "github.com/deckarep/golang-set/v2"
	"github.com/m-manu/ddda-modfix/config"
	"github.com/m-manu/ddda-modfix/fmte"
	"github.com/m-manu/ddda-modfix/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createModDir(t *testing.T, files ...string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "MyMod")
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(f), 0644))
	}
	return dir
}

func runModfix(t *testing.T, dir string, opts options) (exitCode int, stdout string) {
	t.Helper()
	var out, errOut bytes.Buffer
	restore := fmte.SetOutput(&out, &errOut)
	defer restore()
	cfg := config.Default()
	cfg.Output.Table = config.TablePlain
	opts.config = &cfg
	opts.exclusions = set.NewSet[string]("Thumbs.db")
	opts.runID = "test"
	exitCode = modfix(context.Background(), remote.Location{Path: dir}, opts)
	return exitCode, out.String()
}

func fixableMod(t *testing.T) string {
	return createModDir(t, "Mod/eq/f_a_eq00012.arc", "Mod/Back Up/old.arc", "Thumbs.db")
}

func TestModfixValid(t *testing.T) {
	dir := createModDir(t, "rom/eq/armor.arc")
	code, out := runModfix(t, dir, options{fix: true})
	assert.Equal(t, exitCodeSuccess, code)
	assert.Contains(t, out, "MyMod: ready to install")
	assert.FileExists(t, filepath.Join(dir, "rom", "eq", "armor.arc"))
}

func TestModfixRejected(t *testing.T) {
	dir := createModDir(t, "readme.txt", "docs/notes.txt")
	code, out := runModfix(t, dir, options{fix: true})
	assert.Equal(t, exitCodeRejected, code)
	assert.Contains(t, out, "rejected: manual layout correction required")
	assert.FileExists(t, filepath.Join(dir, "readme.txt"))
}

func TestModfixReportOnly(t *testing.T) {
	dir := fixableMod(t)
	code, out := runModfix(t, dir, options{})
	assert.Equal(t, exitCodeSuccess, code)
	assert.Contains(t, out, "will be repaired on install (2 moves, 1 deletions)")
	assert.Contains(t, out, "Mod/Back Up")
	assert.Contains(t, out, "rom/eq/a_eq/f/f_a_eq00012.arc")
	assert.Contains(t, out, "--fix")
	assert.FileExists(t, filepath.Join(dir, "Mod", "eq", "f_a_eq00012.arc"))
}

func TestModfixRepairsOnDisk(t *testing.T) {
	dir := fixableMod(t)
	code, out := runModfix(t, dir, options{fix: true})
	require.Equal(t, exitCodeSuccess, code, out)
	assert.Contains(t, out, "Repair completed")
	assert.FileExists(t, filepath.Join(dir, "rom", "eq", "a_eq", "f", "f_a_eq00012.arc"))
	assert.NoDirExists(t, filepath.Join(dir, "Mod"))
	// excluded files are not part of the mod and stay where they are
	assert.FileExists(t, filepath.Join(dir, "Thumbs.db"))

	code, out = runModfix(t, dir, options{fix: true})
	assert.Equal(t, exitCodeSuccess, code)
	assert.Contains(t, out, "ready to install")
}

func TestModfixDryRun(t *testing.T) {
	dir := fixableMod(t)
	code, out := runModfix(t, dir, options{fix: true, dryRun: true})
	assert.Equal(t, exitCodeSuccess, code)
	assert.Contains(t, out, "skipping (dry run)")
	assert.FileExists(t, filepath.Join(dir, "Mod", "eq", "f_a_eq00012.arc"))
	assert.FileExists(t, filepath.Join(dir, "Mod", "Back Up", "old.arc"))
	assert.NoDirExists(t, filepath.Join(dir, "rom"))
}

func TestModfixShellScript(t *testing.T) {
	dir := fixableMod(t)
	script := filepath.Join(t.TempDir(), "repair.sh")
	code, _ := runModfix(t, dir, options{shellScriptPath: script})
	assert.Equal(t, exitCodeSuccess, code)
	contents, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "#!/bin/sh\n")
	assert.Contains(t, string(contents), "f_a_eq00012.arc")
	assert.Contains(t, string(contents), "Back Up")
	assert.FileExists(t, filepath.Join(dir, "Mod", "eq", "f_a_eq00012.arc"))
}

func TestModfixList(t *testing.T) {
	dir := fixableMod(t)
	code, out := runModfix(t, dir, options{list: true, fix: true})
	assert.Equal(t, exitCodeSuccess, code)
	assert.Contains(t, out, "Mod/eq/f_a_eq00012.arc,file,")
	assert.Contains(t, out, "Mod/Back Up,directory,")
	assert.NotContains(t, out, "Thumbs.db")
	assert.FileExists(t, filepath.Join(dir, "Mod", "eq", "f_a_eq00012.arc"))
}

func TestModfixMissingDirectory(t *testing.T) {
	code, _ := runModfix(t, filepath.Join(t.TempDir(), "nope"), options{})
	assert.Equal(t, exitCodeModDirError, code)
}

func TestLockPathIsStable(t *testing.T) {
	loc := remote.Location{Path: "/mods/MyMod"}
	assert.Equal(t, lockPath(loc), lockPath(loc))
	assert.NotEqual(t, lockPath(loc), lockPath(remote.Location{Path: "/mods/Other"}))
}
