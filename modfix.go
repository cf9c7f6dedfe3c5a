package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	set "github.com/deckarep/golang-set/v2"
	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/m-manu/ddda-modfix/action"
	"github.com/m-manu/ddda-modfix/checker"
	"github.com/m-manu/ddda-modfix/config"
	"github.com/m-manu/ddda-modfix/fmte"
	mfs "github.com/m-manu/ddda-modfix/fs"
	"github.com/m-manu/ddda-modfix/lib"
	"github.com/m-manu/ddda-modfix/remote"
	"github.com/m-manu/ddda-modfix/rules"
	"github.com/m-manu/ddda-modfix/service"
	"github.com/m-manu/ddda-modfix/tree"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

const unixCommandLengthGuess = 200

type options struct {
	runID           string
	config          *config.Config
	exclusions      set.Set[string]
	fix             bool
	dryRun          bool
	shellScriptPath string
	list            bool
	sshKeyPath      string
	verbose         bool
}

// modfix checks the mod directory at loc and, when asked to, repairs it. It returns the exit code
func modfix(ctx context.Context, loc remote.Location, opts options) int {
	fsys, closeFS, err := openFileSystem(ctx, loc, opts.sshKeyPath)
	if err != nil {
		fmte.PrintfErr("error: couldn't reach mod directory %s: %v\n", loc, err)
		return exitCodeModDirError
	}
	defer closeFS()

	fmte.Printf("Scanning mod directory (%s)...\n", loc)
	start := time.Now()
	root, size, err := service.LoadTree(fsys, loc.Path, opts.exclusions)
	if err != nil {
		fmte.PrintfErr("error: couldn't scan mod directory: %v\n", err)
		return exitCodeModDirError
	}
	fmte.Printf("Found %d files (total size %s) in %.1fs\n",
		root.FileCount(), humanize.IBytes(uint64(size)), time.Since(start).Seconds())
	if opts.list {
		if err := service.TreeToCsv(root, fmte.Writer()); err != nil {
			fmte.PrintfErr("error: couldn't list mod directory: %v\n", err)
			return exitCodeModDirError
		}
		return exitCodeSuccess
	}

	c := checker.New(rules.New(opts.config.RuleOverrides()), newLogger(opts.verbose),
		checker.WithQuarantineName(opts.config.QuarantineFolder))
	result, err := c.Classify(root)
	if err != nil {
		fmte.PrintfErr("error: couldn't classify mod directory: %v\n", err)
		return exitCodeRejected
	}
	for _, p := range result.Ambiguous {
		fmte.Printf("warning: couldn't tell where \"%s\" belongs, leaving it in place\n", p)
	}
	switch result.Verdict {
	case checker.Valid:
		fmte.Printf("%s: ready to install\n", root.Name())
		return exitCodeSuccess
	case checker.Invalid:
		fmte.Printf("%s: rejected: manual layout correction required\n", root.Name())
		return exitCodeRejected
	}
	fmte.Printf("%s: will be repaired on install (%d moves, %d deletions)\n",
		root.Name(), len(result.Plan.Moves), len(result.Plan.Deletes))
	printPlan(result.Plan, opts.config.Output.Table)
	if !opts.fix && opts.shellScriptPath == "" {
		fmte.Printf("Run with --fix to repair it.\n")
		return exitCodeSuccess
	}

	_, steps, err := c.Repair(root)
	if err != nil {
		fmte.PrintfErr("error: %v\nNothing was changed on disk.\n", err)
		return exitCodeRepairError
	}
	if opts.verbose {
		journal := make([]string, 0, len(steps))
		for _, s := range steps {
			journal = append(journal, s.String())
		}
		infoFile := fmt.Sprintf("./info_%s_repair_steps.txt", opts.runID)
		if err := lib.WriteSliceToFile(journal, infoFile); err != nil {
			fmte.PrintfErr("warning: couldn't write %s: %v\n", infoFile, err)
		}
	}
	actions := action.FromSteps(steps, loc.Path, fsys)
	if opts.shellScriptPath != "" {
		var sshSpec *string
		if loc.IsRemote {
			spec := loc.SSHSpec()
			sshSpec = &spec
		}
		if err := generateScript(actions, opts.shellScriptPath, sshSpec); err != nil {
			fmte.PrintfErr("error: %v\n", err)
			return exitCodeRepairError
		}
		return exitCodeSuccess
	}

	fileLock := flock.New(lockPath(loc))
	locked, err := fileLock.TryLock()
	if err != nil || !locked {
		fmte.PrintfErr("error: another repair of %s seems to be running (lock %s): %v\n", loc, fileLock.Path(), err)
		return exitCodeRepairError
	}
	defer func() {
		_ = fileLock.Unlock()
		_ = os.Remove(fileLock.Path())
	}()
	if err := performActions(actions, opts.dryRun); err != nil {
		fmte.PrintfErr("error: repair incomplete: %v\n", err)
		return exitCodeRepairError
	}
	return exitCodeSuccess
}

func openFileSystem(ctx context.Context, loc remote.Location, sshKeyPath string) (mfs.FileSystem, func(), error) {
	if !loc.IsRemote {
		return mfs.NewLocalFS(), func() {}, nil
	}
	session, err := remote.Dial(ctx, loc, sshKeyPath)
	if err != nil {
		return nil, nil, err
	}
	fsys := session.FS()
	if !fsys.IsReadableDirectory(loc.Path) {
		_ = session.Close()
		return nil, nil, fmt.Errorf("\"%s\" is not a readable directory", loc.Path)
	}
	return fsys, func() {
		if err := session.Close(); err != nil {
			fmte.PrintfV("closing SFTP session: %v\n", err)
		}
	}, nil
}

func newLogger(verbose bool) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logrus.NewEntry(logger).WithField("component", "ddda-modfix")
}

// lockPath is a lock file in the temp directory, named after the mod location
func lockPath(loc remote.Location) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(loc.String()))
	return filepath.Join(os.TempDir(), "ddda-modfix-"+id.String()+".lock")
}

// printPlan shows the plan in the order it is applied
func printPlan(plan checker.Plan, style string) {
	if style == config.TableNone {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(fmte.Writer())
	t.AppendHeader(table.Row{"#", "Action", "Path", "Destination", "Reason"})
	n := 0
	for i := len(plan.Deletes) - 1; i >= 0; i-- {
		n++
		op := plan.Deletes[i]
		t.AppendRow(table.Row{n, "delete", op.Source, "", op.Reason})
	}
	for i := len(plan.Moves) - 1; i >= 0; i-- {
		n++
		op := plan.Moves[i]
		t.AppendRow(table.Row{n, "move", op.Source, moveTarget(op), op.Reason})
	}
	if style == config.TableBoxed || (style == config.TableAuto && isTerminal()) {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleDefault)
	}
	t.Render()
}

// moveTarget spells out where a moved entry ends up
func moveTarget(op checker.Operation) string {
	if strings.HasSuffix(op.Destination, tree.Separator) {
		return path.Join(op.Destination, op.Entry.Name())
	}
	return op.Destination
}

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func performActions(actions []action.RepairAction, dryRun bool) error {
	if dryRun {
		fmte.Printf("Simulating repair of the mod directory (dry run)...\n")
	} else {
		fmte.Printf("Repairing the mod directory...\n")
	}
	successCount := 0
	start := time.Now()
	for i, repairAction := range actions {
		fmte.Printf("%4d/%d %s: ", i+1, len(actions), repairAction)
		if dryRun {
			fmte.Printf("skipping (dry run)\n")
			successCount++
			continue
		}
		if err := repairAction.Perform(); err != nil {
			fmte.Printf("failed due to: %+v\n", err)
			// later actions build on this one
			return fmt.Errorf("%s: %w (%d of %d actions were performed)", repairAction, err, successCount, len(actions))
		}
		fmte.Printf("done\n")
		successCount++
	}
	if dryRun {
		fmte.Printf("Dry run completed in %.1fs: %d actions would be performed\n",
			time.Since(start).Seconds(), successCount)
	} else {
		fmte.Printf("Repair completed in %.1fs: %d actions performed\n",
			time.Since(start).Seconds(), successCount)
	}
	return nil
}

func generateScript(actions []action.RepairAction, shellScriptFileName string, remoteSSHSpec *string) error {
	fmte.Printf("Writing repair actions to shell script \"%s\"...\n", shellScriptFileName)
	shellScriptFile, shellScriptCreateErr := os.Create(shellScriptFileName)
	if shellScriptCreateErr != nil {
		return fmt.Errorf("couldn't create file '%s': %+v", shellScriptFileName, shellScriptCreateErr)
	}
	defer shellScriptFile.Close()
	permsErr := os.Chmod(shellScriptFileName, 0700)
	if permsErr != nil {
		return fmt.Errorf("couldn't change permissions on file '%s': %+v", shellScriptFileName, permsErr)
	}
	var sb strings.Builder
	sb.Grow(unixCommandLengthGuess * (len(actions) + 1))
	sb.WriteString("#!/bin/sh\nset -e\n")
	for _, a := range actions {
		cmd := a.UnixCommand()
		if remoteSSHSpec != nil {
			cmd = fmt.Sprintf(`ssh %s '%s'`, *remoteSSHSpec, strings.ReplaceAll(cmd, "'", "'\\''"))
		}
		sb.WriteString(cmd)
		sb.WriteString("\n")
	}
	_, errFC := shellScriptFile.WriteString(sb.String())
	if errFC != nil {
		return fmt.Errorf("couldn't write to file '%s': %+v", shellScriptFileName, errFC)
	}
	fmte.Printf("Done. You may run it now.\n")
	return nil
}
