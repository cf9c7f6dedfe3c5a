package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"

	set "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/m-manu/ddda-modfix/config"
	"github.com/m-manu/ddda-modfix/fmte"
	"github.com/m-manu/ddda-modfix/lib"
	"github.com/m-manu/ddda-modfix/remote"
	flag "github.com/spf13/pflag"
)

// Constants indicating return codes of this tool, when run from command line
const (
	exitCodeSuccess = iota
	exitCodeInvalidNumArgs
	exitCodeInvalidExclusions
	exitCodeExclusionFilesError
	exitCodeConfigError
	exitCodeModDirError
	exitCodeRejected
	exitCodeRepairError
)

//go:embed default_exclusions.txt
var defaultExclusionsStr string

var flags struct {
	isHelp             func() bool
	getExcludedFiles   func() set.Set[string]
	getShellScriptPath func() string
	getConfigPath      func() string
	getSSHKeyPath      func() string
	isFixMode          func() bool
	isDryRun           func() bool
	isListMode         func() bool
	isVerbose          func() bool
}

func setupExclusionsOpt() {
	const exclusionsFlag = "exclusions"
	const exclusionsDefaultValue = ""
	defaultExclusions, defaultExclusionsExamples := lib.LineSeparatedStrToSet(defaultExclusionsStr)
	excludesListFilePathPtr := flag.String(exclusionsFlag, exclusionsDefaultValue,
		fmt.Sprintf("path to file containing newline separated list of file/directory names to be excluded\n"+
			"(if this is not set, by default these will be ignored: %s etc.)",
			strings.Join(defaultExclusionsExamples, ", ")))
	flags.getExcludedFiles = func() set.Set[string] {
		excludesListFilePath := *excludesListFilePathPtr
		if excludesListFilePath == exclusionsDefaultValue {
			return defaultExclusions
		}
		if !lib.IsReadableFile(excludesListFilePath) {
			fmte.PrintfErr("error: argument to flag --%s should be a file\n", exclusionsFlag)
			flag.Usage()
			os.Exit(exitCodeInvalidExclusions)
		}
		rawContents, err := os.ReadFile(excludesListFilePath)
		if err != nil {
			fmte.PrintfErr("error: argument to flag --%s isn't readable: %+v\n", exclusionsFlag, err)
			flag.Usage()
			os.Exit(exitCodeExclusionFilesError)
		}
		exclusions, _ := lib.LineSeparatedStrToSet(string(rawContents))
		return exclusions
	}
}

func handlePanic() {
	err := recover()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Program exited unexpectedly. "+
			"Please report the below error to the author:\n"+
			"%+v\n", err)
		_, _ = fmt.Fprintln(os.Stderr, string(debug.Stack()))
	}
}

func setupUsage() {
	flag.Usage = func() {
		fmte.PrintfErr("Run \"ddda-modfix --help\" for usage\n")
	}
}

func showHelpAndExit() {
	flag.CommandLine.SetOutput(os.Stdout)
	fmt.Printf(`ddda-modfix checks whether a Dragon's Dogma: Dark Arisen mod is laid out the way the ` +
		`game's nativePC directory expects and, if it isn't, repairs its layout.

Usage:
	 ddda-modfix <flags> [mod-dir]

where,
	mod-dir    Directory holding the unpacked mod; may be remote as [user@]host:[port:]path

flags: (all optional)
`)
	flag.PrintDefaults()
	fmt.Printf("\nExit codes: 0 ready or repaired, %d mod rejected, %d repair failed\n",
		exitCodeRejected, exitCodeRepairError)
	os.Exit(exitCodeSuccess)
}

func setupHelpOpt() {
	helpPtr := flag.BoolP("help", "h", false, "display help")
	flags.isHelp = func() bool {
		return *helpPtr
	}
}

func setupFixOpt() {
	fixPtr := flag.BoolP("fix", "f", false, "repair the mod directory if its layout is fixable")
	dryRunPtr := flag.Bool("dry-run", false, "with --fix, only show what would be done")
	flags.isFixMode = func() bool {
		return *fixPtr
	}
	flags.isDryRun = func() bool {
		return *dryRunPtr
	}
}

func setupShellScriptOpt() {
	shellScriptPtr := flag.String("shellscript", "",
		"instead of repairing the mod directory, write the repair as a shell script to this file\n"+
			"(this flag is useful if you want to review the changes or run them as a different user)",
	)
	flags.getShellScriptPath = func() string {
		return *shellScriptPtr
	}
}

func setupConfigOpt() {
	configPtr := flag.StringP("config", "c", "", "path to a TOML settings file")
	flags.getConfigPath = func() string {
		return *configPtr
	}
}

func setupSSHKeyOpt() {
	sshKeyPtr := flag.String("ssh-key", "", "identity file for a remote mod directory (default: ssh's own choice)")
	flags.getSSHKeyPath = func() string {
		return *sshKeyPtr
	}
}

func setupListOpt() {
	listPtr := flag.BoolP("list", "l", false, "list the mod's files and directories along their metadata as CSV")
	flags.isListMode = func() bool {
		return *listPtr
	}
}

func setupVerboseOpt() {
	verbosePtr := flag.BoolP("verbose", "v", false,
		"print diagnostics and write the repair journal to an info file in the working directory")
	flags.isVerbose = func() bool {
		return *verbosePtr
	}
}

func setupFlags() {
	setupHelpOpt()
	setupFixOpt()
	setupShellScriptOpt()
	setupExclusionsOpt()
	setupConfigOpt()
	setupSSHKeyOpt()
	setupListOpt()
	setupVerboseOpt()
	setupUsage()
}

func readLocation(arg string) remote.Location {
	loc, err := remote.ParseLocation(arg)
	if err != nil {
		fmte.PrintfErr("error: %v\n", err)
		flag.Usage()
		os.Exit(exitCodeModDirError)
	}
	if loc.IsRemote {
		return loc
	}
	modDirPath, modDirErr := filepath.Abs(loc.Path)
	if modDirErr != nil || !lib.IsReadableDirectory(modDirPath) {
		fmte.PrintfErr("error: mod path \"%s\" is not a readable directory\n", arg)
		flag.Usage()
		os.Exit(exitCodeModDirError)
	}
	loc.Path = modDirPath
	return loc
}

func main() {
	defer handlePanic()
	setupFlags()
	flag.Parse()
	if flags.isHelp() {
		showHelpAndExit()
	}
	if flag.NArg() != 1 {
		fmte.PrintfErr("error: one argument expected: mod directory path\n")
		flag.Usage()
		os.Exit(exitCodeInvalidNumArgs)
	}
	cfg, cfgErr := config.Load(flags.getConfigPath())
	if cfgErr != nil {
		fmte.PrintfErr("error: invalid settings: %v\n", cfgErr)
		os.Exit(exitCodeConfigError)
	}
	exclusions := flags.getExcludedFiles().Clone()
	exclusions.Append(cfg.Exclusions...)
	location := readLocation(flag.Arg(0))
	if flags.isVerbose() {
		fmte.VerboseOn()
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitCode := modfix(ctx, location, options{
		runID:           uuid.NewString(),
		config:          cfg,
		exclusions:      exclusions,
		fix:             flags.isFixMode(),
		dryRun:          flags.isDryRun(),
		shellScriptPath: flags.getShellScriptPath(),
		list:            flags.isListMode(),
		sshKeyPath:      flags.getSSHKeyPath(),
		verbose:         flags.isVerbose(),
	})
	stop()
	os.Exit(exitCode)
}
