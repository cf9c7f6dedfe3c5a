package action

import (
	"fmt"

	mfs "github.com/m-manu/ddda-modfix/fs"
)

// MakeDirectoryAction is a RepairAction for creating a directory a move lands in
type MakeDirectoryAction struct {
	BasePath        string
	RelativeDirPath string
	FS              mfs.FileSystem
}

func (a MakeDirectoryAction) targetPath() string {
	return a.FS.Join(a.BasePath, a.RelativeDirPath)
}

// UnixCommand for creating a directory
func (a MakeDirectoryAction) UnixCommand() string {
	return fmt.Sprintf(`mkdir -p -v "%s"`, escape(a.targetPath()))
}

// Perform the 'create directory' action
func (a MakeDirectoryAction) Perform() error {
	return a.FS.MkdirAll(a.targetPath())
}

// Uniqueness generates unique string for directory creation
func (a MakeDirectoryAction) Uniqueness() string {
	return "mkdir" + cmdSeparator + a.RelativeDirPath
}

func (a MakeDirectoryAction) String() string {
	return fmt.Sprintf(`create directory "%s"`, a.RelativeDirPath)
}
