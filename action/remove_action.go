package action

import (
	"fmt"

	mfs "github.com/m-manu/ddda-modfix/fs"
)

// RemoveAction is a RepairAction for discarding a file or a directory with all its contents
type RemoveAction struct {
	BasePath     string
	RelativePath string
	Reason       string
	FS           mfs.FileSystem
}

func (a RemoveAction) targetPath() string {
	return a.FS.Join(a.BasePath, a.RelativePath)
}

// UnixCommand for removing a file or directory
func (a RemoveAction) UnixCommand() string {
	return fmt.Sprintf(`rm -r -f -v "%s"`, escape(a.targetPath()))
}

// Perform the 'remove' action
func (a RemoveAction) Perform() error {
	return a.FS.RemoveAll(a.targetPath())
}

// Uniqueness generates unique string for removal
func (a RemoveAction) Uniqueness() string {
	return "rm" + cmdSeparator + a.RelativePath
}

func (a RemoveAction) String() string {
	if a.Reason == "" {
		return fmt.Sprintf(`remove "%s"`, a.RelativePath)
	}
	return fmt.Sprintf(`remove "%s" (%s)`, a.RelativePath, a.Reason)
}
