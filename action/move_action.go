package action

import (
	"errors"
	"fmt"
	"os"
	"path"

	mfs "github.com/m-manu/ddda-modfix/fs"
)

// ErrCollision indicates a directory and a file would have to occupy the same path
var ErrCollision = errors.New("a directory and a file collide")

// MoveAction is a RepairAction for moving or renaming a file or directory. A directory moved onto
// an existing directory is merged into it; a file moved onto an existing file replaces it
type MoveAction struct {
	BasePath         string
	RelativeFromPath string
	RelativeToPath   string
	IsDir            bool
	FS               mfs.FileSystem
}

func (a MoveAction) sourcePath() string {
	return a.FS.Join(a.BasePath, a.RelativeFromPath)
}

func (a MoveAction) targetPath() string {
	return a.FS.Join(a.BasePath, a.RelativeToPath)
}

// UnixCommand for moving a file or merging a directory
func (a MoveAction) UnixCommand() string {
	if a.IsDir {
		return fmt.Sprintf(`mkdir -p "%s" && rsync -a --remove-source-files "%s/" "%s/" && rm -r "%s"`,
			escape(a.targetPath()), escape(a.sourcePath()), escape(a.targetPath()), escape(a.sourcePath()))
	}
	return fmt.Sprintf(`mv -v -f "%s" "%s"`, escape(a.sourcePath()), escape(a.targetPath()))
}

// Perform the 'move/merge' action
func (a MoveAction) Perform() error {
	if err := a.FS.MkdirAll(a.FS.Join(a.BasePath, path.Dir(a.RelativeToPath))); err != nil {
		return err
	}
	return mergeMove(a.FS, a.sourcePath(), a.targetPath())
}

func mergeMove(fsys mfs.FileSystem, from, to string) error {
	fromInfo, err := fsys.Lstat(from)
	if err != nil {
		return err
	}
	toInfo, err := fsys.Lstat(to)
	if errors.Is(err, os.ErrNotExist) {
		return fsys.Rename(from, to)
	} else if err != nil {
		return err
	}
	if fromInfo.IsDir != toInfo.IsDir {
		return fmt.Errorf("%w at \"%s\"", ErrCollision, to)
	}
	if !fromInfo.IsDir {
		if err := fsys.RemoveAll(to); err != nil {
			return err
		}
		return fsys.Rename(from, to)
	}
	children, err := fsys.ReadDir(from)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := mergeMove(fsys, fsys.Join(from, child.Name), fsys.Join(to, child.Name)); err != nil {
			return err
		}
	}
	return fsys.RemoveAll(from)
}

// Uniqueness generates unique string for file renaming/movement
func (a MoveAction) Uniqueness() string {
	return "mv" + cmdSeparator + a.RelativeFromPath + cmdSeparator + a.RelativeToPath
}

func (a MoveAction) String() string {
	if a.IsDir {
		return fmt.Sprintf(`move directory "%s" to "%s"`, a.RelativeFromPath, a.RelativeToPath)
	}
	return fmt.Sprintf(`move file "%s" to "%s"`, a.RelativeFromPath, a.RelativeToPath)
}
