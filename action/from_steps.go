package action

import (
	"path"

	set "github.com/deckarep/golang-set/v2"
	"github.com/m-manu/ddda-modfix/entity"
	mfs "github.com/m-manu/ddda-modfix/fs"
)

// FromSteps converts a repair journal into disk actions on the mod directory at basePath.
// Each move is preceded by the creation of its destination's parent directory
func FromSteps(steps []entity.Step, basePath string, fsys mfs.FileSystem) []RepairAction {
	actions := make([]RepairAction, 0, len(steps)*2)
	uniqueness := set.NewThreadUnsafeSet[string]()
	add := func(a RepairAction) {
		if uniqueness.Add(a.Uniqueness()) {
			actions = append(actions, a)
		}
	}
	for _, step := range steps {
		switch step.Kind {
		case entity.StepRemove:
			add(RemoveAction{
				BasePath:     basePath,
				RelativePath: step.From,
				Reason:       step.Reason,
				FS:           fsys,
			})
		case entity.StepMove:
			if parent := path.Dir(step.To); parent != "." {
				add(MakeDirectoryAction{
					BasePath:        basePath,
					RelativeDirPath: parent,
					FS:              fsys,
				})
			}
			add(MoveAction{
				BasePath:         basePath,
				RelativeFromPath: step.From,
				RelativeToPath:   step.To,
				IsDir:            step.IsDir,
				FS:               fsys,
			})
		}
	}
	return actions
}
