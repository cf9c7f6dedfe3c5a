package checker

import (
	"errors"
	"fmt"

	"github.com/m-manu/ddda-modfix/entity"
	"github.com/m-manu/ddda-modfix/tree"
	"github.com/sirupsen/logrus"
)

type applier struct {
	root   *tree.Entry
	log    *logrus.Entry
	pruned map[*tree.Entry]struct{}
	steps  []entity.Step
}

func newApplier(root *tree.Entry, log *logrus.Entry) *applier {
	return &applier{
		root:   root,
		log:    log,
		pruned: make(map[*tree.Entry]struct{}),
	}
}

// apply carries out the plan: deletions are gathered in a quarantine folder, moves follow, and the
// quarantine is dropped at the end. Both lists run last-scheduled first, so entries nested in a
// scheduled directory are handled before the directory itself
func (a *applier) apply(plan Plan, quarantineBase string) ([]entity.Step, error) {
	quarantineName := a.uniqueTopLevelName(quarantineBase)
	if _, err := a.root.AddDirectory(quarantineName); err != nil {
		return nil, &RepairError{Step: entity.Step{Kind: entity.StepMove, To: quarantineName, IsDir: true}, Err: err}
	}
	for i := len(plan.Deletes) - 1; i >= 0; i-- {
		if err := a.delete(plan.Deletes[i], quarantineName); err != nil {
			return a.steps, err
		}
	}
	for i := len(plan.Moves) - 1; i >= 0; i-- {
		if err := a.move(plan.Moves[i]); err != nil {
			return a.steps, err
		}
	}
	a.root.Remove(quarantineName)
	return a.steps, nil
}

func (a *applier) delete(op Operation, quarantineName string) error {
	step := entity.Step{Kind: entity.StepRemove, From: op.Source, IsDir: op.Entry.IsDir(), Reason: string(op.Reason)}
	from, skip, err := a.locate(op)
	if skip || err != nil {
		return a.fail(step, err)
	}
	step.From = from
	top := a.topLevel(op.Entry)
	moved, err := a.root.Move(op.Entry, quarantineName+tree.Separator, tree.Merge)
	if errors.Is(err, tree.ErrCollision) {
		// quarantined content is thrown away, so a clash there needs no merging
		moved, err = a.root.Move(op.Entry, quarantineName+tree.Separator, tree.Replace)
	}
	if err != nil {
		return a.fail(step, err)
	}
	a.record(step)
	a.prune(top, moved)
	return nil
}

func (a *applier) move(op Operation) error {
	step := entity.Step{Kind: entity.StepMove, From: op.Source, To: op.Destination, IsDir: op.Entry.IsDir(), Reason: string(op.Reason)}
	from, skip, err := a.locate(op)
	if skip || err != nil {
		return a.fail(step, err)
	}
	step.From = from
	top := a.topLevel(op.Entry)
	moved, err := a.root.Move(op.Entry, op.Destination, tree.Merge)
	if err != nil {
		return a.fail(step, err)
	}
	if step.To, err = a.root.PathTo(moved, tree.Separator); err != nil {
		return a.fail(step, err)
	}
	a.record(step)
	a.prune(top, moved)
	return nil
}

// locate finds the current path of the operation's entry. Entries that went away along with a
// branch pruned earlier in this repair are skipped
func (a *applier) locate(op Operation) (path string, skip bool, err error) {
	path, err = a.root.PathTo(op.Entry, tree.Separator)
	if err == nil {
		return path, false, nil
	}
	for e := op.Entry; e != nil; e = e.Parent() {
		if _, ok := a.pruned[e]; ok {
			a.log.WithField("path", op.Source).Debug("skipping an entry of a pruned branch")
			return "", true, nil
		}
	}
	return "", false, fmt.Errorf("%s: %w", op.Source, tree.ErrDetached)
}

// prune removes the top-level directory an entry was moved out of, if nothing worth keeping is left
func (a *applier) prune(top, moved *tree.Entry) {
	if top == nil || top.Parent() != a.root || !top.IsDir() || top.Contains(moved) || top.HasFiles() {
		return
	}
	name := top.Name()
	if a.root.Remove(name) {
		a.pruned[top] = struct{}{}
		a.record(entity.Step{Kind: entity.StepRemove, From: name, IsDir: true, Reason: string(ReasonEmptyBranch)})
	}
}

// topLevel returns the ancestor of e that is a direct child of the root
func (a *applier) topLevel(e *tree.Entry) *tree.Entry {
	for ; e != nil; e = e.Parent() {
		if e.Parent() == a.root {
			return e
		}
	}
	return nil
}

func (a *applier) uniqueTopLevelName(base string) string {
	name := base
	for i := 1; a.root.Child(name) != nil; i++ {
		name = fmt.Sprintf("%s-%d", base, i)
	}
	return name
}

func (a *applier) record(step entity.Step) {
	a.steps = append(a.steps, step)
	a.log.WithField("step", step.String()).Debug("applied")
}

func (a *applier) fail(step entity.Step, err error) error {
	if err == nil {
		return nil
	}
	return &RepairError{Step: step, Err: err}
}
