package checker

import (
	"errors"
	"path"
	"strings"

	"github.com/m-manu/ddda-modfix/lib"
	"github.com/m-manu/ddda-modfix/rules"
	"github.com/m-manu/ddda-modfix/tree"
	"github.com/sirupsen/logrus"
)

// classification is the state of one Classify call
type classification struct {
	rules     *rules.RuleSet
	log       *logrus.Entry
	root      *tree.Entry
	valid     bool
	plan      Plan
	ambiguous []string
	// directories already scheduled for a move or deletion
	scheduled map[*tree.Entry]struct{}
}

func newClassification(r *rules.RuleSet, log *logrus.Entry, root *tree.Entry) *classification {
	return &classification{
		rules:     r,
		log:       log,
		root:      root,
		scheduled: make(map[*tree.Entry]struct{}),
	}
}

// probe stops at the first game file found under a valid root
func (c *classification) probe(parentPath string, entry *tree.Entry) tree.Directive {
	if entry.IsFile() && c.rules.IsValidRoot(topSegment(parentPath)) && c.rules.HasValidExtension(entry.Name()) {
		c.valid = true
		c.log.WithField("path", parentPath+entry.Name()).Debug("found a game file under a valid root")
		return tree.Stop
	}
	return tree.Continue
}

// scan schedules every repair the tree needs
func (c *classification) scan(parentPath string, entry *tree.Entry) tree.Directive {
	fullPath := parentPath + entry.Name()
	if entry.IsDir() {
		return c.scanDirectory(fullPath, entry)
	}
	c.scanFile(parentPath, fullPath, entry)
	return tree.Continue
}

func (c *classification) scanDirectory(fullPath string, dir *tree.Entry) tree.Directive {
	if c.rules.IsBackupFolder(dir.Name()) {
		c.schedule(&c.plan.Deletes, Operation{Entry: dir, Source: fullPath, Reason: ReasonBackupFolder})
		return tree.Skip
	}
	if c.isUnderScheduled(dir.Parent()) || c.rules.IsValidRoot(topSegment(fullPath)) {
		return tree.Continue
	}
	parent := dir.Parent()
	if parent != c.root {
		if canonical, ok := c.rules.CanonicalRoot(parent.Name()); ok {
			c.schedule(&c.plan.Moves, Operation{
				Entry:       dir,
				Source:      fullPath,
				Destination: c.existingSpelling(canonical + tree.Separator),
				Reason:      ReasonMisplacedRoot,
			})
			return tree.Continue
		}
	}
	// a folder named like a root is left to the rule above for its children
	if c.rules.IsValidChild(dir.Name()) && !c.rules.IsValidRoot(dir.Name()) {
		c.schedule(&c.plan.Moves, Operation{
			Entry:       dir,
			Source:      fullPath,
			Destination: c.existingSpelling(c.rules.ArchiveRoot() + tree.Separator),
			Reason:      ReasonMisplacedFolder,
		})
	}
	return tree.Continue
}

func (c *classification) scanFile(parentPath, fullPath string, file *tree.Entry) {
	bodyFile, err := c.rules.ParseBodyFile(file.Name())
	switch {
	case err == nil:
		if destination := c.existingSpelling(bodyFile.Destination()); !strings.EqualFold(parentPath, destination) {
			c.schedule(&c.plan.Moves, Operation{
				Entry:       file,
				Source:      fullPath,
				Destination: destination,
				Reason:      ReasonBodyFile,
			})
		}
		return
	case errors.Is(err, rules.ErrAmbiguousBodyFile):
		c.ambiguous = append(c.ambiguous, fullPath)
		c.log.WithError(err).WithField("path", fullPath).Warn("leaving equipment archive in place")
		return
	}
	ext := path.Ext(file.Name())
	if c.rules.IsHexExtension(ext) && !c.rules.IsHexExcluded(fullPath) {
		c.schedule(&c.plan.Moves, Operation{
			Entry:       file,
			Source:      fullPath,
			Destination: parentPath + lib.TrimFileExt(file.Name()) + c.rules.TextureExtension(),
			Reason:      ReasonTextureExtension,
		})
	}
}

func (c *classification) schedule(list *[]Operation, op Operation) {
	*list = append(*list, op)
	if op.Entry.IsDir() {
		c.scheduled[op.Entry] = struct{}{}
	}
	c.log.WithFields(logrus.Fields{
		"source":      op.Source,
		"destination": op.Destination,
		"reason":      op.Reason,
	}).Debug("scheduled")
}

// existingSpelling rewrites the leading segments of a destination to the names of directories
// already in the tree that match them case-insensitively
func (c *classification) existingSpelling(destination string) string {
	segments := tree.SplitPath(destination)
	dir := c.root
	for i, segment := range segments {
		next := c.matchingDirectory(dir, segment)
		if next == nil {
			break
		}
		segments[i] = next.Name()
		dir = next
	}
	resolved := strings.Join(segments, tree.Separator)
	if strings.HasSuffix(destination, tree.Separator) {
		resolved += tree.Separator
	}
	return resolved
}

func (c *classification) matchingDirectory(dir *tree.Entry, name string) *tree.Entry {
	if exact := dir.Child(name); exact != nil {
		if exact.IsDir() {
			return exact
		}
		return nil
	}
	for _, child := range dir.Children() {
		if child.IsDir() && c.rules.SameFolder(child.Name(), name) {
			return child
		}
	}
	return nil
}

func (c *classification) isUnderScheduled(dir *tree.Entry) bool {
	for a := dir; a != nil && a != c.root; a = a.Parent() {
		if _, ok := c.scheduled[a]; ok {
			return true
		}
	}
	return false
}

// topSegment is the first segment of a '/' separated path
func topSegment(p string) string {
	top, _, _ := strings.Cut(p, tree.Separator)
	return top
}
