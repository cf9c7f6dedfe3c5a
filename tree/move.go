package tree

import (
	"slices"
)

// Policy decides what Move does when the destination name is already taken
type Policy int8

const (
	// Merge combines directories recursively; a file replaces a file of the same name.
	// A directory meeting a file (or the other way round) is a collision
	Merge Policy = iota
	// Replace discards whatever occupies the destination
	Replace
	// FailIfExists refuses to move onto an existing entry
	FailIfExists
)

func (p Policy) String() string {
	switch p {
	case Merge:
		return "merge"
	case Replace:
		return "replace"
	default:
		return "fail-if-exists"
	}
}

// Move relocates entry, which must be a descendant of this directory, to dest (relative to this
// directory). A dest ending with a separator names the directory to move the entry into, keeping
// its name; otherwise the last segment of dest becomes the entry's new name. Missing directories
// on the way are created. The entry now occupying the destination is returned; under Merge this
// is the pre-existing directory the moved one was folded into
func (e *Entry) Move(entry *Entry, dest string, policy Policy) (*Entry, error) {
	from, err := e.PathTo(entry, Separator)
	if err != nil || entry == e {
		return nil, &PathError{Op: "move", Path: entry.Path(Separator), Err: ErrDetached}
	}
	dirSegments, name := splitDestination(dest, entry.name)
	if !isValidName(name) {
		return nil, &PathError{Op: "move", Path: dest, Err: ErrInvalidName}
	}
	fromSegments := SplitPath(from)
	if slices.Equal(append(slices.Clone(dirSegments), name), fromSegments) {
		return entry, nil
	}
	if entry.IsDir() && len(dirSegments) >= len(fromSegments) &&
		slices.Equal(dirSegments[:len(fromSegments)], fromSegments) {
		return nil, &PathError{Op: "move", Path: from, Err: ErrMoveIntoSelf}
	}
	parent, err := e.mkdirAll(dirSegments)
	if err != nil {
		return nil, err
	}
	existing := parent.Child(name)
	if existing == nil {
		entry.detach()
		entry.name = name
		parent.attach(entry)
		return entry, nil
	}
	destPath := joinPath(parent.Path(Separator), name)
	switch policy {
	case FailIfExists:
		return nil, &PathError{Op: "move", Path: destPath, Err: ErrCollision}
	case Replace:
		entry.detach()
		entry.name = name
		existing.replaceWith(entry)
		return entry, nil
	}
	if collision := findCollision(existing, entry, destPath); collision != "" {
		return nil, &PathError{Op: "merge", Path: collision, Err: ErrCollision}
	}
	entry.detach()
	entry.name = name
	return merge(existing, entry), nil
}

// splitDestination splits dest into the destination directory and the final name
func splitDestination(dest string, currentName string) ([]string, string) {
	segments := SplitPath(dest)
	if dest == "" || dest[len(dest)-1] == '/' || dest[len(dest)-1] == '\\' || len(segments) == 0 {
		return segments, currentName
	}
	return segments[:len(segments)-1], segments[len(segments)-1]
}

// findCollision returns the path at which merging src into dst would put a directory and a file
// onto each other, or "" if there is no such place
func findCollision(dst, src *Entry, path string) string {
	if dst.kind != src.kind {
		return path
	}
	if dst.IsFile() {
		return ""
	}
	for _, c := range src.children {
		if existing := dst.Child(c.name); existing != nil {
			if collision := findCollision(existing, c, path+Separator+c.name); collision != "" {
				return collision
			}
		}
	}
	return ""
}

// merge folds the detached src into dst, which must have passed findCollision
func merge(dst, src *Entry) *Entry {
	if dst.IsFile() {
		dst.replaceWith(src)
		return src
	}
	for _, c := range src.Children() {
		c.detach()
		if existing := dst.Child(c.name); existing != nil {
			merge(existing, c)
		} else {
			dst.attach(c)
		}
	}
	return dst
}
