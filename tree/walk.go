package tree

// Directive tells Walk how to proceed after visiting an entry
type Directive int8

const (
	// Continue descends into the visited directory (or moves on to the next sibling for a file)
	Continue Directive = iota
	// Skip does not descend into the visited directory
	Skip
	// Stop ends the whole traversal
	Stop
)

func (d Directive) String() string {
	switch d {
	case Continue:
		return "continue"
	case Skip:
		return "skip"
	default:
		return "stop"
	}
}

// Visitor is called by Walk for every entry below the walked directory.
// path is the path of the entry's parent relative to the walked directory, with a trailing
// separator, or "" for the walked directory's own children.
// Visitors must not mutate the tree
type Visitor interface {
	Visit(path string, entry *Entry) Directive
}

// VisitorFunc adapts an ordinary function to a Visitor
type VisitorFunc func(path string, entry *Entry) Directive

// Visit calls f(path, entry)
func (f VisitorFunc) Visit(path string, entry *Entry) Directive {
	return f(path, entry)
}

// Walk visits every entry below this directory depth-first, children in their stored order.
// It fails fast on a malformed tree (cycles, children whose parent link points elsewhere)
func (e *Entry) Walk(visitor Visitor, sep string) error {
	if !e.IsDir() {
		return &PathError{Op: "walk", Path: e.Path(sep), Err: ErrNotDirectory}
	}
	w := walker{
		visitor: visitor,
		sep:     sep,
		seen:    map[*Entry]struct{}{e: {}},
	}
	_, err := w.walk(e, "")
	return err
}

type walker struct {
	visitor Visitor
	sep     string
	seen    map[*Entry]struct{}
}

func (w *walker) walk(dir *Entry, prefix string) (stopped bool, err error) {
	for _, child := range dir.children {
		if child.parent != dir {
			return true, &PathError{Op: "walk", Path: prefix + child.name, Err: ErrBrokenParent}
		}
		if _, visited := w.seen[child]; visited {
			return true, &PathError{Op: "walk", Path: prefix + child.name, Err: ErrCycle}
		}
		w.seen[child] = struct{}{}
		switch w.visitor.Visit(prefix, child) {
		case Stop:
			return true, nil
		case Skip:
			continue
		}
		if child.IsDir() {
			if stopped, err = w.walk(child, prefix+child.name+w.sep); stopped || err != nil {
				return stopped, err
			}
		}
	}
	return false, nil
}
