// Package tree is an in-memory model of a mod archive's file tree: ordered directories and files
// with parent links, depth-first walking, and move/remove operations with merge semantics
package tree

import (
	"slices"
	"strings"

	"github.com/m-manu/ddda-modfix/entity"
	"github.com/m-manu/ddda-modfix/lib"
)

// Separator is the separator used by paths handed out by this package
const Separator = "/"

// Kind tells a directory from a file
type Kind int8

const (
	Directory Kind = iota
	File
)

func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// Entry is a node of a file tree. A directory owns its children (in insertion order, names unique);
// the parent link is only a back-reference
type Entry struct {
	name     string
	kind     Kind
	meta     entity.FileMeta
	parent   *Entry
	children []*Entry
}

// NewRoot creates an empty root directory
func NewRoot(name string) *Entry {
	return &Entry{name: name, kind: Directory}
}

// Name of this entry
func (e *Entry) Name() string {
	return e.name
}

// Kind of this entry
func (e *Entry) Kind() Kind {
	return e.kind
}

// IsDir tells whether this entry is a directory
func (e *Entry) IsDir() bool {
	return e.kind == Directory
}

// IsFile tells whether this entry is a file
func (e *Entry) IsFile() bool {
	return e.kind == File
}

// Ext is the lower-cased extension of the entry's name, including the dot
func (e *Entry) Ext() string {
	if e.IsDir() {
		return ""
	}
	return lib.GetFileExt(e.name)
}

// Meta is the file metadata this entry was created with (zero for directories)
func (e *Entry) Meta() entity.FileMeta {
	return e.meta
}

// Parent of this entry; nil for a root or a detached entry
func (e *Entry) Parent() *Entry {
	return e.parent
}

// Children returns a copy of this directory's children, in order
func (e *Entry) Children() []*Entry {
	children := make([]*Entry, len(e.children))
	copy(children, e.children)
	return children
}

// Len is the number of direct children
func (e *Entry) Len() int {
	return len(e.children)
}

// Root returns the topmost ancestor of this entry
func (e *Entry) Root() *Entry {
	r := e
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Child looks up a direct child by its exact name
func (e *Entry) Child(name string) *Entry {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Contains tells whether other is this entry or one of its descendants
func (e *Entry) Contains(other *Entry) bool {
	for a := other; a != nil; a = a.parent {
		if a == e {
			return true
		}
	}
	return false
}

// HasFiles tells whether there is at least one file in this entry's subtree
func (e *Entry) HasFiles() bool {
	if e.IsFile() {
		return true
	}
	for _, c := range e.children {
		if c.HasFiles() {
			return true
		}
	}
	return false
}

// FileCount is the number of files in this entry's subtree
func (e *Entry) FileCount() (count int) {
	if e.IsFile() {
		return 1
	}
	for _, c := range e.children {
		count += c.FileCount()
	}
	return
}

// TotalSize is the sum of file sizes in this entry's subtree
func (e *Entry) TotalSize() (size int64) {
	if e.IsFile() {
		return e.meta.Size
	}
	for _, c := range e.children {
		size += c.TotalSize()
	}
	return
}

// AddDirectory creates a child directory
func (e *Entry) AddDirectory(name string) (*Entry, error) {
	return e.add(name, Directory, entity.FileMeta{})
}

// AddFile creates a child file
func (e *Entry) AddFile(name string, meta entity.FileMeta) (*Entry, error) {
	return e.add(name, File, meta)
}

func (e *Entry) add(name string, kind Kind, meta entity.FileMeta) (*Entry, error) {
	if !e.IsDir() {
		return nil, &PathError{Op: "add", Path: e.Path(Separator), Err: ErrNotDirectory}
	}
	if !isValidName(name) {
		return nil, &PathError{Op: "add", Path: name, Err: ErrInvalidName}
	}
	if e.Child(name) != nil {
		return nil, &PathError{Op: "add", Path: joinPath(e.Path(Separator), name), Err: ErrNameTaken}
	}
	child := &Entry{name: name, kind: kind, meta: meta}
	e.attach(child)
	return child, nil
}

// Insert creates an entry at the given path relative to this directory, along with any missing
// intermediate directories. Inserting a directory that already exists returns the existing one
func (e *Entry) Insert(path string, kind Kind, meta entity.FileMeta) (*Entry, error) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return nil, &PathError{Op: "insert", Path: path, Err: ErrInvalidName}
	}
	dir, err := e.mkdirAll(segments[:len(segments)-1])
	if err != nil {
		return nil, err
	}
	name := segments[len(segments)-1]
	if existing := dir.Child(name); existing != nil {
		if kind == Directory && existing.IsDir() {
			return existing, nil
		}
		return nil, &PathError{Op: "insert", Path: path, Err: ErrNameTaken}
	}
	return dir.add(name, kind, meta)
}

// Find looks up an entry by its path relative to this directory; "" refers to the directory itself
func (e *Entry) Find(path string) *Entry {
	current := e
	for _, segment := range SplitPath(path) {
		if !current.IsDir() {
			return nil
		}
		current = current.Child(segment)
		if current == nil {
			return nil
		}
	}
	return current
}

// Path is this entry's path from its root, joined with sep
func (e *Entry) Path(sep string) string {
	var segments []string
	for a := e; a.parent != nil; a = a.parent {
		segments = append(segments, a.name)
	}
	slices.Reverse(segments)
	return strings.Join(segments, sep)
}

// PathTo reconstructs the path of target relative to this entry, joined with sep
func (e *Entry) PathTo(target *Entry, sep string) (string, error) {
	var segments []string
	a := target
	for ; a != nil && a != e; a = a.parent {
		segments = append(segments, a.name)
	}
	if a == nil {
		return "", &PathError{Op: "path", Path: target.Path(sep), Err: ErrDetached}
	}
	slices.Reverse(segments)
	return strings.Join(segments, sep), nil
}

// Remove detaches the entry at path (relative to this directory), reporting whether one existed
func (e *Entry) Remove(path string) bool {
	target := e.Find(path)
	if target == nil || target == e {
		return false
	}
	target.detach()
	return true
}

func (e *Entry) mkdirAll(segments []string) (*Entry, error) {
	current := e
	for i, segment := range segments {
		next := current.Child(segment)
		if next == nil {
			var err error
			if next, err = current.AddDirectory(segment); err != nil {
				return nil, err
			}
		} else if !next.IsDir() {
			return nil, &PathError{
				Op:   "mkdir",
				Path: strings.Join(segments[:i+1], Separator),
				Err:  ErrCollision,
			}
		}
		current = next
	}
	return current, nil
}

func (e *Entry) attach(child *Entry) {
	child.parent = e
	e.children = append(e.children, child)
}

func (e *Entry) detach() {
	if e.parent == nil {
		return
	}
	siblings := e.parent.children
	for i, c := range siblings {
		if c == e {
			e.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// replaceWith puts replacement at e's position in e's parent, detaching e
func (e *Entry) replaceWith(replacement *Entry) {
	parent := e.parent
	for i, c := range parent.children {
		if c == e {
			parent.children[i] = replacement
			break
		}
	}
	replacement.parent = parent
	e.parent = nil
}

// SplitPath splits a path on '/' or '\', dropping empty segments
func SplitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + Separator + name
}

func isValidName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
