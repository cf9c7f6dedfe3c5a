package tree

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped in *PathError) by tree operations
var (
	// ErrCycle indicates an entry was reached twice while walking, so the tree is not a tree
	ErrCycle = errors.New("cycle in file tree")

	// ErrBrokenParent indicates a child whose parent link does not point back at its directory
	ErrBrokenParent = errors.New("broken parent link")

	// ErrNotDirectory indicates a directory was expected
	ErrNotDirectory = errors.New("not a directory")

	// ErrNameTaken indicates a directory already has a child with the given name
	ErrNameTaken = errors.New("name already taken")

	// ErrInvalidName indicates an empty name or a name containing a separator
	ErrInvalidName = errors.New("invalid entry name")

	// ErrCollision indicates a move destination conflict the move policy cannot resolve
	ErrCollision = errors.New("destination collision")

	// ErrDetached indicates the entry no longer belongs to the tree it is operated on
	ErrDetached = errors.New("entry is not part of this tree")

	// ErrMoveIntoSelf indicates a directory was asked to move into its own subtree
	ErrMoveIntoSelf = errors.New("cannot move a directory into itself")
)

// PathError records the operation and path that caused a tree error
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}
