package checker

import (
	"fmt"

	"github.com/m-manu/ddda-modfix/tree"
)

// Verdict is the outcome of classifying a mod tree
type Verdict int8

const (
	// Invalid trees hold nothing recognizable and cannot be repaired automatically
	Invalid Verdict = iota
	// Valid trees are laid out the way the game expects
	Valid
	// Fixable trees need a repair before installation
	Fixable
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case Fixable:
		return "fixable"
	default:
		return "invalid"
	}
}

// Reason tells why an operation was scheduled
type Reason string

const (
	ReasonBackupFolder     Reason = "backup folder"
	ReasonMisplacedRoot    Reason = "nested under a misplaced root folder"
	ReasonMisplacedFolder  Reason = "game folder outside the archive root"
	ReasonBodyFile         Reason = "equipment archive"
	ReasonTextureExtension Reason = "texture with a hex extension"
	ReasonEmptyBranch      Reason = "empty branch"
)

// Operation is one scheduled change to a mod tree.
// Source is the entry's path at classification time; Destination is a move target as understood
// by (*tree.Entry).Move (a trailing '/' means "into this directory"), empty for deletions
type Operation struct {
	Entry       *tree.Entry
	Source      string
	Destination string
	Reason      Reason
}

func (o Operation) String() string {
	if o.Destination == "" {
		return fmt.Sprintf("delete %s (%s)", o.Source, o.Reason)
	}
	return fmt.Sprintf("move %s to %s (%s)", o.Source, o.Destination, o.Reason)
}

// Plan is the list of changes that brings a tree into the expected layout.
// Operations are applied in the reverse of the order they were scheduled in, deletions first
type Plan struct {
	Moves   []Operation
	Deletes []Operation
}

// Len is the number of scheduled operations
func (p Plan) Len() int {
	return len(p.Moves) + len(p.Deletes)
}

// Result of classifying a tree
type Result struct {
	Verdict Verdict
	Plan    Plan
	// Ambiguous lists paths of equipment archives whose category could not be decoded; they are
	// left where they are
	Ambiguous []string
}
