package entity

import "fmt"

// StepKind identifies what a repair step did to the mod tree
type StepKind int8

const (
	// StepMove relocates an entry, merging into an existing directory at the destination
	StepMove StepKind = iota
	// StepRemove discards an entry along with its contents
	StepRemove
)

func (k StepKind) String() string {
	switch k {
	case StepMove:
		return "move"
	case StepRemove:
		return "remove"
	default:
		return fmt.Sprintf("StepKind(%d)", int8(k))
	}
}

// Step is one journaled mutation performed while repairing a mod tree.
// Paths are relative to the tree root and always use '/' as separator
type Step struct {
	Kind   StepKind
	From   string
	To     string // empty for StepRemove
	IsDir  bool
	Reason string
}

func (s Step) String() string {
	if s.Kind == StepRemove {
		return fmt.Sprintf(`remove "%s" (%s)`, s.From, s.Reason)
	}
	return fmt.Sprintf(`move "%s" to "%s" (%s)`, s.From, s.To, s.Reason)
}
