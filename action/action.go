// Package action mirrors the journal of an in-memory repair onto the mod directory, either by
// performing each step or by rendering it as a shell command
package action

import "strings"

// RepairAction is implemented by any action that replays one repair step on disk
type RepairAction interface {
	// targetPath is the path the action changes
	targetPath() string
	// UnixCommand must generate a unix command
	UnixCommand() string
	// Perform must perform the actual action
	Perform() error
	// Uniqueness should define a string that's unique with an action
	Uniqueness() string
	String() string
}

const cmdSeparator = "\u0001"

func escape(path string) string {
	escaped := path
	escaped = strings.ReplaceAll(escaped, "\\", "\\\\") // This replace should be first
	escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
	escaped = strings.ReplaceAll(escaped, "!", "\\!")
	escaped = strings.ReplaceAll(escaped, "`", "\\`")
	escaped = strings.ReplaceAll(escaped, "$", "\\$")
	return escaped
}
