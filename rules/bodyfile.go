package rules

import (
	"errors"
	"fmt"
	"path"
	"regexp"
)

var (
	// ErrNotBodyFile indicates the name does not follow the equipment archive naming convention
	ErrNotBodyFile = errors.New("not a body file")

	// ErrAmbiguousBodyFile indicates the name looks like an equipment archive but no category can be
	// decoded from it
	ErrAmbiguousBodyFile = errors.New("ambiguous body file name")
)

var (
	bodyFilePattern    = regexp.MustCompile(`^[fm]_[aiw]_\w+\.arc$`)
	dlcBodyFilePattern = regexp.MustCompile(`^[fm]_a_\w+820\d\.arc$`)
)

// BodyFile is what an equipment archive's name says about where it belongs
type BodyFile struct {
	Name     string
	Gender   byte // 'f' or 'm'
	Part     byte // 'a', 'i' or 'w'
	Category string
	DLC      bool
	Flat     bool // category does not nest by gender
}

// Destination is the directory (relative to the tree root, '/' terminated) the archive belongs in
func (b BodyFile) Destination() string {
	base := equipmentRoot
	if b.DLC {
		base = dlcEquipmentRoot
	}
	if b.Flat {
		return path.Join(base, b.Category) + "/"
	}
	return path.Join(base, b.Category, string(b.Gender)) + "/"
}

func (b BodyFile) String() string {
	return fmt.Sprintf("%s (gender=%c, category=%s, dlc=%t)", b.Name, b.Gender, b.Category, b.DLC)
}

// ParseBodyFile decodes an equipment archive name such as "f_a_eq00012.arc". The category is the
// second token when the name is cut at every digit and at every '_' that is followed by one
// character and another '_', so "f_a_eq00012.arc" yields category "a_eq"
func (r *RuleSet) ParseBodyFile(name string) (BodyFile, error) {
	if !bodyFilePattern.MatchString(name) {
		return BodyFile{}, ErrNotBodyFile
	}
	b := BodyFile{
		Name:   name,
		Gender: name[0],
		Part:   name[2],
		DLC:    dlcBodyFilePattern.MatchString(name),
	}
	tokens := splitBodyFileName(name)
	if len(tokens) < 2 {
		return b, fmt.Errorf("%w: %q has no category token", ErrAmbiguousBodyFile, name)
	}
	b.Category = tokens[1]
	prefix := string(b.Part) + "_"
	if len(b.Category) <= len(prefix) || b.Category[:len(prefix)] != prefix {
		return b, fmt.Errorf("%w: %q yields category %q", ErrAmbiguousBodyFile, name, b.Category)
	}
	b.Flat = r.noChildSubfolderCategories.Contains(b.Category)
	return b, nil
}

func splitBodyFileName(name string) []string {
	var tokens []string
	start := 0
	for i := 0; i < len(name); i++ {
		c := name[i]
		isDelimiter := c >= '0' && c <= '9' ||
			c == '_' && i+2 < len(name) && name[i+1] != '\n' && name[i+2] == '_'
		if isDelimiter {
			tokens = append(tokens, name[start:i])
			start = i + 1
		}
	}
	return append(tokens, name[start:])
}
