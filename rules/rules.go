// Package rules holds the layout conventions of the game's nativePC directory: which folders and
// extensions denote a correctly placed mod, how equipment archives are named, and which names
// signal leftovers to be discarded
package rules

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	set "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/cases"
)

var (
	backupFolderPattern = regexp.MustCompile(`(?i)back\s*up`)
	hexExtensionPattern = regexp.MustCompile(`^\.[0-9a-fA-F]{8}$`)
)

var (
	defaultValidRootFolders = []string{"rom", "movie", "sound"}

	defaultValidChildFolders = []string{
		"dl1", "enemy", "eq", "etc", "event", "gui", "h_enemy", "ingamemanual", "item_b", "map",
		"message", "mnpc", "npc", "npcfca", "npcfsm", "om", "pwnmsg", "quest", "shell", "sk",
		"sound", "stage", "voice", "wp", "bbsrpg_core", "bbs_rpg", "game_main", "Initialize", "title",
	}

	defaultValidFileExtensions = []string{".arc", ".pck", ".wmv", ".sngw"}

	defaultNoChildSubfolderCategories = []string{"a_acc", "i_body", "w_leg"}

	// sound, in-game manual and item archives legitimately carry hex-looking extensions
	defaultHexExclusions = []string{"**/sound/**", "**/ingamemanual/**", "**/item*/**"}
)

const (
	archiveRoot      = "rom"
	equipmentRoot    = "rom/eq"
	dlcEquipmentRoot = "rom/dl1/eq"
	textureExtension = ".tex"
)

// RuleSet is the read-only set of layout conventions a mod tree is checked against.
// Folder names are compared case-insensitively; extensions are compared in lower case
type RuleSet struct {
	validRootFolders           map[string]string // folded name -> canonical spelling
	validChildFolders          set.Set[string]
	validFileExtensions        set.Set[string]
	noChildSubfolderCategories set.Set[string]
	hexExclusions              []string
}

var defaultRules = New(Overrides{})

// Default returns the built-in rule set
func Default() *RuleSet {
	return defaultRules
}

// Overrides extend the built-in conventions
type Overrides struct {
	ExtraValidExtensions []string
	ExtraChildFolders    []string
	ExtraHexExclusions   []string
}

// New builds a rule set from the built-in conventions plus the given overrides
func New(o Overrides) *RuleSet {
	r := &RuleSet{
		validRootFolders:           make(map[string]string, len(defaultValidRootFolders)),
		validChildFolders:          set.NewSet[string](),
		validFileExtensions:        set.NewSet[string](),
		noChildSubfolderCategories: set.NewSet[string](defaultNoChildSubfolderCategories...),
	}
	for _, name := range defaultValidRootFolders {
		r.validRootFolders[fold(name)] = name
	}
	for _, name := range append(defaultValidChildFolders, o.ExtraChildFolders...) {
		r.validChildFolders.Add(fold(name))
	}
	for _, ext := range append(defaultValidFileExtensions, o.ExtraValidExtensions...) {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.validFileExtensions.Add(ext)
	}
	for _, pattern := range append(defaultHexExclusions, o.ExtraHexExclusions...) {
		r.hexExclusions = append(r.hexExclusions, fold(pattern))
	}
	return r
}

// ArchiveRoot is the top-level folder holding game archives
func (r *RuleSet) ArchiveRoot() string {
	return archiveRoot
}

// TextureExtension is the extension a texture with a mangled extension is restored to
func (r *RuleSet) TextureExtension() string {
	return textureExtension
}

// IsValidRoot tells whether name is one of the top-level folders of the data directory
func (r *RuleSet) IsValidRoot(name string) bool {
	_, ok := r.validRootFolders[fold(name)]
	return ok
}

// CanonicalRoot returns the canonical spelling of a valid root folder name
func (r *RuleSet) CanonicalRoot(name string) (string, bool) {
	canonical, ok := r.validRootFolders[fold(name)]
	return canonical, ok
}

// IsValidChild tells whether name is a folder expected directly under a valid root
func (r *RuleSet) IsValidChild(name string) bool {
	return r.validChildFolders.Contains(fold(name))
}

// HasValidExtension tells whether the file name ends with a recognized game file extension
func (r *RuleSet) HasValidExtension(name string) bool {
	lower := strings.ToLower(name)
	found := false
	r.validFileExtensions.Each(func(ext string) bool {
		found = strings.HasSuffix(lower, ext)
		return found
	})
	return found
}

// IsBackupFolder tells whether a directory name marks a leftover backup
func (r *RuleSet) IsBackupFolder(name string) bool {
	return backupFolderPattern.MatchString(name)
}

// IsHexExtension tells whether ext (with its dot) looks like an 8 digit hex token rather than a
// real extension
func (r *RuleSet) IsHexExtension(ext string) bool {
	return hexExtensionPattern.MatchString(ext)
}

// IsHexExcluded tells whether a file at path (relative to the tree root, '/' separated) lives where
// hex-looking extensions are legitimate
func (r *RuleSet) IsHexExcluded(path string) bool {
	folded := fold(path)
	for _, pattern := range r.hexExclusions {
		if matched, err := doublestar.Match(pattern, folded); err == nil && matched {
			return true
		}
	}
	return false
}

// SameFolder tells whether two folder names refer to the same folder on a case-insensitive disk
func (r *RuleSet) SameFolder(a, b string) bool {
	return fold(a) == fold(b)
}

// fold maps a name to its case-insensitive comparison form
func fold(s string) string {
	return cases.Fold().String(s)
}
