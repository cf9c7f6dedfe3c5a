// Package fs abstracts the directory a mod lives in, so that it can be loaded and repaired the same
// way on a local disk or over SFTP
package fs

import (
	"io/fs"
	"time"

	set "github.com/deckarep/golang-set/v2"
)

// FileSystem is the set of operations needed to load a mod tree and mirror its repair onto disk
type FileSystem interface {
	// Walk recursively walks dirPath, returning every directory and regular file below it.
	// Entries whose base name is in excludedNames are skipped (directories with their contents)
	Walk(dirPath string, excludedNames set.Set[string]) ([]DirEntry, error)

	// Lstat returns file info without following symlinks
	Lstat(path string) (FileInfo, error)

	// ReadDir lists the entries of a directory
	ReadDir(path string) ([]FileInfo, error)

	// Rename moves/renames a file or directory. The destination must not exist
	Rename(oldPath, newPath string) error

	// MkdirAll creates a directory path and all parents that do not yet exist
	MkdirAll(path string) error

	// RemoveAll removes path and everything below it. A missing path is not an error
	RemoveAll(path string) error

	// Join joins path elements with this file system's separator
	Join(elem ...string) string

	// IsReadableDirectory returns true if path is an existing, readable directory
	IsReadableDirectory(path string) bool

	// Close releases any resources held by the filesystem (e.g. SSH connections)
	Close() error
}

// FileInfo holds the subset of os.FileInfo fields we need
type FileInfo struct {
	Name    string
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// DirEntry represents a single file or directory discovered during Walk
type DirEntry struct {
	// RelativePath is the path relative to the walk root
	RelativePath string
	// Size is the file size in bytes (0 for directories)
	Size int64
	// ModTime is the modification time as a Unix timestamp
	ModTime int64
	// IsDir is true for directory entries
	IsDir bool
}
