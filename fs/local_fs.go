package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	set "github.com/deckarep/golang-set/v2"
	"github.com/m-manu/ddda-modfix/fmte"
)

// LocalFS implements FileSystem using standard os.* calls
type LocalFS struct{}

// NewLocalFS returns a new LocalFS
func NewLocalFS() *LocalFS {
	return &LocalFS{}
}

func (l *LocalFS) Walk(dirPath string, excludedNames set.Set[string]) ([]DirEntry, error) {
	entries := make([]DirEntry, 0, 1_000)
	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dirPath {
				return err
			}
			fmte.PrintfErr("skipping \"%s\": %+v\n", path, err)
			return nil
		}
		if path == dirPath {
			return nil
		}
		if excludedNames != nil && excludedNames.Contains(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		// Ignore dot files (Mac)
		if strings.HasPrefix(d.Name(), "._") {
			return nil
		}
		if !d.IsDir() && !d.Type().IsRegular() {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			fmte.PrintfErr("couldn't get metadata of \"%s\": %+v\n", path, infoErr)
			return nil
		}
		relativePath, relErr := filepath.Rel(dirPath, path)
		if relErr != nil {
			fmte.PrintfErr("couldn't comprehend path \"%s\": %+v\n", path, relErr)
			return nil
		}
		entry := DirEntry{
			RelativePath: filepath.ToSlash(relativePath),
			ModTime:      info.ModTime().Unix(),
			IsDir:        d.IsDir(),
		}
		if !entry.IsDir {
			entry.Size = info.Size()
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't scan directory %s: %w", dirPath, err)
	}
	return entries, nil
}

func (l *LocalFS) Lstat(path string) (FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return fileInfoFromOS(info), nil
}

func (l *LocalFS) ReadDir(path string) ([]FileInfo, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	infos := make([]FileInfo, 0, len(dirEntries))
	for _, d := range dirEntries {
		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		infos = append(infos, fileInfoFromOS(info))
	}
	return infos, nil
}

func (l *LocalFS) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (l *LocalFS) MkdirAll(path string) error {
	return os.MkdirAll(path, os.ModeDir|os.ModePerm)
}

func (l *LocalFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (l *LocalFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

func (l *LocalFS) IsReadableDirectory(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func (l *LocalFS) Close() error {
	return nil
}

func fileInfoFromOS(info os.FileInfo) FileInfo {
	return FileInfo{
		Name:    info.Name(),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
}
