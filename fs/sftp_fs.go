package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	set "github.com/deckarep/golang-set/v2"
	"github.com/m-manu/ddda-modfix/fmte"
	"github.com/pkg/sftp"
)

// SFTPFS implements FileSystem over an SFTP connection
type SFTPFS struct {
	client *sftp.Client
}

// NewSFTPFS wraps an existing sftp.Client in a FileSystem
func NewSFTPFS(client *sftp.Client) *SFTPFS {
	return &SFTPFS{client: client}
}

func (s *SFTPFS) Walk(dirPath string, excludedNames set.Set[string]) ([]DirEntry, error) {
	entries := make([]DirEntry, 0, 1_000)
	walker := s.client.Walk(dirPath)
	for walker.Step() {
		if walker.Err() != nil {
			if walker.Path() == dirPath {
				return nil, fmt.Errorf("couldn't scan directory %s: %w", dirPath, walker.Err())
			}
			fmte.PrintfErr("skipping \"%s\": %+v\n", walker.Path(), walker.Err())
			continue
		}
		if path.Clean(walker.Path()) == path.Clean(dirPath) {
			continue
		}
		info := walker.Stat()
		baseName := path.Base(walker.Path())

		if excludedNames != nil && excludedNames.Contains(baseName) {
			if info.IsDir() {
				walker.SkipDir()
			}
			continue
		}

		// Ignore dot files (Mac)
		if strings.HasPrefix(baseName, "._") {
			continue
		}
		if !info.IsDir() && !info.Mode().IsRegular() {
			continue
		}

		relPath, err := relPath(dirPath, walker.Path())
		if err != nil {
			fmte.PrintfErr("couldn't comprehend path \"%s\": %+v\n", walker.Path(), err)
			continue
		}
		entry := DirEntry{
			RelativePath: relPath,
			ModTime:      info.ModTime().Unix(),
			IsDir:        info.IsDir(),
		}
		if !entry.IsDir {
			entry.Size = info.Size()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *SFTPFS) Lstat(p string) (FileInfo, error) {
	info, err := s.client.Lstat(p)
	if err != nil {
		return FileInfo{}, err
	}
	return sftpFileInfo(info), nil
}

func (s *SFTPFS) ReadDir(p string) ([]FileInfo, error) {
	infos, err := s.client.ReadDir(p)
	if err != nil {
		return nil, err
	}
	result := make([]FileInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, sftpFileInfo(info))
	}
	return result, nil
}

func (s *SFTPFS) Rename(oldPath, newPath string) error {
	// sftp.Client.Rename fails if dest exists on some servers, which is what callers expect
	return s.client.Rename(oldPath, newPath)
}

func (s *SFTPFS) MkdirAll(p string) error {
	// SFTP only has Mkdir, so we iterate path components
	return s.mkdirAll(p)
}

func (s *SFTPFS) mkdirAll(p string) error {
	if info, err := s.client.Stat(p); err == nil && info.IsDir() {
		return nil
	}
	parent := path.Dir(p)
	if parent != p && parent != "/" && parent != "." {
		if err := s.mkdirAll(parent); err != nil {
			return err
		}
	}
	err := s.client.Mkdir(p)
	if err != nil {
		// May already exist due to race; check again
		if info, statErr := s.client.Stat(p); statErr == nil && info.IsDir() {
			return nil
		}
		return err
	}
	return nil
}

func (s *SFTPFS) RemoveAll(p string) error {
	info, err := s.client.Lstat(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	if !info.IsDir() {
		return s.client.Remove(p)
	}
	children, err := s.client.ReadDir(p)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.RemoveAll(path.Join(p, child.Name())); err != nil {
			return err
		}
	}
	return s.client.RemoveDirectory(p)
}

func (s *SFTPFS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (s *SFTPFS) IsReadableDirectory(p string) bool {
	info, err := s.client.Lstat(p)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func (s *SFTPFS) Close() error {
	return s.client.Close()
}

func sftpFileInfo(info fs.FileInfo) FileInfo {
	return FileInfo{
		Name:    info.Name(),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
}

// relPath computes a relative path from base to target using POSIX paths
func relPath(base, target string) (string, error) {
	base = path.Clean(base)
	target = path.Clean(target)
	if target != base && !strings.HasPrefix(target, strings.TrimSuffix(base, "/")+"/") {
		return "", fmt.Errorf("%q is not under %q", target, base)
	}
	rel := strings.TrimPrefix(target, base)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return ".", nil
	}
	return rel, nil
}
