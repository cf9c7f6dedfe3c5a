package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"

	set "github.com/deckarep/golang-set/v2"
	"github.com/m-manu/ddda-modfix/entity"
	mfs "github.com/m-manu/ddda-modfix/fs"
	"github.com/m-manu/ddda-modfix/tree"
)

// LoadTree builds the in-memory tree of the mod directory at dirPath, including empty directories.
// Children are ordered by name so that the same directory always yields the same tree
func LoadTree(fsys mfs.FileSystem, dirPath string, excludedFiles set.Set[string]) (
	root *tree.Entry,
	totalSizeOfFiles int64,
	loadErr error,
) {
	entries, err := fsys.Walk(dirPath, excludedFiles)
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RelativePath < entries[j].RelativePath
	})
	root = tree.NewRoot(path.Base(dirPath))
	for _, e := range entries {
		kind := tree.File
		if e.IsDir {
			kind = tree.Directory
		}
		meta := entity.FileMeta{Size: e.Size, ModifiedTimestamp: e.ModTime}
		if _, err := root.Insert(e.RelativePath, kind, meta); err != nil {
			return nil, 0, fmt.Errorf("couldn't add \"%s\" to the mod tree: %w", e.RelativePath, err)
		}
		totalSizeOfFiles += e.Size
	}
	return root, totalSizeOfFiles, nil
}

// TreeToCsv writes one record per entry of the tree: path, kind, size and modification timestamp
func TreeToCsv(root *tree.Entry, w io.Writer) error {
	cw := csv.NewWriter(w)
	var wErr error
	walkErr := root.Walk(tree.VisitorFunc(func(parentPath string, entry *tree.Entry) tree.Directive {
		record := []string{parentPath + entry.Name(), entry.Kind().String(),
			strconv.FormatInt(entry.Meta().Size, 10),
			strconv.FormatInt(entry.Meta().ModifiedTimestamp, 10)}
		if wErr = cw.Write(record); wErr != nil {
			wErr = fmt.Errorf("error while writing record %+v: %+v", record, wErr)
			return tree.Stop
		}
		return tree.Continue
	}), tree.Separator)
	if walkErr != nil {
		return walkErr
	}
	if wErr != nil {
		return wErr
	}
	cw.Flush()
	return cw.Error()
}
