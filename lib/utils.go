package lib

import (
	"io/fs"
	"os"
	"path"
	"strings"

	set "github.com/deckarep/golang-set/v2"
)

// IsReadableDirectory checks whether a readable directory exists at given path
func IsReadableDirectory(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsReadableFile checks whether argument is a readable file
func IsReadableFile(path string) bool {
	fileInfo, statErr := os.Stat(path)
	if statErr != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}

// GetFileExt gets file extension (including the dot) in lower case
func GetFileExt(name string) string {
	return strings.ToLower(path.Ext(name))
}

// TrimFileExt gets file name without its extension
func TrimFileExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// WriteSliceToFile writes a slice to a file
func WriteSliceToFile(slice []string, fileName string) error {
	sliceAsString := strings.Join(slice, "\n")
	return os.WriteFile(fileName, []byte(sliceAsString), fs.ModePerm)
}

// LineSeparatedStrToSet converts a line-separated string to a set, ignoring blank lines and '#' comments
func LineSeparatedStrToSet(lineSeparatedString string) (lines set.Set[string], firstFew []string) {
	lines = set.NewSetWithSize[string](20)
	firstFew = []string{}
	contents := strings.ReplaceAll(lineSeparatedString, "\r\n", "\n") // Windows
	for _, e := range strings.Split(contents, "\n") {
		e = strings.TrimSpace(e)
		if e == "" || strings.HasPrefix(e, "#") {
			continue
		}
		if lines.Add(e) {
			firstFew = append(firstFew, e)
		}
	}
	if len(firstFew) > 3 {
		firstFew = firstFew[0:3]
	}
	return
}
