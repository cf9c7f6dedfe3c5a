package entity

import (
	"fmt"
	"time"
)

// FileMeta is the on-disk metadata carried by a file entry of a mod tree
type FileMeta struct {
	Size              int64
	ModifiedTimestamp int64
}

// ModTime returns the modification timestamp as time.Time
func (f FileMeta) ModTime() time.Time {
	return time.Unix(f.ModifiedTimestamp, 0)
}

func (f FileMeta) String() string {
	return fmt.Sprintf("{size: %d, modified: %v}", f.Size, f.ModTime())
}
