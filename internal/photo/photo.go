package photo

import (
	"path/filepath"
	"time"
)

// Ref is one file under management. Path is the unique key; Index is the
// position in the caller-sorted file list.
type Ref struct {
	Path           string
	Index          int
	KnownTimestamp *time.Time
}

// Name returns the base name of the referenced file.
func (r Ref) Name() string {
	return filepath.Base(r.Path)
}
