package photo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// photoExtensions lists the file types considered managed photos.
var photoExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".tif":  {},
	".tiff": {},
	".png":  {},
	".dng":  {},
	".heic": {},
	".nef":  {},
	".cr2":  {},
	".cr3":  {},
	".arw":  {},
	".raf":  {},
}

// Scan lists the photo files directly inside dir, sorted by name, and
// assigns sequential indices. Names are NFC-normalized before sorting so
// decomposed (NFD) names produced by macOS order and compare consistently.
func Scan(dir string) ([]Ref, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read photo directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := photoExtensions[ext]; !ok {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		return norm.NFC.String(names[i]) < norm.NFC.String(names[j])
	})

	refs := make([]Ref, 0, len(names))
	for i, name := range names {
		refs = append(refs, Ref{
			Path:  filepath.Join(dir, name),
			Index: i,
		})
	}
	return refs, nil
}
