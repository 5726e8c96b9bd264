package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// narrowExcluded decides dir against the excluded paths. pruned is true when
// dir is equal to or below one of them; otherwise next holds only the
// excluded paths strictly below dir, the only ones that matter further down.
// excluded is never modified.
func narrowExcluded(dir string, excluded []string) (next []string, pruned bool) {
	for _, ex := range excluded {
		if isWithin(dir, ex) {
			return nil, true
		}
		if isWithin(ex, dir) {
			next = append(next, ex)
		}
	}
	return next, false
}

// isWithin reports whether path is base or lies below it, comparing whole
// path components.
func isWithin(path, base string) bool {
	if path == base {
		return true
	}
	prefix := base
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// findMarker returns the first marker name present directly inside dir
func findMarker(dir string, names []string) (string, bool) {
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return name, true
		}
	}
	return "", false
}

// listDir returns dir's entries in the order the file system yields them.
// On a partial failure the entries read so far are returned with the error.
func listDir(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}

func cleanAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}
