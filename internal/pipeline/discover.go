package pipeline

import (
	"path/filepath"
	"sort"
)

// Discover expands the glob pattern rooted at dir into candidate paths,
// sorted lexicographically for deterministic processing order. An empty
// result is not an error; the caller reports "no files found" and stops.
func Discover(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
