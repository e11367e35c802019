package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/avelis/tokmeter/internal/pattern"
)

// Scan walks the tree under root and returns the absolute paths of every
// eligible regular file, deduplicated and sorted ascending by path string.
// A nonexistent or unreadable root yields an empty result, not an error.
func Scan(root string, set pattern.Set) []string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		log.Debug("scan root unavailable", "root", root, "error", err)
		return nil
	}

	seen := make(map[string]bool)
	var files []string

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry: skip the subtree, keep everything else.
			log.Debug("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			name := d.Name()
			if pattern.IsHidden(name) || pattern.IsNoiseDir(name) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		if !pattern.Eligible(rel, set) {
			return nil
		}
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		log.Debug("walk terminated early", "root", root, "error", walkErr)
	}

	sort.Strings(files)
	return files
}
