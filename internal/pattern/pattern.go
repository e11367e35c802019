package pattern

import (
	"path/filepath"
	"strings"
)

// Set holds the three glob collections controlling file eligibility.
// All fields are optional; an empty FileTypes means the default catalog.
type Set struct {
	Include   []string
	Exclude   []string
	FileTypes []string
}

// noiseDirs are directory names that never participate in collection,
// regardless of patterns. Hidden directories are rejected separately.
var noiseDirs = map[string]bool{
	"node_modules":     true,
	"bower_components": true,
	"__pycache__":      true,
	"venv":             true,
	"virtualenv":       true,
	"dist":             true,
	"build":            true,
	"target":           true,
	"vendor":           true,
}

// defaultFileTypes is the built-in catalog of recognized source and text
// extensions, used when a Set carries no explicit file-type patterns.
var defaultFileTypes = []string{
	"*.py", "*.pyi",
	"*.js", "*.jsx", "*.mjs",
	"*.ts", "*.tsx",
	"*.go",
	"*.java", "*.kt", "*.kts",
	"*.c", "*.h", "*.cc", "*.cpp", "*.hpp",
	"*.cs",
	"*.rb",
	"*.php",
	"*.rs",
	"*.swift",
	"*.scala",
	"*.sh", "*.bash",
	"*.sql",
	"*.html", "*.css", "*.scss", "*.vue", "*.svelte",
	"*.md", "*.rst", "*.txt",
	"*.json", "*.yaml", "*.yml", "*.toml", "*.ini", "*.cfg",
	"*.xml", "*.proto",
}

// DefaultFileTypes returns a copy of the built-in extension catalog.
func DefaultFileTypes() []string {
	out := make([]string, len(defaultFileTypes))
	copy(out, defaultFileTypes)
	return out
}

// IsNoiseDir reports whether a directory name is on the fixed denylist.
// The scanner uses this to prune subtrees before descending into them.
func IsNoiseDir(name string) bool {
	return noiseDirs[name]
}

// IsHidden reports whether a path component is a hidden entry.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// Eligible reports whether the project-relative path rel participates in a
// collection run under the given pattern set. rel may use either separator.
func Eligible(rel string, s Set) bool {
	segs := splitPath(rel)
	if len(segs) == 0 {
		return false
	}
	for _, seg := range segs {
		if IsHidden(seg) || noiseDirs[seg] {
			return false
		}
	}
	base := segs[len(segs)-1]

	// Include is a strict allow-list: when present, nothing else matters.
	if len(s.Include) > 0 {
		return MatchesAny(base, s.Include)
	}

	types := s.FileTypes
	if len(types) == 0 {
		types = defaultFileTypes
	}
	if !MatchesAny(base, types) {
		return false
	}

	// Exclude globs apply to the filename and to every path segment, so a
	// directory-shaped pattern like "testdata" removes the whole subtree.
	for _, seg := range segs {
		if MatchesAny(seg, s.Exclude) {
			return false
		}
	}
	return true
}

// MatchesAny returns true if name matches any of the given glob patterns.
// Malformed patterns are skipped rather than treated as errors.
func MatchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		matched, err := filepath.Match(p, name)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

func splitPath(rel string) []string {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
	var segs []string
	for _, seg := range strings.Split(rel, "/") {
		if seg == "" {
			continue
		}
		segs = append(segs, seg)
	}
	return segs
}
