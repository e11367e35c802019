package cache

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// projectHashLen is the number of hex characters kept from the project
// fingerprint. 64 bits of digest is plenty for a per-machine cache.
const projectHashLen = 16

var slugSanitizer = regexp.MustCompile(`[^a-z0-9_-]+`)

// Slug derives a lowercase, filesystem-safe identifier from the project
// root's base name. Slugs are not unique on their own; the project hash
// component of the key is what guarantees distinctness.
func Slug(root string) string {
	base := strings.ToLower(filepath.Base(absOrRaw(root)))
	slug := slugSanitizer.ReplaceAllString(base, "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "project"
	}
	return slug
}

// ProjectHash fingerprints the tuple (absolute root path, sorted include,
// sorted exclude, sorted file-type patterns). It is a pure function of those
// inputs: reordering a pattern set does not change the hash, changing set
// membership or the root does. The raw root string is hashed without case
// folding so roots with colliding slugs still hash apart.
func ProjectHash(root string, include, exclude, fileTypes []string) string {
	h := sha256.New()
	h.Write([]byte(absOrRaw(root)))
	for _, set := range [][]string{include, exclude, fileTypes} {
		h.Write([]byte{0})
		for _, p := range sortedCopy(set) {
			h.Write([]byte(p))
			h.Write([]byte{1})
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:projectHashLen]
}

// Key returns the cache key for a collection run: <slug>_<hash16>.
func Key(root string, include, exclude, fileTypes []string) string {
	return Slug(root) + "_" + ProjectHash(root, include, exclude, fileTypes)
}

// FileHash returns the full sha256 hex digest of a file's raw bytes, or the
// empty string when the file does not exist or cannot be read.
func FileHash(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}

func absOrRaw(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return root
	}
	return abs
}
