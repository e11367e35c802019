package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/avelis/tokmeter/internal/pattern"
)

// writeTree creates files (with parent dirs) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
}

func baseNames(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, filepath.Base(p))
	}
	return out
}

func TestScan_DefaultExclusions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.py":             "print('main')",
		"utils.py":            "print('utils')",
		"README.md":           "# readme",
		".env":                "SECRET=1",
		"node_modules/lib.js": "module.exports = {}",
	})

	got := Scan(root, pattern.Set{})
	want := []string{"README.md", "main.py", "utils.py"}
	if !reflect.DeepEqual(baseNames(got), want) {
		t.Errorf("Scan = %v, want %v", baseNames(got), want)
	}
}

func TestScan_SortedAndDeduplicated(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.py":     "b",
		"a.py":     "a",
		"sub/c.py": "c",
		"sub/a.py": "a2",
	})

	// Overlapping file-type patterns must not produce duplicates.
	got := Scan(root, pattern.Set{FileTypes: []string{"*.py", "a.py", "*"}})
	if !sort.StringsAreSorted(got) {
		t.Errorf("result not sorted: %v", got)
	}
	seen := make(map[string]bool)
	for _, p := range got {
		if seen[p] {
			t.Errorf("duplicate entry: %s", p)
		}
		seen[p] = true
		if !filepath.IsAbs(p) {
			t.Errorf("non-absolute path: %s", p)
		}
	}
	if len(got) != 4 {
		t.Errorf("got %d files, want 4: %v", len(got), got)
	}
}

func TestScan_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"x.py":       "x",
		"y.go":       "y",
		"deep/z.txt": "z",
	})

	first := Scan(root, pattern.Set{})
	second := Scan(root, pattern.Set{})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two scans of unchanged tree differ:\n%v\n%v", first, second)
	}
}

func TestScan_NonexistentRoot(t *testing.T) {
	got := Scan(filepath.Join(t.TempDir(), "nope"), pattern.Set{})
	if len(got) != 0 {
		t.Errorf("Scan of missing root = %v, want empty", got)
	}
}

func TestScan_RootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "f.py")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Scan(file, pattern.Set{}); len(got) != 0 {
		t.Errorf("Scan of a file root = %v, want empty", got)
	}
}

func TestScan_EmptyDirectory(t *testing.T) {
	if got := Scan(t.TempDir(), pattern.Set{}); len(got) != 0 {
		t.Errorf("Scan of empty dir = %v, want empty", got)
	}
}

func TestScan_IncludePatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.py":  "m",
		"utils.py": "u",
		"other.md": "o",
	})

	got := Scan(root, pattern.Set{Include: []string{"main.py", "utils.py"}})
	want := []string{"main.py", "utils.py"}
	if !reflect.DeepEqual(baseNames(got), want) {
		t.Errorf("Scan include = %v, want %v", baseNames(got), want)
	}
}

func TestScan_ExcludePrunesSubtree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"keep.py":          "k",
		"gen/skip.py":      "s",
		"other/gen/two.py": "s2",
	})

	got := Scan(root, pattern.Set{Exclude: []string{"gen"}})
	if !reflect.DeepEqual(baseNames(got), []string{"keep.py"}) {
		t.Errorf("Scan with dir exclude = %v, want [keep.py]", baseNames(got))
	}
}

func TestScan_DoesNotFollowDirSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"real/a.py": "a"})
	link := filepath.Join(root, "loop")
	if err := os.Symlink(root, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	// Must terminate and not pick up files through the symlinked directory.
	got := Scan(root, pattern.Set{})
	if !reflect.DeepEqual(baseNames(got), []string{"a.py"}) {
		t.Errorf("Scan with symlink cycle = %v, want [a.py]", baseNames(got))
	}
}
