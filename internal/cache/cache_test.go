package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return s
}

func TestStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	info, err := os.Stat(s.Dir())
	if err != nil || !info.IsDir() {
		t.Fatalf("cache directory not created: %v", err)
	}
}

func TestStore_PutLookupRoundTrip(t *testing.T) {
	s := newStore(t)
	e := Entry{
		Key:         "proj_abcdef0123456789",
		ReportFile:  ArtifactName("proj_abcdef0123456789"),
		ProjectPath: "/tmp/proj",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		FileCount:   3,
	}
	if _, ok := s.Lookup(e.Key); ok {
		t.Fatal("lookup before put should miss")
	}
	if err := s.Put(e); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	got, ok := s.Lookup(e.Key)
	if !ok {
		t.Fatal("lookup after put should hit")
	}
	if got != e {
		t.Errorf("Lookup = %+v, want %+v", got, e)
	}

	// A fresh store over the same directory must see the persisted entry.
	s2, err := New(s.Dir())
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	got, ok = s2.Lookup(e.Key)
	if !ok {
		t.Fatal("persisted entry missing after reopen")
	}
	if !got.CreatedAt.Equal(e.CreatedAt) || got.FileCount != e.FileCount || got.ProjectPath != e.ProjectPath {
		t.Errorf("persisted entry = %+v, want %+v", got, e)
	}
}

func TestStore_PutSupersedesOldArtifact(t *testing.T) {
	s := newStore(t)
	old := Entry{Key: "k", ReportFile: "cache_old.txt", CreatedAt: time.Now()}
	oldArtifact := filepath.Join(s.Dir(), old.ReportFile)
	if err := os.WriteFile(oldArtifact, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(old); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(Entry{Key: "k", ReportFile: "cache_new.txt", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(oldArtifact); !os.IsNotExist(err) {
		t.Error("superseded artifact should be removed")
	}
}

func TestStore_ClearAll(t *testing.T) {
	s := newStore(t)
	for _, key := range []string{"alpha_1111111111111111", "beta_2222222222222222"} {
		artifact := s.ArtifactPath(key)
		if err := os.WriteFile(artifact, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := s.Put(Entry{Key: key, ReportFile: ArtifactName(key), CreatedAt: time.Now()}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Clear(""); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if got := s.List(); len(got) != 0 {
		t.Errorf("entries after full clear: %v", got)
	}
	matches, _ := filepath.Glob(filepath.Join(s.Dir(), "cache_*.txt"))
	if len(matches) != 0 {
		t.Errorf("artifacts after full clear: %v", matches)
	}
}

func TestStore_ClearPrefix(t *testing.T) {
	s := newStore(t)
	keep := "beta_2222222222222222"
	drop := "alpha_1111111111111111"
	for _, key := range []string{keep, drop} {
		if err := os.WriteFile(s.ArtifactPath(key), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := s.Put(Entry{Key: key, ReportFile: ArtifactName(key), CreatedAt: time.Now()}); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.Clear("alpha"); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, ok := s.Lookup(drop); ok {
		t.Error("alpha entry should be cleared")
	}
	if _, ok := s.Lookup(keep); !ok {
		t.Error("beta entry should survive")
	}
	if _, err := os.Stat(s.ArtifactPath(drop)); !os.IsNotExist(err) {
		t.Error("alpha artifact should be removed")
	}
	if _, err := os.Stat(s.ArtifactPath(keep)); err != nil {
		t.Error("beta artifact should survive")
	}
}

func TestStore_ClearUnknownPrefix(t *testing.T) {
	s := newStore(t)
	if err := s.Put(Entry{Key: "proj_1", ReportFile: ArtifactName("proj_1"), CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear("nonexistent"); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, ok := s.Lookup("proj_1"); !ok {
		t.Error("unrelated entry must survive clearing an unknown prefix")
	}
}

func TestStore_CorruptIndexDegradesToEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, indexFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New on corrupt index should not error: %v", err)
	}
	if got := s.List(); len(got) != 0 {
		t.Errorf("corrupt index should load empty, got %v", got)
	}
	// The store remains usable afterwards.
	if err := s.Put(Entry{Key: "k", ReportFile: ArtifactName("k"), CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Put after corrupt load: %v", err)
	}
}

func TestStore_ListReflectsDisk(t *testing.T) {
	s := newStore(t)
	if err := s.Put(Entry{Key: "b_key", ReportFile: ArtifactName("b_key"), CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	// Simulate another process writing the shared index.
	other, err := New(s.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if err := other.Put(Entry{Key: "a_key", ReportFile: ArtifactName("a_key"), CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	got := s.List()
	if len(got) != 2 {
		t.Fatalf("List = %d entries, want 2 (must re-read disk)", len(got))
	}
	if got[0].Key != "a_key" || got[1].Key != "b_key" {
		t.Errorf("List not sorted by key: %v", got)
	}
}

func TestStore_IndexTimestampFormat(t *testing.T) {
	s := newStore(t)
	if err := s.Put(Entry{Key: "k", ReportFile: ArtifactName("k"), CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(s.Dir(), indexFileName))
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("index is not valid JSON: %v", err)
	}
	ts, _ := raw["k"]["created_at"].(string)
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("created_at %q is not RFC 3339: %v", ts, err)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		root string
		want string
	}{
		{"/home/user/My Project", "my_project"},
		{"/srv/app-v2", "app-v2"},
		{"/x/weird!!name", "weird_name"},
	}
	for _, tt := range tests {
		if got := Slug(tt.root); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.root, got, tt.want)
		}
	}
}

func TestProjectHash_Deterministic(t *testing.T) {
	inc := []string{"*.py", "*.js"}
	exc := []string{"node_modules", "test_*.py"}
	ft := []string{"*.go"}

	h1 := ProjectHash("/test/project", inc, exc, ft)
	h2 := ProjectHash("/test/project", inc, exc, ft)
	if h1 != h2 {
		t.Errorf("hash not deterministic: %q vs %q", h1, h2)
	}
	if len(h1) != projectHashLen {
		t.Errorf("hash length = %d, want %d", len(h1), projectHashLen)
	}
}

func TestProjectHash_OrderIndependent(t *testing.T) {
	a := ProjectHash("/p", []string{"*.py", "*.js"}, []string{"x", "y"}, []string{"*.go", "*.rs"})
	b := ProjectHash("/p", []string{"*.js", "*.py"}, []string{"y", "x"}, []string{"*.rs", "*.go"})
	if a != b {
		t.Errorf("reordered pattern sets changed the hash: %q vs %q", a, b)
	}
}

func TestProjectHash_MembershipSensitive(t *testing.T) {
	base := ProjectHash("/p", []string{"*.py"}, []string{"x"}, nil)
	changed := []string{
		ProjectHash("/p", []string{"*.py", "*.js"}, []string{"x"}, nil),
		ProjectHash("/p", []string{"*.py"}, []string{"x", "y"}, nil),
		ProjectHash("/p", []string{"*.py"}, []string{"x"}, []string{"*.go"}),
		ProjectHash("/q", []string{"*.py"}, []string{"x"}, nil),
	}
	for i, h := range changed {
		if h == base {
			t.Errorf("variant %d should change the hash", i)
		}
	}
}

func TestProjectHash_SetsNotInterchangeable(t *testing.T) {
	// The same pattern moved between sets must change the hash.
	a := ProjectHash("/p", []string{"*.py"}, nil, nil)
	b := ProjectHash("/p", nil, []string{"*.py"}, nil)
	if a == b {
		t.Error("include vs exclude placement should change the hash")
	}
}

func TestKey_Shape(t *testing.T) {
	key := Key("/home/user/My Project", nil, nil, nil)
	want := "my_project_" + ProjectHash("/home/user/My Project", nil, nil, nil)
	if key != want {
		t.Errorf("Key = %q, want %q", key, want)
	}
}

func TestFileHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("content one"), 0o644); err != nil {
		t.Fatal(err)
	}
	h1 := FileHash(path)
	h2 := FileHash(path)
	if h1 == "" || h1 != h2 {
		t.Errorf("stable hash expected, got %q / %q", h1, h2)
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
	if err := os.WriteFile(path, []byte("content two"), 0o644); err != nil {
		t.Fatal(err)
	}
	if FileHash(path) == h1 {
		t.Error("changed content should change the hash")
	}
}

func TestFileHash_Missing(t *testing.T) {
	if got := FileHash(filepath.Join(t.TempDir(), "missing.txt")); got != "" {
		t.Errorf("FileHash of missing file = %q, want empty sentinel", got)
	}
}
