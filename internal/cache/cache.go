package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
)

const (
	// DefaultDirName is the cache directory used when none is configured.
	DefaultDirName = ".code_cache"

	indexFileName  = "index.json"
	lockFileName   = "index.lock"
	artifactPrefix = "cache_"
	artifactExt    = ".txt"
)

// Entry describes one cached collection result. Timestamps round-trip
// through JSON as RFC 3339 strings; unknown fields in a persisted entry are
// ignored on load for forward compatibility.
type Entry struct {
	Key         string    `json:"key"`
	ReportFile  string    `json:"file"`
	ProjectPath string    `json:"project_path"`
	CreatedAt   time.Time `json:"created_at"`
	FileCount   int       `json:"file_count"`
}

// Store owns a cache directory: the index document plus the report
// artifacts it references.
type Store struct {
	dir   string
	index map[string]Entry
	lock  *flock.Flock
}

// New opens (creating if needed) the cache directory and loads its index.
// An unreadable or malformed index degrades to an empty one; only failure
// to create the directory itself is an error.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDirName
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving cache directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	s := &Store{
		dir:  abs,
		lock: flock.New(filepath.Join(abs, lockFileName)),
	}
	s.index = s.loadIndex()
	return s, nil
}

// Dir returns the cache directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Lookup returns the entry for key from the in-memory index.
func (s *Store) Lookup(key string) (Entry, bool) {
	e, ok := s.index[key]
	return e, ok
}

// Put inserts or overwrites the entry for e.Key and persists the index
// immediately. A superseded entry pointing at a differently named artifact
// has that artifact removed.
func (s *Store) Put(e Entry) error {
	if old, ok := s.index[e.Key]; ok && old.ReportFile != "" && old.ReportFile != e.ReportFile {
		if err := os.Remove(filepath.Join(s.dir, old.ReportFile)); err != nil && !os.IsNotExist(err) {
			log.Debug("removing superseded artifact", "file", old.ReportFile, "error", err)
		}
	}
	s.index[e.Key] = e
	return s.saveIndex()
}

// Clear removes entries and their artifacts. With an empty prefix the whole
// cache is cleared; otherwise only entries whose key starts with prefix are
// removed (case-sensitive), leaving everything else untouched.
func (s *Store) Clear(prefix string) error {
	removed := 0
	for key, e := range s.index {
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			continue
		}
		if e.ReportFile != "" {
			if err := os.Remove(filepath.Join(s.dir, e.ReportFile)); err != nil && !os.IsNotExist(err) {
				log.Debug("removing cache artifact", "file", e.ReportFile, "error", err)
			}
		}
		delete(s.index, key)
		removed++
	}
	log.Debug("cache cleared", "prefix", prefix, "removed", removed)
	return s.saveIndex()
}

// List reloads the index from disk and returns its entries sorted by key,
// so the result reflects what was last persisted, including by another
// process sharing the cache directory.
func (s *Store) List() []Entry {
	s.index = s.loadIndex()
	entries := make([]Entry, 0, len(s.index))
	for _, e := range s.index {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// ArtifactName returns the report artifact filename for a cache key. The
// name is derivable from the key alone so Clear can delete exactly the
// artifacts the index owns.
func ArtifactName(key string) string {
	return artifactPrefix + key + artifactExt
}

// ArtifactPath returns the absolute path of the artifact for a cache key.
func (s *Store) ArtifactPath(key string) string {
	return filepath.Join(s.dir, ArtifactName(key))
}

func (s *Store) indexPath() string {
	return filepath.Join(s.dir, indexFileName)
}

func (s *Store) loadIndex() map[string]Entry {
	data, err := os.ReadFile(s.indexPath())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug("cache index unreadable, starting empty", "error", err)
		}
		return make(map[string]Entry)
	}
	var index map[string]Entry
	if err := json.Unmarshal(data, &index); err != nil {
		log.Debug("cache index malformed, starting empty", "error", err)
		return make(map[string]Entry)
	}
	if index == nil {
		index = make(map[string]Entry)
	}
	return index
}

// saveIndex writes the index document atomically under an advisory lock.
func (s *Store) saveIndex() error {
	data, err := json.MarshalIndent(s.index, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache index: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		// The lock is advisory; the rename below still never leaves a
		// torn document.
		log.Debug("cache index lock unavailable", "error", err)
	} else {
		defer func() {
			if err := s.lock.Unlock(); err != nil {
				log.Debug("cache index unlock failed", "error", err)
			}
		}()
	}
	return atomicWrite(s.indexPath(), data)
}

// atomicWrite replaces path with data via a temp file and rename so readers
// never observe a partial index.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".index-*")
	if err != nil {
		return fmt.Errorf("creating temp index: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp index: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing index: %w", err)
	}
	return nil
}
