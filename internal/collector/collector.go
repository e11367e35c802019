package collector

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/avelis/tokmeter/internal/cache"
	"github.com/avelis/tokmeter/internal/pattern"
	"github.com/avelis/tokmeter/internal/report"
	"github.com/avelis/tokmeter/internal/scanner"
)

// DefaultOutputName is used when the caller gives no output path.
const DefaultOutputName = "collected_code.txt"

// Options describes one collection run.
type Options struct {
	Root     string
	Patterns pattern.Set
	Output   string // defaults to DefaultOutputName in the working directory
	UseCache bool
}

// Pipeline wires the scanner, the cache store, and a report writer into the
// collection flow. The writer is an interface so callers (and tests) control
// the layout and can observe whether formatting actually ran.
type Pipeline struct {
	store  *cache.Store
	writer report.Writer
}

// New returns a Pipeline using the given store and writer. The store may be
// nil, which disables caching regardless of Options.UseCache.
func New(store *cache.Store, writer report.Writer) *Pipeline {
	return &Pipeline{store: store, writer: writer}
}

// Collect runs the pipeline and returns the path of the produced report.
func (p *Pipeline) Collect(opts Options) (string, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return "", fmt.Errorf("resolving project root: %w", err)
	}
	output := opts.Output
	if output == "" {
		output = DefaultOutputName
	}

	useCache := opts.UseCache && p.store != nil
	var key string
	if useCache {
		key = cache.Key(root, opts.Patterns.Include, opts.Patterns.Exclude, opts.Patterns.FileTypes)
		if artifact, ok := p.cachedArtifact(key); ok {
			log.Debug("cache hit", "key", key)
			if err := copyFile(artifact, output); err != nil {
				return "", fmt.Errorf("restoring cached report: %w", err)
			}
			return output, nil
		}
		log.Debug("cache miss", "key", key)
	}

	files := scanner.Scan(root, opts.Patterns)
	log.Debug("scan complete", "root", root, "files", len(files))

	rep := &report.Report{Root: root, Files: files, GeneratedAt: time.Now()}
	if err := p.writeReport(rep, output); err != nil {
		return "", err
	}

	if useCache {
		// Cache-side failures after a successful write are logged, not
		// surfaced: the requested artifact exists.
		if err := p.storeResult(key, root, output, len(files)); err != nil {
			log.Warn("caching collection result failed", "key", key, "error", err)
		}
	}
	return output, nil
}

// cachedArtifact returns the artifact path for key when the index has an
// entry and the artifact is actually present. An entry pointing at a
// missing artifact is treated as a miss.
func (p *Pipeline) cachedArtifact(key string) (string, bool) {
	e, ok := p.store.Lookup(key)
	if !ok {
		return "", false
	}
	artifact := filepath.Join(p.store.Dir(), e.ReportFile)
	if _, err := os.Stat(artifact); err != nil {
		log.Debug("index entry without artifact, treating as miss", "key", key)
		return "", false
	}
	return artifact, true
}

func (p *Pipeline) writeReport(rep *report.Report, output string) error {
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := p.writer.Write(f, rep); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}
	return nil
}

// storeResult copies the produced report into the cache directory and
// records the entry. The artifact is written before the index so a
// successful Put never references a missing file.
func (p *Pipeline) storeResult(key, root, output string, fileCount int) error {
	if err := copyFile(output, p.store.ArtifactPath(key)); err != nil {
		return err
	}
	return p.store.Put(cache.Entry{
		Key:         key,
		ReportFile:  cache.ArtifactName(key),
		ProjectPath: root,
		CreatedAt:   time.Now().UTC(),
		FileCount:   fileCount,
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
