package report

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avelis/tokmeter/internal/analyzer"
)

const rule = "================================================================================"

// StandardWriter renders the human-readable report layout.
type StandardWriter struct{}

func (s *StandardWriter) Write(w io.Writer, rep *Report) error {
	ew := &errWriter{w: w}
	writeHeader(ew, rep)

	for _, path := range rep.Files {
		content, size, readErr := readFile(path)
		ew.println(rule)
		ew.printf("## File: %s (%s)\n", relPath(rep.Root, path), analyzer.FormatBytes(size))
		ew.println(rule)
		ew.println("")
		if readErr != nil {
			ew.printf("[error reading file: %v]\n\n", readErr)
			continue
		}
		ew.println(content)
		ew.println("")
	}
	return ew.err
}

// CustomWriter renders the indexed layout used for LLM ingestion.
type CustomWriter struct{}

func (c *CustomWriter) Write(w io.Writer, rep *Report) error {
	ew := &errWriter{w: w}
	writeHeader(ew, rep)

	for i, path := range rep.Files {
		content, _, readErr := readFile(path)
		ew.printf("####### [idx:%d] %s\n", i+1, relPath(rep.Root, path))
		if readErr != nil {
			ew.printf("[error reading file: %v]\n", readErr)
			continue
		}
		ew.println(strings.TrimRight(content, "\n"))
	}
	return ew.err
}

func writeHeader(ew *errWriter, rep *Report) {
	ew.println("# Code Collection Report")
	ew.println("")
	ew.printf("Project Path: %s\n", rep.Root)
	ew.printf("File Count: %d\n", len(rep.Files))
	ew.printf("Generated At: %s\n", rep.GeneratedAt.Format(time.RFC3339))
	ew.println("")
}

func readFile(path string) (string, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}
	return string(data), int64(len(data)), nil
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
