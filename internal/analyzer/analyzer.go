package analyzer

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// smallLineTokens is the threshold at or below which a non-empty line is
// counted as "small" (mostly braces, imports, blank-ish noise).
const smallLineTokens = 3

// FileStats holds the analysis results for a single file.
type FileStats struct {
	Path              string
	Size              int64
	LineCount         int
	NonEmptyLineCount int
	CharCount         int
	WordCount         int
	Tokens            int
	TokensGPT4        int
	AvgTokensPerLine  float64
	SmallLines        int
	SmallLinesPct     float64
	ContextUsage      []ModelUsage
}

// Analyze reads path and computes its statistics. Unlike scanning, the file
// is a direct user input, so a missing or unreadable file is an error.
func Analyze(path string) (*FileStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	content := string(data)

	stats := &FileStats{
		Path:      path,
		Size:      int64(len(data)),
		CharCount: utf8.RuneCountInString(content),
		WordCount: CountWords(content),
	}

	lines := strings.Split(content, "\n")
	// A trailing newline produces one empty phantom element, not a line.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	stats.LineCount = len(lines)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		stats.NonEmptyLineCount++
		if CountTokens(line) <= smallLineTokens {
			stats.SmallLines++
		}
	}

	stats.Tokens = CountTokens(content)
	stats.TokensGPT4 = EstimateTokensGPT4(content)
	if stats.LineCount > 0 {
		stats.AvgTokensPerLine = float64(stats.Tokens) / float64(stats.LineCount)
	}
	if stats.NonEmptyLineCount > 0 {
		stats.SmallLinesPct = float64(stats.SmallLines) / float64(stats.NonEmptyLineCount) * 100
	}
	stats.ContextUsage = ContextUsage(stats.TokensGPT4)
	return stats, nil
}

// FormatBytes renders a byte count as a human-readable size.
func FormatBytes(n int64) string {
	f := float64(n)
	switch {
	case f >= 1<<30:
		return fmt.Sprintf("%.2f GB", f/(1<<30))
	case f >= 1<<20:
		return fmt.Sprintf("%.2f MB", f/(1<<20))
	case f >= 1<<10:
		return fmt.Sprintf("%.2f KB", f/(1<<10))
	default:
		return fmt.Sprintf("%.2f B", f)
	}
}
