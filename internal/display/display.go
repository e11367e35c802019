package display

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/avelis/tokmeter/internal/analyzer"
	"github.com/avelis/tokmeter/internal/cache"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	okMark   = color.New(color.FgGreen).SprintFunc()
	overMark = color.New(color.FgRed).SprintFunc()
)

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// RenderAnalysis renders a file's statistics as a bordered panel followed by
// the per-model context-window table.
func RenderAnalysis(stats *analyzer.FileStats) string {
	body := fmt.Sprintf(
		"File: %s\nSize: %s\nLines: %d (%d non-empty)\nCharacters: %d\nWords: %d\nTokens: %d (simple) / %d (gpt-4 est.)\nAvg tokens/line: %.2f\nSmall lines: %d (%.1f%%)",
		stats.Path,
		analyzer.FormatBytes(stats.Size),
		stats.LineCount, stats.NonEmptyLineCount,
		stats.CharCount,
		stats.WordCount,
		stats.Tokens, stats.TokensGPT4,
		stats.AvgTokensPerLine,
		stats.SmallLines, stats.SmallLinesPct,
	)
	panel := panelStyle.Render(titleStyle.Render("File Analysis") + "\n" + body)
	return panel + "\n" + RenderContextTable(stats.ContextUsage)
}

// RenderContextTable renders the context-window usage table.
func RenderContextTable(usage []analyzer.ModelUsage) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("MODEL", "LIMIT", "TOKENS", "USAGE", "FITS")
	for _, u := range usage {
		fits := okMark("yes")
		if u.Exceeded {
			fits = overMark("no")
		}
		t.Row(
			u.Model,
			fmt.Sprintf("%d", u.Limit),
			fmt.Sprintf("%d", u.TokenCount),
			fmt.Sprintf("%.1f%%", u.Percentage),
			fits,
		)
	}
	return t.String()
}

// RenderCacheList renders the cache entries table for `cache list`.
func RenderCacheList(entries []cache.Entry, dir string) string {
	if len(entries) == 0 {
		return "Cache is empty."
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KEY", "PROJECT", "FILES", "CREATED", "ARTIFACT")
	for _, e := range entries {
		artifact := okMark("present")
		if _, err := os.Stat(filepath.Join(dir, e.ReportFile)); err != nil {
			artifact = overMark("missing")
		}
		t.Row(
			e.Key,
			e.ProjectPath,
			fmt.Sprintf("%d", e.FileCount),
			e.CreatedAt.Local().Format(time.RFC3339),
			artifact,
		)
	}
	return t.String()
}

// Successf prints a green status line to stdout.
func Successf(format string, args ...any) {
	fmt.Println(okMark(fmt.Sprintf(format, args...)))
}
