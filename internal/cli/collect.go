package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avelis/tokmeter/internal/cache"
	"github.com/avelis/tokmeter/internal/collector"
	"github.com/avelis/tokmeter/internal/config"
	"github.com/avelis/tokmeter/internal/display"
	"github.com/avelis/tokmeter/internal/pattern"
	"github.com/avelis/tokmeter/internal/report"
)

var (
	flagInclude   string
	flagExclude   string
	flagFileTypes string
	flagOutput    string
	flagFormat    string
	flagNoCache   bool
	flagCacheDir  string
)

var collectCmd = &cobra.Command{
	Use:   "collect [path]",
	Short: "Collect project files into a consolidated report",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return runtimeErr(err)
		}

		set := pattern.Set{
			Include:   splitList(flagInclude),
			Exclude:   cfg.Exclude,
			FileTypes: cfg.FileTypes,
		}
		if v := splitList(flagExclude); len(v) > 0 {
			set.Exclude = v
		}
		if v := splitList(flagFileTypes); len(v) > 0 {
			set.FileTypes = v
		}

		writer, err := report.GetWriter(cfg.Format)
		if err != nil {
			return runtimeErr(err)
		}

		useCache := cfg.Cache.Enabled && !flagNoCache
		var store *cache.Store
		if useCache {
			store, err = cache.New(cfg.Cache.Dir)
			if err != nil {
				return runtimeErr(fmt.Errorf("opening cache: %w", err))
			}
		}

		pipeline := collector.New(store, writer)
		path, err := pipeline.Collect(collector.Options{
			Root:     root,
			Patterns: set,
			Output:   flagOutput,
			UseCache: useCache,
		})
		if err != nil {
			return runtimeErr(err)
		}
		display.Successf("Report written to %s", path)
		return nil
	},
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagCacheDir != "" {
		m["cacheDir"] = flagCacheDir
	}
	return m
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	collectCmd.Flags().StringVar(&flagInclude, "include", "", "Include filename globs (comma-separated, strict allow-list)")
	collectCmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude globs (comma-separated)")
	collectCmd.Flags().StringVar(&flagFileTypes, "file-type", "", "File-type globs (comma-separated, default: built-in catalog)")
	collectCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output report path (default: "+collector.DefaultOutputName+")")
	collectCmd.Flags().StringVar(&flagFormat, "format", "", "Report layout (standard, custom)")
	collectCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Disable collection caching")
	collectCmd.Flags().StringVar(&flagCacheDir, "cache-dir", "", "Cache directory (default: "+cache.DefaultDirName+")")
}
