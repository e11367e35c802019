package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avelis/tokmeter/internal/cache"
	"github.com/avelis/tokmeter/internal/config"
	"github.com/avelis/tokmeter/internal/display"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the collection cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached collection results",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return runtimeErr(err)
		}
		fmt.Fprintln(os.Stdout, display.RenderCacheList(store.List(), store.Dir()))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [project-prefix]",
	Short: "Remove cached results (all, or only keys with the given prefix)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if len(args) > 0 {
			prefix = args[0]
		}
		store, err := openStore()
		if err != nil {
			return runtimeErr(err)
		}
		if err := store.Clear(prefix); err != nil {
			return runtimeErr(fmt.Errorf("clearing cache: %w", err))
		}
		if prefix == "" {
			display.Successf("Cache cleared.")
		} else {
			display.Successf("Cache entries with prefix %q cleared.", prefix)
		}
		return nil
	},
}

func openStore() (*cache.Store, error) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return nil, err
	}
	store, err := cache.New(cfg.Cache.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, nil
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&flagCacheDir, "cache-dir", "", "Cache directory (default: "+cache.DefaultDirName+")")
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
