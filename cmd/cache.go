package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/thearvindas/swim-facilities/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the school cache file",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cache file state",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := cache.NewFileStore(cfg.Cache.Path)
		info, err := os.Stat(store.Path())
		if err != nil {
			fmt.Printf("cache: %s (absent)\n", store.Path())
			return nil
		}
		records := store.Load()
		fmt.Printf("cache: %s\n  modified: %s\n  records: %d\n",
			store.Path(), info.ModTime().Format("2006-01-02 15:04:05"), len(records))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cache file so the next run scrapes fresh data",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Cache.Path
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				fmt.Printf("cache already absent: %s\n", path)
				return nil
			}
			return eris.Wrap(err, "remove cache file")
		}
		fmt.Printf("cache cleared: %s\n", path)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
