package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thearvindas/swim-facilities/internal/cache"
)

var schoolsCmd = &cobra.Command{
	Use:   "schools",
	Short: "Inspect and refresh the scraped school data",
}

var schoolsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a fresh scrape and geocode pass, ignoring the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup := buildPipeline()
		defer cleanup()

		records := p.Refresh(cmd.Context())
		zap.L().Info("refresh finished", zap.Int("schools", len(records)))
		return nil
	},
}

var schoolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the cached school records",
	RunE: func(cmd *cobra.Command, args []string) error {
		records := cache.NewFileStore(cfg.Cache.Path).Load()
		if len(records) == 0 {
			fmt.Println("no cached schools; run `swim-facilities schools refresh`")
			return nil
		}
		for _, s := range records {
			fmt.Printf("%s (%s)\n  %s\n  (%.4f, %.4f)\n", s.Name, s.Type, s.Address, s.Latitude, s.Longitude)
		}
		fmt.Printf("\n%d schools\n", len(records))
		return nil
	},
}

func init() {
	schoolsCmd.AddCommand(schoolsRefreshCmd)
	schoolsCmd.AddCommand(schoolsListCmd)
	rootCmd.AddCommand(schoolsCmd)
}
