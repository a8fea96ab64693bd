package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thearvindas/swim-facilities/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "swim-facilities",
	Short: "Calgary schools and aquatic facilities map generator",
	Long:  "Scrapes CBE school locations, geocodes them via Nominatim, caches results, and renders an interactive map alongside Calgary aquatic facilities.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	// Running with no subcommand generates the map, degrade-gracefully.
	RunE: func(cmd *cobra.Command, args []string) error {
		return generate(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
