package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/thearvindas/swim-facilities/internal/runlog"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent scrape refresh runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := runlog.Open(cfg.RunLog.Path)
		if err != nil {
			return eris.Wrap(err, "open run log")
		}
		defer l.Close()

		entries, err := l.Recent(cmd.Context(), runsLimit)
		if err != nil {
			return eris.Wrap(err, "list runs")
		}
		if len(entries) == 0 {
			fmt.Println("no recorded runs")
			return nil
		}

		for _, e := range entries {
			line := fmt.Sprintf("%s  %-9s  listings=%d geocoded=%d",
				e.StartedAt.Format("2006-01-02 15:04:05"), e.Status, e.Listings, e.Geocoded)
			if e.Error != "" {
				line += "  error=" + e.Error
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "max runs to show")
	rootCmd.AddCommand(runsCmd)
}
