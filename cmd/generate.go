package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thearvindas/swim-facilities/internal/cache"
	"github.com/thearvindas/swim-facilities/internal/facilities"
	"github.com/thearvindas/swim-facilities/internal/mapgen"
	"github.com/thearvindas/swim-facilities/internal/pipeline"
	"github.com/thearvindas/swim-facilities/internal/runlog"
	"github.com/thearvindas/swim-facilities/internal/scrape"
	"github.com/thearvindas/swim-facilities/pkg/geocode"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Acquire school data and render the map",
	RunE: func(cmd *cobra.Command, args []string) error {
		return generate(cmd.Context())
	},
}

func init() { rootCmd.AddCommand(generateCmd) }

// generate runs the full pipeline: acquire schools (cache or fresh scrape),
// load facilities, render the map. Acquisition failures degrade; only a map
// render or write failure is fatal.
func generate(ctx context.Context) error {
	p, cleanup := buildPipeline()
	defer cleanup()

	schools, state := p.Acquire(ctx)
	zap.L().Info("schools acquired",
		zap.Int("count", len(schools)),
		zap.String("state", string(state)),
	)

	facilitySet, err := facilities.Load(cfg.Facilities.Path)
	if err != nil {
		return eris.Wrap(err, "load facilities")
	}
	zap.L().Info("facilities loaded", zap.Int("count", len(facilitySet)))

	doc, err := mapgen.Build(schools, facilitySet, mapgen.Options{
		CenterLat: cfg.Map.CenterLat,
		CenterLon: cfg.Map.CenterLon,
		Zoom:      cfg.Map.Zoom,
	})
	if err != nil {
		return eris.Wrap(err, "build map")
	}

	if err := os.WriteFile(cfg.Map.OutputPath, doc, 0o644); err != nil {
		return eris.Wrap(err, "write map")
	}

	zap.L().Info("map written", zap.String("path", cfg.Map.OutputPath))
	return nil
}

// buildPipeline wires the fetcher, geocoder, caches, and run log from config.
// The returned cleanup closes whatever opened successfully.
func buildPipeline() (*pipeline.Pipeline, func()) {
	fetcher := scrape.NewFetcher(scrape.FetcherOptions{
		UserAgent:  cfg.Source.UserAgent,
		Timeout:    time.Duration(cfg.Source.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Source.MaxRetries,
	})

	geocodeOpts := []geocode.Option{
		geocode.WithBaseURL(cfg.Geocode.BaseURL),
		geocode.WithUserAgent(cfg.Geocode.UserAgent),
		geocode.WithRateLimit(cfg.Geocode.RatePerSec),
		geocode.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Geocode.TimeoutSecs) * time.Second}),
	}

	var closers []func()
	if cfg.Geocode.CachePath != "" {
		gc, err := geocode.OpenCache(cfg.Geocode.CachePath, cfg.Geocode.CacheTTL)
		if err != nil {
			zap.L().Warn("geocode cache unavailable, continuing without", zap.Error(err))
		} else {
			geocodeOpts = append(geocodeOpts, geocode.WithCache(gc))
			closers = append(closers, func() { _ = gc.Close() })
		}
	}

	var runs *runlog.Log
	if cfg.RunLog.Path != "" {
		rl, err := runlog.Open(cfg.RunLog.Path)
		if err != nil {
			zap.L().Warn("run log unavailable, continuing without", zap.Error(err))
		} else {
			runs = rl
			closers = append(closers, func() { _ = rl.Close() })
		}
	}

	p := pipeline.New(
		cfg.Source.URL,
		fetcher,
		geocode.NewClient(geocodeOpts...),
		cache.NewFileStore(cfg.Cache.Path),
		runs,
	)
	return p, func() {
		for _, c := range closers {
			c()
		}
	}
}
