// Package pipeline decides between the cached school set and a fresh
// scrape+geocode pass, and persists whatever it builds.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/thearvindas/swim-facilities/internal/cache"
	"github.com/thearvindas/swim-facilities/internal/model"
	"github.com/thearvindas/swim-facilities/internal/runlog"
	"github.com/thearvindas/swim-facilities/internal/scrape"
	"github.com/thearvindas/swim-facilities/pkg/geocode"
)

// State names the acquisition decision.
type State string

const (
	StateUseCache State = "use_cache"
	StateRefresh  State = "refresh"
)

// Fetcher downloads the school listing page.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// Pipeline orchestrates cache-or-refresh data acquisition.
type Pipeline struct {
	sourceURL string
	fetcher   Fetcher
	geocoder  geocode.Client
	store     cache.Store
	runs      *runlog.Log
}

// New creates a Pipeline. The run log is optional.
func New(sourceURL string, fetcher Fetcher, geocoder geocode.Client, store cache.Store, runs *runlog.Log) *Pipeline {
	return &Pipeline{
		sourceURL: sourceURL,
		fetcher:   fetcher,
		geocoder:  geocoder,
		store:     store,
		runs:      runs,
	}
}

// Acquire returns the school set, from cache when one exists, otherwise from
// a fresh scrape. It never fails the caller: a degraded run yields whatever
// records remain available, possibly none.
func (p *Pipeline) Acquire(ctx context.Context) ([]model.SchoolRecord, State) {
	if cached := p.store.Load(); len(cached) > 0 {
		zap.L().Info("pipeline: using cached schools", zap.Int("count", len(cached)))
		return cached, StateUseCache
	}
	return p.Refresh(ctx), StateRefresh
}

// Refresh scrapes and geocodes the school listing, saving the result to the
// cache. Per-record failures are skipped; a whole-page fetch failure falls
// back to the cached set.
func (p *Pipeline) Refresh(ctx context.Context) []model.SchoolRecord {
	runID := p.startRun(ctx)

	page, err := p.fetcher.FetchPage(ctx, p.sourceURL)
	if err != nil {
		zap.L().Warn("pipeline: fetch failed, falling back to cache", zap.Error(err))
		p.finishRun(ctx, runID, runlog.StatusDegraded, 0, 0, err)
		return p.store.Load()
	}

	listings, err := scrape.Parse(page)
	if err != nil {
		zap.L().Warn("pipeline: parse failed, falling back to cache", zap.Error(err))
		p.finishRun(ctx, runID, runlog.StatusDegraded, 0, 0, err)
		return p.store.Load()
	}
	zap.L().Info("pipeline: parsed listings", zap.Int("count", len(listings)))

	records := make([]model.SchoolRecord, 0, len(listings))
	for _, l := range listings {
		result, err := p.geocoder.Geocode(ctx, l.GeocodeQuery())
		if err != nil {
			zap.L().Warn("pipeline: geocode error, dropping school",
				zap.String("name", l.Name),
				zap.Error(err),
			)
			continue
		}
		if !result.Matched {
			zap.L().Warn("pipeline: address unresolved, dropping school",
				zap.String("name", l.Name),
				zap.String("query", l.GeocodeQuery()),
			)
			continue
		}

		address := l.Address
		if address == "" {
			address = result.DisplayName
		}
		records = append(records, model.SchoolRecord{
			Name:      l.Name,
			Address:   address,
			Latitude:  result.Latitude,
			Longitude: result.Longitude,
			Type:      model.SchoolTypePublic,
			Area:      l.Area,
			Board:     "CBE",
			Phone:     l.Phone,
		})
	}

	if err := p.store.Save(records); err != nil {
		// The in-memory set still feeds the map; only persistence is lost.
		zap.L().Warn("pipeline: cache write failed", zap.Error(err))
	}

	p.finishRun(ctx, runID, runlog.StatusComplete, len(listings), len(records), nil)
	zap.L().Info("pipeline: refresh complete",
		zap.Int("listings", len(listings)),
		zap.Int("geocoded", len(records)),
	)
	return records
}

func (p *Pipeline) startRun(ctx context.Context) string {
	if p.runs == nil {
		return ""
	}
	id, err := p.runs.Start(ctx)
	if err != nil {
		zap.L().Warn("pipeline: run log start failed", zap.Error(err))
		return ""
	}
	return id
}

func (p *Pipeline) finishRun(ctx context.Context, id string, status runlog.Status, listings, geocoded int, runErr error) {
	if p.runs == nil || id == "" {
		return
	}
	if err := p.runs.Finish(ctx, id, status, listings, geocoded, runErr); err != nil {
		zap.L().Warn("pipeline: run log finish failed", zap.Error(err))
	}
}
