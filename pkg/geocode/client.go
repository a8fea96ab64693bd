// Package geocode resolves addresses to coordinates via the Nominatim search
// API, with a courtesy rate limit and an optional SQLite result cache.
package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client geocodes free-form address queries.
type Client interface {
	// Geocode resolves a single query. An unresolvable address returns
	// Matched=false, not an error.
	Geocode(ctx context.Context, query string) (*Result, error)
}

// Result holds the geocoding output for a query.
type Result struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
	Source      string // "nominatim" or "cache"
	Matched     bool
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithBaseURL overrides the Nominatim endpoint (tests point this at a stub).
func WithBaseURL(u string) Option {
	return func(g *geocoder) {
		g.baseURL = u
	}
}

// WithUserAgent sets the User-Agent header. Nominatim's usage policy
// requires an identifying agent.
func WithUserAgent(ua string) Option {
	return func(g *geocoder) {
		g.userAgent = ua
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) {
		g.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second courtesy limit. The Nominatim
// public instance asks for at most one request per second.
func WithRateLimit(rps float64) Option {
	return func(g *geocoder) {
		g.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithCache attaches a result cache consulted before any network call.
func WithCache(c *Cache) Option {
	return func(g *geocoder) {
		g.cache = c
	}
}

type geocoder struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	cache      *Cache
}

// NewClient creates a new geocoding Client with the given options.
func NewClient(opts ...Option) Client {
	g := &geocoder{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://nominatim.openstreetmap.org",
		userAgent:  "swim-facilities/1.0",
		limiter:    rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Geocode resolves a query, consulting the cache first. Negative results are
// cached too, so a known-bad address never costs a second network call.
func (g *geocoder) Geocode(ctx context.Context, query string) (*Result, error) {
	key := cacheKey(query)

	if g.cache != nil {
		if cached, ok := g.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	result, err := g.geocodeNominatim(ctx, query)
	if err != nil {
		return nil, err
	}

	if g.cache != nil {
		_ = g.cache.Put(ctx, key, result)
	}
	return result, nil
}
