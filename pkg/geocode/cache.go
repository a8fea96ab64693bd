package geocode

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// cacheKey returns SHA-256 hex of the normalized query for cache lookup.
func cacheKey(query string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(query), " "))
	h := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", h)
}

// Cache stores geocode results, including non-matches, in SQLite.
type Cache struct {
	db      *sql.DB
	ttlDays int
}

const cacheMigration = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	query_hash   TEXT PRIMARY KEY,
	latitude     REAL NOT NULL DEFAULT 0,
	longitude    REAL NOT NULL DEFAULT 0,
	display_name TEXT NOT NULL DEFAULT '',
	matched      INTEGER NOT NULL,
	cached_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// OpenCache opens (creating if needed) a SQLite result cache at path.
// ttlDays of zero disables expiry.
func OpenCache(path string, ttlDays int) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, eris.Wrap(err, "geocode: create cache dir")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: open cache")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "geocode: exec %s", pragma)
		}
	}
	if _, err := db.Exec(cacheMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "geocode: migrate cache")
	}

	return &Cache{db: db, ttlDays: ttlDays}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get looks up a cached result, respecting TTL if configured. Cached
// non-matches come back too, so the caller can skip the network.
func (c *Cache) Get(ctx context.Context, key string) (*Result, bool) {
	query := "SELECT latitude, longitude, display_name, matched FROM geocode_cache WHERE query_hash = ?"
	if c.ttlDays > 0 {
		query += fmt.Sprintf(" AND cached_at > datetime('now', '-%d days')", c.ttlDays)
	}

	var lat, lon float64
	var displayName string
	var matched bool
	row := c.db.QueryRowContext(ctx, query, key)
	if err := row.Scan(&lat, &lon, &displayName, &matched); err != nil {
		return nil, false // no row or scan error — caller goes to the network
	}

	keyPrefix := key
	if len(keyPrefix) > 12 {
		keyPrefix = keyPrefix[:12]
	}
	zap.L().Debug("geocode cache hit", zap.String("key", keyPrefix), zap.Bool("matched", matched))

	return &Result{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: displayName,
		Source:      "cache",
		Matched:     matched,
	}, true
}

// Put inserts a geocode result (match or non-match) into the cache.
func (c *Cache) Put(ctx context.Context, key string, result *Result) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO geocode_cache (query_hash, latitude, longitude, display_name, matched, cached_at)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT (query_hash) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			display_name = excluded.display_name,
			matched = excluded.matched,
			cached_at = excluded.cached_at`,
		key, result.Latitude, result.Longitude, result.DisplayName, result.Matched,
	)
	if err != nil {
		return eris.Wrap(err, "geocode: store cache")
	}
	return nil
}
