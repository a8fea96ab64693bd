// Package cache persists scraped school records to a JSON file between runs.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/thearvindas/swim-facilities/internal/model"
)

// Store defines the persistence interface for school records.
type Store interface {
	// Load returns the cached records, or an empty slice if no usable
	// cache exists. It never fails the caller.
	Load() []model.SchoolRecord

	// Save overwrites the cache with the given records.
	Save(records []model.SchoolRecord) error
}

// FileStore implements Store on a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the cache file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the cache file. A missing, unreadable, or malformed file is a
// cache miss, not an error.
func (s *FileStore) Load() []model.SchoolRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.L().Warn("cache: unreadable file, treating as miss",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return nil
	}

	var records []model.SchoolRecord
	if err := json.Unmarshal(data, &records); err != nil {
		zap.L().Warn("cache: malformed file, treating as miss",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return nil
	}

	return records
}

// Save writes records via a temp file and rename. Single-process atomicity is
// enough here: there is exactly one writer per run.
func (s *FileStore) Save(records []model.SchoolRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return eris.Wrap(err, "cache: create data dir")
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return eris.Wrap(err, "cache: marshal records")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".cbe_schools-*.json")
	if err != nil {
		return eris.Wrap(err, "cache: create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return eris.Wrap(err, "cache: write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return eris.Wrap(err, "cache: close temp file")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return eris.Wrap(err, "cache: rename into place")
	}

	zap.L().Info("cache: saved records",
		zap.String("path", s.path),
		zap.Int("count", len(records)),
	)
	return nil
}
