package facilities

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thearvindas/swim-facilities/internal/model"
)

func TestDefault(t *testing.T) {
	records, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	for _, f := range records {
		assert.NotEmpty(t, f.Name)
		assert.NotEmpty(t, f.Address)
		assert.True(t, f.HasCoordinates(), "embedded entry %q must carry coordinates", f.Name)
	}
}

func TestDefaultCategories(t *testing.T) {
	records, err := Default()
	require.NoError(t, err)

	seen := map[model.FacilityCategory]bool{}
	for _, f := range records {
		seen[f.Category] = true
	}
	assert.True(t, seen[model.FacilityMunicipalPool])
	assert.True(t, seen[model.FacilityUniversityPool])
	assert.True(t, seen[model.FacilityYMCA])
}

func TestLoadEmptyPathUsesEmbedded(t *testing.T) {
	fromEmpty, err := Load("")
	require.NoError(t, err)

	embedded, err := Default()
	require.NoError(t, err)
	assert.Equal(t, embedded, fromEmpty)
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	override := `
facilities:
  - name: Test Pool
    category: municipal_pool
    address: 1 Test St, Calgary, AB
    latitude: 51.0
    longitude: -114.0
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Test Pool", records[0].Name)
}

func TestLoadMissingOverrideFallsBack(t *testing.T) {
	records, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, records)
}

func TestLoadMalformedOverrideFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - not yaml {"), 0o644))

	records, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, records)
}

func TestLoadDropsEntriesWithoutCoordinates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	override := `
facilities:
  - name: Located Pool
    category: municipal_pool
    address: 1 Test St
    latitude: 51.0
    longitude: -114.0
  - name: Lost Pool
    category: municipal_pool
    address: 2 Test St
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Located Pool", records[0].Name)
}
