package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchoolHasCoordinates(t *testing.T) {
	assert.True(t, SchoolRecord{Latitude: 51.05, Longitude: -114.07}.HasCoordinates())
	assert.False(t, SchoolRecord{Name: "Unplaced School"}.HasCoordinates())
}

func TestFacilityHasCoordinates(t *testing.T) {
	assert.True(t, FacilityRecord{Latitude: 50.9, Longitude: -114.06}.HasCoordinates())
	assert.False(t, FacilityRecord{Name: "Unplaced Pool"}.HasCoordinates())
}

func TestSchoolRecordJSONShape(t *testing.T) {
	// The cache file format is part of the external contract.
	data, err := json.Marshal(SchoolRecord{
		Name:      "Sample School",
		Address:   "123 Main St",
		Latitude:  51.05,
		Longitude: -114.07,
		Type:      SchoolTypePublic,
	})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, m, "name")
	assert.Contains(t, m, "address")
	assert.Contains(t, m, "latitude")
	assert.Contains(t, m, "longitude")
	assert.Equal(t, "public", m["type"])
	assert.NotContains(t, m, "phone", "empty optional fields stay out of the cache file")
}
