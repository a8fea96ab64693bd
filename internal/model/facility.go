package model

// FacilityCategory classifies an aquatic facility by its operator.
type FacilityCategory string

const (
	FacilityMunicipalPool   FacilityCategory = "municipal_pool"
	FacilityUniversityPool  FacilityCategory = "university_pool"
	FacilityCommunityCentre FacilityCategory = "community_centre"
	FacilityYMCA            FacilityCategory = "ymca"
	FacilityPrivate         FacilityCategory = "private"
)

// FacilityRecord is a static aquatic-facility entry. The dataset ships with
// the binary and is never mutated at runtime.
type FacilityRecord struct {
	Name      string           `json:"name" yaml:"name"`
	Category  FacilityCategory `json:"category" yaml:"category"`
	Address   string           `json:"address" yaml:"address"`
	Latitude  float64          `json:"latitude" yaml:"latitude"`
	Longitude float64          `json:"longitude" yaml:"longitude"`
	Features  []string         `json:"features,omitempty" yaml:"features,omitempty"`
}

// HasCoordinates reports whether the facility carries a usable location.
func (f FacilityRecord) HasCoordinates() bool {
	return f.Latitude != 0 || f.Longitude != 0
}
