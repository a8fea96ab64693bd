package model

// SchoolType classifies a school by its governing board.
type SchoolType string

const (
	SchoolTypePublic   SchoolType = "public"
	SchoolTypeSeparate SchoolType = "separate"
	SchoolTypeCharter  SchoolType = "charter"
	SchoolTypePrivate  SchoolType = "private"
)

// SchoolRecord is a geocoded school entry. Records are immutable once built;
// anything without resolved coordinates is dropped before map generation.
type SchoolRecord struct {
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Type      SchoolType `json:"type"`
	Area      string     `json:"area,omitempty"`
	Board     string     `json:"board,omitempty"`
	Phone     string     `json:"phone,omitempty"`
}

// HasCoordinates reports whether the record carries a resolved location.
func (s SchoolRecord) HasCoordinates() bool {
	return s.Latitude != 0 || s.Longitude != 0
}
