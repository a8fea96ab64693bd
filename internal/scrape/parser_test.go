package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `
<html><body>
<h1>Schools by Area</h1>
<h2>Area I</h2>
<h3>Contact Information</h3>
<h3>Banded Peak School</h3>
<div>Phone</div>
<div>403-949-2292</div>
<div>Address</div>
<div>600 Jensen Dr, Bragg Creek, AB</div>
<h3>Alberta High School of Fine Arts</h3>
<div>Phone</div>
<div>403-938-6116</div>
<h2>Central Services</h2>
<h3>Education Director Schools</h3>
<h3>Chinook Park School</h3>
<h2>Footer</h2>
<h3>Ignored School</h3>
</body></html>`

func TestParse(t *testing.T) {
	listings, err := Parse(samplePage)
	require.NoError(t, err)
	require.Len(t, listings, 3)

	assert.Equal(t, "Banded Peak School", listings[0].Name)
	assert.Equal(t, "Area I", listings[0].Area)
	assert.Equal(t, "403-949-2292", listings[0].Phone)
	assert.Equal(t, "600 Jensen Dr, Bragg Creek, AB", listings[0].Address)

	assert.Equal(t, "Alberta High School of Fine Arts", listings[1].Name)
	assert.Equal(t, "Area I", listings[1].Area)
	assert.Empty(t, listings[1].Address)

	assert.Equal(t, "Chinook Park School", listings[2].Name)
	assert.Equal(t, "Central Services", listings[2].Area)
}

func TestParseSkipsSectionHeadings(t *testing.T) {
	listings, err := Parse(samplePage)
	require.NoError(t, err)
	for _, l := range listings {
		assert.NotContains(t, l.Name, "Contact Information")
		assert.NotContains(t, l.Name, "Education Director")
	}
}

func TestParseSkipsEmptyNames(t *testing.T) {
	page := `<html><body><h2>Area II</h2><h3>  </h3><h3>Real School</h3></body></html>`
	listings, err := Parse(page)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Real School", listings[0].Name)
}

func TestParseNoAreas(t *testing.T) {
	// Schools outside an area header are not attributable and are dropped.
	page := `<html><body><h3>Orphan School</h3></body></html>`
	listings, err := Parse(page)
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestParseEmptyDocument(t *testing.T) {
	listings, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestParseNestedMarkup(t *testing.T) {
	page := `<html><body>
<h2><span>Area III</span></h2>
<h3><a href="/school">Linked   School</a></h3>
<div><div>Phone</div><div>403-000-0000</div></div>
</body></html>`
	listings, err := Parse(page)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Linked School", listings[0].Name)
	assert.Equal(t, "403-000-0000", listings[0].Phone)
}

func TestGeocodeQuery(t *testing.T) {
	withAddr := Listing{Name: "A School", Address: "1 Main St, Calgary, AB"}
	assert.Equal(t, "1 Main St, Calgary, AB", withAddr.GeocodeQuery())

	nameOnly := Listing{Name: "A School"}
	assert.Equal(t, "A School, Calgary, AB, Canada", nameOnly.GeocodeQuery())
}
