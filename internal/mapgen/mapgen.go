// Package mapgen renders schools and aquatic facilities into a standalone
// Leaflet map document with independently toggleable layers.
package mapgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/thearvindas/swim-facilities/internal/model"
)

// Options positions the rendered map.
type Options struct {
	CenterLat float64
	CenterLon float64
	Zoom      int
}

// DefaultOptions centers the map on Calgary.
func DefaultOptions() Options {
	return Options{CenterLat: 51.0486, CenterLon: -114.0708, Zoom: 11}
}

// Build renders the map document. An empty school set still yields a valid
// document carrying only the facility layer.
func Build(schools []model.SchoolRecord, facilities []model.FacilityRecord, opts Options) ([]byte, error) {
	schoolsJSON, err := schoolCollection(schools)
	if err != nil {
		return nil, err
	}
	facilitiesJSON, err := facilityCollection(facilities)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = mapTemplate.Execute(&buf, mapData{
		CenterLat:      opts.CenterLat,
		CenterLon:      opts.CenterLon,
		Zoom:           opts.Zoom,
		SchoolsJSON:    template.JS(schoolsJSON),
		FacilitiesJSON: template.JS(facilitiesJSON),
	})
	if err != nil {
		return nil, eris.Wrap(err, "mapgen: execute template")
	}
	return buf.Bytes(), nil
}

// schoolCollection encodes school markers as a GeoJSON FeatureCollection.
func schoolCollection(schools []model.SchoolRecord) ([]byte, error) {
	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	for _, s := range schools {
		if !s.HasCoordinates() {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{s.Longitude, s.Latitude}),
			Properties: map[string]interface{}{
				"name":  s.Name,
				"popup": schoolPopup(s),
				"color": "blue",
			},
		})
	}
	data, err := json.Marshal(fc)
	return data, eris.Wrap(err, "mapgen: marshal schools")
}

// facilityCollection encodes facility markers as a GeoJSON FeatureCollection.
func facilityCollection(facilities []model.FacilityRecord) ([]byte, error) {
	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	for _, f := range facilities {
		if !f.HasCoordinates() {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{f.Longitude, f.Latitude}),
			Properties: map[string]interface{}{
				"name":  f.Name,
				"popup": facilityPopup(f),
				"color": facilityColor(f.Category),
			},
		})
	}
	data, err := json.Marshal(fc)
	return data, eris.Wrap(err, "mapgen: marshal facilities")
}

// schoolPopup builds deterministic popup HTML for a school marker.
func schoolPopup(s model.SchoolRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b><br>Type: %s", html.EscapeString(s.Name), html.EscapeString(string(s.Type)))
	if s.Board != "" {
		fmt.Fprintf(&sb, "<br>Board: %s", html.EscapeString(s.Board))
	}
	if s.Area != "" {
		fmt.Fprintf(&sb, "<br>Area: %s", html.EscapeString(s.Area))
	}
	fmt.Fprintf(&sb, "<br>Address: %s", html.EscapeString(s.Address))
	return sb.String()
}

// facilityPopup builds deterministic popup HTML for a facility marker.
func facilityPopup(f model.FacilityRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b><br>Category: %s<br>Address: %s",
		html.EscapeString(f.Name),
		html.EscapeString(string(f.Category)),
		html.EscapeString(f.Address),
	)
	if len(f.Features) > 0 {
		fmt.Fprintf(&sb, "<br>Features: %s", html.EscapeString(strings.Join(f.Features, ", ")))
	}
	return sb.String()
}

// facilityColor maps a facility category to its marker color.
func facilityColor(c model.FacilityCategory) string {
	switch c {
	case model.FacilityMunicipalPool, model.FacilityCommunityCentre:
		return "green"
	case model.FacilityYMCA:
		return "red"
	case model.FacilityUniversityPool:
		return "purple"
	default:
		return "orange"
	}
}

type mapData struct {
	CenterLat      float64
	CenterLon      float64
	Zoom           int
	SchoolsJSON    template.JS
	FacilitiesJSON template.JS
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Calgary Schools and Aquatic Facilities</title>
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
	maxZoom: 19,
	attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

var schoolData = {{.SchoolsJSON}};
var facilityData = {{.FacilitiesJSON}};

function toLayer(data) {
	return L.geoJSON(data, {
		pointToLayer: function (feature, latlng) {
			return L.circleMarker(latlng, {
				radius: 7,
				color: feature.properties.color,
				fillColor: feature.properties.color,
				fillOpacity: 0.8
			});
		},
		onEachFeature: function (feature, layer) {
			layer.bindPopup(feature.properties.popup, { maxWidth: 300 });
		}
	});
}

var schoolLayer = toLayer(schoolData).addTo(map);
var facilityLayer = toLayer(facilityData).addTo(map);
L.control.layers(null, {
	"K-12 Schools": schoolLayer,
	"Aquatic Facilities": facilityLayer
}).addTo(map);
</script>
</body>
</html>
`))
