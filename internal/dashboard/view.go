// Package dashboard assembles the core components into a user session and
// renders the view models the map, detail panel and report dialog consume.
package dashboard

import (
	"fmt"

	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/couchcryptid/grainair/internal/i18n"
)

// Marker is one station as drawn on the map.
type Marker struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Lat      float64         `json:"lat"`
	Lng      float64         `json:"lng"`
	AQI      int             `json:"aqi"`
	Category domain.Category `json:"category"`
	Color    string          `json:"color"`
	Selected bool            `json:"selected,omitempty"`
}

// LegendEntry describes one AQI band in the map legend.
type LegendEntry struct {
	Category domain.Category `json:"category"`
	Label    string          `json:"label"`
	Range    string          `json:"range"`
	Color    string          `json:"color"`
}

// MapView is the initial map state: where to look and how to read the colors.
type MapView struct {
	Center domain.Coordinate `json:"center"`
	Zoom   int               `json:"zoom"`
	Legend []LegendEntry     `json:"legend"`
}

// Markers converts stations to map markers. selectedID of 0 marks none.
func Markers(stations []domain.Station, selectedID int) []Marker {
	out := make([]Marker, 0, len(stations))
	for _, s := range stations {
		out = append(out, Marker{
			ID:       s.ID,
			Name:     s.Name,
			Lat:      s.Coordinate.Lat,
			Lng:      s.Coordinate.Lng,
			AQI:      s.AQI,
			Category: s.Category(),
			Color:    s.Color(),
			Selected: selectedID != 0 && s.ID == selectedID,
		})
	}
	return out
}

var bandRanges = map[domain.Category]string{
	domain.CategoryGood:      "0-50",
	domain.CategoryModerate:  "51-100",
	domain.CategoryUnhealthy: "101-200",
	domain.CategoryHazardous: "201+",
}

// DefaultMapView returns the opening map view with a legend labelled through t.
func DefaultMapView(t i18n.Translator) MapView {
	legend := make([]LegendEntry, 0, len(domain.AllCategories()))
	for _, c := range domain.AllCategories() {
		legend = append(legend, LegendEntry{
			Category: c,
			Label:    fmt.Sprintf("%s (%s)", t(string(c)), bandRanges[c]),
			Range:    bandRanges[c],
			Color:    domain.ColorFor(c),
		})
	}
	return MapView{
		Center: domain.DefaultCenter,
		Zoom:   domain.DefaultZoom,
		Legend: legend,
	}
}
