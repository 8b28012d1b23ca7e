package domain

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/golang/geo/s2"
)

//go:embed fixtures/stations.json
var stationFixture []byte

// DefaultCenter and DefaultZoom describe the initial map view over India.
var DefaultCenter = Coordinate{Lat: 20.5937, Lng: 78.9629}

const (
	DefaultZoom = 5

	// earthRadiusKm is the mean Earth radius used for great-circle distances.
	earthRadiusKm = 6371.0088
)

// ErrStationNotFound is returned when a lookup names an id the catalog lacks.
var ErrStationNotFound = errors.New("station not found")

// stationRecord is the serialized fixture form. It carries an explicit
// category so that data authored by hand can be checked against Classify.
type stationRecord struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	AQI      int      `json:"aqi"`
	PM25     float64  `json:"pm25"`
	PM10     float64  `json:"pm10"`
	NO2      float64  `json:"no2"`
	Category Category `json:"category,omitempty"`
}

// Catalog is the immutable set of monitoring stations. It is safe for
// concurrent readers.
type Catalog struct {
	stations []Station
	byID     map[int]int
}

// NewCatalog validates the stations and builds an id index. Ids must be unique.
func NewCatalog(stations []Station) (*Catalog, error) {
	c := &Catalog{
		stations: make([]Station, 0, len(stations)),
		byID:     make(map[int]int, len(stations)),
	}
	for _, s := range stations {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate station id %d", s.ID)
		}
		c.byID[s.ID] = len(c.stations)
		c.stations = append(c.stations, s)
	}
	return c, nil
}

// ParseCatalog decodes a JSON station list. A record whose category does not
// equal Classify(aqi) is rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	var records []stationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	stations := make([]Station, 0, len(records))
	for _, r := range records {
		if r.Category != "" && r.Category != Classify(r.AQI) {
			return nil, fmt.Errorf("station %d: category %q does not match aqi %d (%s)",
				r.ID, r.Category, r.AQI, Classify(r.AQI))
		}
		stations = append(stations, Station{
			ID:         r.ID,
			Name:       r.Name,
			Coordinate: Coordinate{Lat: r.Lat, Lng: r.Lng},
			AQI:        r.AQI,
			PM25:       r.PM25,
			PM10:       r.PM10,
			NO2:        r.NO2,
		})
	}
	return NewCatalog(stations)
}

// DefaultCatalog returns the built-in station fixture.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(stationFixture)
}

// Stations returns a copy of all stations in fixture order.
func (c *Catalog) Stations() []Station {
	out := make([]Station, len(c.stations))
	copy(out, c.stations)
	return out
}

// Len returns the number of stations.
func (c *Catalog) Len() int {
	return len(c.stations)
}

// Get returns the station with the given id.
func (c *Catalog) Get(id int) (Station, error) {
	i, ok := c.byID[id]
	if !ok {
		return Station{}, fmt.Errorf("%w: id %d", ErrStationNotFound, id)
	}
	return c.stations[i], nil
}

// ByCategory returns the stations in a category, ordered by descending AQI.
func (c *Catalog) ByCategory(cat Category) []Station {
	var out []Station
	for _, s := range c.stations {
		if s.Category() == cat {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AQI > out[j].AQI })
	return out
}

// Nearest returns the station closest to p along the great circle, together
// with the distance in kilometres. ok is false for an empty catalog.
func (c *Catalog) Nearest(p Coordinate) (s Station, km float64, ok bool) {
	best := -1.0
	for _, st := range c.stations {
		d := DistanceKm(p, st.Coordinate)
		if best < 0 || d < best {
			best = d
			s = st
		}
	}
	if best < 0 {
		return Station{}, 0, false
	}
	return s, best, true
}

// DistanceKm is the great-circle distance between two coordinates.
func DistanceKm(a, b Coordinate) float64 {
	angle := s2.LatLngFromDegrees(a.Lat, a.Lng).Distance(s2.LatLngFromDegrees(b.Lat, b.Lng))
	return angle.Radians() * earthRadiusKm
}
