package domain

import (
	"fmt"
	"math"
)

// Category is the AQI band a reading falls into.
type Category string

const (
	CategoryGood      Category = "good"
	CategoryModerate  Category = "moderate"
	CategoryUnhealthy Category = "unhealthy"
	CategoryHazardous Category = "hazardous"
)

// AllCategories returns the four bands in ascending order of severity.
func AllCategories() []Category {
	return []Category{CategoryGood, CategoryModerate, CategoryUnhealthy, CategoryHazardous}
}

// Band upper bounds (inclusive).
const (
	goodMax      = 50
	moderateMax  = 100
	unhealthyMax = 200

	// cropAlertThreshold is the AQI above which crop protection advice is shown.
	cropAlertThreshold = 150
)

// Classify maps an AQI value to its category:
//   - 0–50 good
//   - 51–100 moderate
//   - 101–200 unhealthy
//   - 201+ hazardous
//
// Negative input is treated as good; AQI has no meaning below zero.
func Classify(aqi int) Category {
	switch {
	case aqi <= goodMax:
		return CategoryGood
	case aqi <= moderateMax:
		return CategoryModerate
	case aqi <= unhealthyMax:
		return CategoryUnhealthy
	default:
		return CategoryHazardous
	}
}

// Valid reports whether c is one of the four defined bands.
func (c Category) Valid() bool {
	switch c {
	case CategoryGood, CategoryModerate, CategoryUnhealthy, CategoryHazardous:
		return true
	default:
		return false
	}
}

// Colour tokens shared by every view that renders a category.
const (
	ColorGood      = "#10B981"
	ColorModerate  = "#F59E0B"
	ColorUnhealthy = "#F97316"
	ColorHazardous = "#EF4444"
	ColorNeutral   = "#6B7280"
)

// ColorFor returns the marker colour for a category, or ColorNeutral for
// anything outside the four bands.
func ColorFor(c Category) string {
	switch c {
	case CategoryGood:
		return ColorGood
	case CategoryModerate:
		return ColorModerate
	case CategoryUnhealthy:
		return ColorUnhealthy
	case CategoryHazardous:
		return ColorHazardous
	default:
		return ColorNeutral
	}
}

// BadgeStyle returns the style token for the category badge in the detail panel.
func BadgeStyle(c Category) string {
	switch c {
	case CategoryGood:
		return "bg-green-100 text-green-800"
	case CategoryModerate:
		return "bg-yellow-100 text-yellow-800"
	case CategoryUnhealthy:
		return "bg-orange-100 text-orange-800"
	case CategoryHazardous:
		return "bg-red-100 text-red-800"
	default:
		return "bg-gray-100 text-gray-800"
	}
}

// HealthAdvice returns the advice sentence shown for a category.
func HealthAdvice(c Category) string {
	switch c {
	case CategoryGood:
		return "Air quality is satisfactory. Enjoy outdoor activities!"
	case CategoryModerate:
		return "Air quality is acceptable. Sensitive individuals should limit prolonged outdoor exertion."
	case CategoryUnhealthy:
		return "Everyone may experience health effects. Limit outdoor activities."
	case CategoryHazardous:
		return "Health alert! Avoid all outdoor activities. Keep windows closed."
	default:
		return "Monitor air quality regularly."
	}
}

// CropAlert reports whether pollution is high enough to warrant crop
// protection measures.
func CropAlert(aqi int) bool {
	return aqi > cropAlertThreshold
}

// SeasonalAdvice is shown with every station regardless of its reading.
const SeasonalAdvice = "Monitor for crop burning activities in nearby areas."

// CropAlertAdvice accompanies a crop protection alert.
const CropAlertAdvice = "High pollution may affect crop health. Consider protective measures."

// Coordinate is a WGS-84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate checks that both components are finite and within range.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Lng)
	}
	return nil
}

// String formats the coordinate as "lat, lng" with six decimal places, the
// form written into a report's location field.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lng)
}

// Station is a monitoring site with its most recent pollutant readings.
// Stations are values; the catalog hands out copies and nothing mutates them.
type Station struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
	AQI        int        `json:"aqi"`
	PM25       float64    `json:"pm25"`
	PM10       float64    `json:"pm10"`
	NO2        float64    `json:"no2"`
}

// Category is derived from AQI on every call and never stored.
func (s Station) Category() Category {
	return Classify(s.AQI)
}

// Color is the marker colour for the station's current category.
func (s Station) Color() string {
	return ColorFor(s.Category())
}

// Validate checks the station's invariants.
func (s Station) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("station %d: name is required", s.ID)
	}
	if err := s.Coordinate.Validate(); err != nil {
		return fmt.Errorf("station %d: %w", s.ID, err)
	}
	if s.AQI < 0 {
		return fmt.Errorf("station %d: aqi %d is negative", s.ID, s.AQI)
	}
	for name, v := range map[string]float64{"pm25": s.PM25, "pm10": s.PM10, "no2": s.NO2} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("station %d: %s %v is not a non-negative concentration", s.ID, name, v)
		}
	}
	return nil
}
