package domain

import "context"

// GeocodingResult contains place details returned by a geocoding provider.
type GeocodingResult struct {
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves coordinates to a human-readable place.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (GeocodingResult, error)
}
