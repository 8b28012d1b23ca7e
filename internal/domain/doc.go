// Package domain models air-quality monitoring stations, their AQI bands,
// synthetic forecasts, and citizen incident reports.
//
// # AQI Bands
//
// Stations carry a single integer AQI. Its category is always derived with
// [Classify] and never stored on the station:
//
//	  0–50   good       #10B981
//	 51–100  moderate   #F59E0B
//	101–200  unhealthy  #F97316
//	201+     hazardous  #EF4444
//
// Any value outside the four bands renders with the neutral #6B7280. The same
// fallback discipline applies to [BadgeStyle] and [HealthAdvice].
//
// Crop protection advice is attached when AQI exceeds 150 (see [CropAlert]).
//
// # Station Fixture
//
// The catalog is a static fixture of ten Indian cities embedded from
// fixtures/stations.json. The fixture keeps an explicit category per record so
// hand edits are caught: [ParseCatalog] rejects any record whose category does
// not equal Classify(aqi).
//
// # Forecasts
//
// Forecasts are synthetic, not measured. For hour i:
//
//	max(10, aqi + 20·sin(i/12) + (u − 0.5)·15),  u ~ U[0, 1)
//
// The 10 floor models the physical lower bound of AQI. Noise comes from an
// injected [NoiseSource] so tests can fix it. Charts show every 6th hour of
// the 72-hour series (12 points); [Downsample] refuses strides that do not
// divide the series length.
//
// # Incident Reports
//
// A [Draft] holds free-text location, description and an [IncidentType]
// (smoke by default). Captured device positions are written as
// "lat, lng" with six decimal places.
package domain
