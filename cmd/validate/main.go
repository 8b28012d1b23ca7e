// Command validate checks a station fixture before it ships: that it parses,
// that each station's declared category agrees with its AQI, that sites lie
// inside the coverage region and are not duplicated, and that every station
// yields a well-formed forecast chart.
//
// Usage:
//
//	go run ./cmd/validate -stations internal/domain/fixtures/stations.json
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/golang/geo/s2"
)

// coverage is the region stations are expected to fall in: mainland India
// with a small margin.
var coverage = s2.RectFromCenterSize(
	s2.LatLngFromDegrees(22.0, 82.75),
	s2.LatLngFromDegrees(31.0, 29.5),
)

const (
	maxPlausibleAQI = 500
	// forecastSwing is the most a forecast point can move from the current
	// AQI: the diurnal amplitude plus half the noise spread.
	forecastSwing = 20 + 7.5
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("stations", "", "station fixture JSON (default: the embedded fixture)")
	minSpacing := flag.Float64("min-spacing-km", 10, "minimum distance between two stations")
	horizon := flag.Int("horizon", domain.DefaultHorizonHours, "forecast length in hours")
	stride := flag.Int("stride", domain.DefaultChartStride, "chart stride in hours")
	seed := flag.Uint64("seed", 1, "noise seed for the forecast check")
	flag.Parse()

	if code := run(*path, *minSpacing, *horizon, *stride, *seed); code != 0 {
		os.Exit(code)
	}
}

func run(path string, minSpacing float64, horizon, stride int, seed uint64) int {
	fmt.Println("=== Station Fixture Validation ===")
	fmt.Println()

	catalog, err := load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	stations := catalog.Stations()

	phases := []*phase{
		validateFields(stations),
		validateCoverage(stations),
		validateSpacing(stations, minSpacing),
		validateForecasts(stations, domain.NewSeededForecastGenerator(seed), horizon, stride),
	}

	allPassed := report(phases)
	fmt.Printf("Stations: %d\n", len(stations))
	for _, c := range domain.AllCategories() {
		fmt.Printf("  %-10s %d\n", c, len(catalog.ByCategory(c)))
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func load(path string) (*domain.Catalog, error) {
	if path == "" {
		return domain.DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return domain.ParseCatalog(data)
}

func report(phases []*phase) bool {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-36s %s\n", p.name, status)
	}
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}
	fmt.Println()
	return allPassed
}

func validateFields(stations []domain.Station) *phase {
	p := &phase{name: "Phase 1: Station Fields"}
	names := make(map[string]int)
	for _, s := range stations {
		if prev, ok := names[s.Name]; ok {
			p.errorf("station %d: name %q already used by station %d", s.ID, s.Name, prev)
		}
		names[s.Name] = s.ID
		if s.AQI > maxPlausibleAQI {
			p.errorf("station %d (%s): aqi %d exceeds %d", s.ID, s.Name, s.AQI, maxPlausibleAQI)
		}
		if s.PM25 > s.PM10 {
			p.errorf("station %d (%s): pm25 %.1f exceeds pm10 %.1f", s.ID, s.Name, s.PM25, s.PM10)
		}
	}
	return p
}

func validateCoverage(stations []domain.Station) *phase {
	p := &phase{name: "Phase 2: Coverage Region"}
	for _, s := range stations {
		if !coverage.ContainsLatLng(s2.LatLngFromDegrees(s.Coordinate.Lat, s.Coordinate.Lng)) {
			p.errorf("station %d (%s): %s is outside the coverage region", s.ID, s.Name, s.Coordinate)
		}
	}
	return p
}

func validateSpacing(stations []domain.Station, minKm float64) *phase {
	p := &phase{name: "Phase 3: Station Spacing"}
	for i := range stations {
		for j := i + 1; j < len(stations); j++ {
			a, b := stations[i], stations[j]
			if d := domain.DistanceKm(a.Coordinate, b.Coordinate); d < minKm {
				p.errorf("stations %d (%s) and %d (%s) are %.1f km apart", a.ID, a.Name, b.ID, b.Name, d)
			}
		}
	}
	return p
}

func validateForecasts(stations []domain.Station, gen *domain.ForecastGenerator, horizon, stride int) *phase {
	p := &phase{name: "Phase 4: Forecast Shape"}
	for _, s := range stations {
		series, err := gen.Generate(float64(s.AQI), horizon)
		if err != nil {
			p.errorf("station %d: %v", s.ID, err)
			continue
		}
		if len(series) != horizon {
			p.errorf("station %d: %d points, want %d", s.ID, len(series), horizon)
		}
		for _, pt := range series {
			if pt.AQI < domain.MinForecastAQI {
				p.errorf("station %d hour %d: %.2f below floor", s.ID, pt.Hour, pt.AQI)
			}
			if pt.AQI > domain.MinForecastAQI && math.Abs(pt.AQI-float64(s.AQI)) > forecastSwing {
				p.errorf("station %d hour %d: %.2f strays more than %.1f from %d", s.ID, pt.Hour, pt.AQI, forecastSwing, s.AQI)
			}
		}

		chart, err := domain.Chart(series, stride)
		if err != nil {
			p.errorf("station %d: %v", s.ID, err)
			continue
		}
		if want := horizon / stride; len(chart) != want {
			p.errorf("station %d: chart has %d points, want %d", s.ID, len(chart), want)
		}
		if len(chart) > 0 && chart[0].Label != "0h" {
			p.errorf("station %d: first chart label %q, want 0h", s.ID, chart[0].Label)
		}
	}
	return p
}
