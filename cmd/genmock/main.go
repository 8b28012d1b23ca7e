// Command genmock writes a reproducible forecast fixture for every station in
// the catalog, for frontend development and API contract tests. The same
// seed always yields the same series.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/forecasts.json -seed 42
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/jonboulle/clockwork"
)

var defaultGeneratedAt = time.Date(2024, time.November, 1, 6, 0, 0, 0, time.UTC)

type stationForecast struct {
	ID       int                   `json:"id"`
	Name     string                `json:"name"`
	AQI      int                   `json:"aqi"`
	Category domain.Category       `json:"category"`
	Forecast domain.ForecastSeries `json:"forecast"`
	Chart    domain.ChartSeries    `json:"chart"`
}

type fixture struct {
	GeneratedAt  time.Time         `json:"generated_at"`
	Seed         uint64            `json:"seed"`
	HorizonHours int               `json:"horizon_hours"`
	StrideHours  int               `json:"stride_hours"`
	Stations     []stationForecast `json:"stations"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the forecast fixture")
	seed := flag.Uint64("seed", 42, "noise seed")
	horizon := flag.Int("horizon", domain.DefaultHorizonHours, "forecast length in hours")
	stride := flag.Int("stride", domain.DefaultChartStride, "chart stride in hours")
	at := flag.String("at", defaultGeneratedAt.Format(time.RFC3339), "generated_at timestamp (RFC3339)")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	generatedAt, err := time.Parse(time.RFC3339, *at)
	if err != nil {
		return fmt.Errorf("parse -at: %w", err)
	}

	// A fixed clock keeps generated_at stable across runs.
	clock := clockwork.NewFakeClockAt(generatedAt)

	catalog, err := domain.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	f, err := build(catalog, domain.NewSeededForecastGenerator(*seed), *horizon, *stride)
	if err != nil {
		return err
	}
	f.GeneratedAt = clock.Now().UTC()
	f.Seed = *seed

	if err := writeJSON(*out, f); err != nil {
		return fmt.Errorf("writing forecast fixture: %w", err)
	}
	log.Printf("wrote forecast fixture: %s (%d stations)", *out, len(f.Stations))

	printStats(f)
	return nil
}

func build(catalog *domain.Catalog, gen *domain.ForecastGenerator, horizon, stride int) (fixture, error) {
	f := fixture{HorizonHours: horizon, StrideHours: stride}
	for _, s := range catalog.Stations() {
		series, err := gen.Generate(float64(s.AQI), horizon)
		if err != nil {
			return fixture{}, fmt.Errorf("station %d: %w", s.ID, err)
		}
		chart, err := domain.Chart(series, stride)
		if err != nil {
			return fixture{}, fmt.Errorf("station %d: %w", s.ID, err)
		}
		f.Stations = append(f.Stations, stationForecast{
			ID:       s.ID,
			Name:     s.Name,
			AQI:      s.AQI,
			Category: s.Category(),
			Forecast: series,
			Chart:    chart,
		})
	}
	return f, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func printStats(f fixture) {
	byCategory := make(map[domain.Category]int)
	for _, s := range f.Stations {
		byCategory[s.Category]++
	}
	fmt.Println("\nStations by category:")
	for _, c := range domain.AllCategories() {
		fmt.Printf("  %-10s %d\n", c, byCategory[c])
	}

	fmt.Println("\nForecast range:")
	for _, s := range f.Stations {
		lo, hi := s.Forecast[0].AQI, s.Forecast[0].AQI
		for _, p := range s.Forecast {
			lo = min(lo, p.AQI)
			hi = max(hi, p.AQI)
		}
		fmt.Printf("  %-10s now %3d  min %6.1f  max %6.1f\n", s.Name, s.AQI, lo, hi)
	}
}
