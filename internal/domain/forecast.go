package domain

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	// DefaultHorizonHours is the length of a generated forecast.
	DefaultHorizonHours = 72
	// DefaultChartStride is the hour spacing of the charted subsequence.
	DefaultChartStride = 6
	// ChartMaxAQI is the upper bound of the chart's y axis.
	ChartMaxAQI = 300

	// MinForecastAQI is the physical floor applied to every forecast value.
	MinForecastAQI = 10.0

	diurnalAmplitude = 20.0
	diurnalPeriod    = 12.0
	noiseSpread      = 15.0
)

var (
	// ErrInvalidStride is returned by Downsample when the stride is not a
	// positive divisor of the series length.
	ErrInvalidStride = errors.New("invalid stride")
	// ErrInvalidHorizon is returned by Generate for a non-positive horizon.
	ErrInvalidHorizon = errors.New("invalid horizon")
	// ErrInvalidAQI is returned by Generate for a NaN or infinite input.
	ErrInvalidAQI = errors.New("invalid aqi")
)

// NoiseSource yields uniformly distributed values in [0, 1).
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type NoiseSource interface {
	Float64() float64
}

// globalNoise draws from the math/rand/v2 top-level source, which is safe for
// concurrent use.
type globalNoise struct{}

func (globalNoise) Float64() float64 { return rand.Float64() }

// ForecastPoint is one hourly forecast value.
type ForecastPoint struct {
	Hour int     `json:"hour"`
	AQI  float64 `json:"aqi"`
}

// ForecastSeries is an hourly forecast ordered by Hour, starting at 0.
type ForecastSeries []ForecastPoint

// ChartPoint is a labelled forecast value ready for a chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Hour  int     `json:"hour"`
	AQI   float64 `json:"aqi"`
}

// ChartSeries is the downsampled view of a forecast.
type ChartSeries []ChartPoint

// ForecastGenerator produces synthetic forecasts around a station's current AQI.
// The noise source is injected so output can be made reproducible.
type ForecastGenerator struct {
	noise NoiseSource
}

// NewForecastGenerator returns a generator drawing noise from src. A nil src
// uses the process-wide random source.
func NewForecastGenerator(src NoiseSource) *ForecastGenerator {
	if src == nil {
		src = globalNoise{}
	}
	return &ForecastGenerator{noise: src}
}

// NewSeededForecastGenerator returns a generator whose output is fully
// determined by seed. It is not safe for concurrent use.
func NewSeededForecastGenerator(seed uint64) *ForecastGenerator {
	return NewForecastGenerator(rand.New(rand.NewPCG(seed, seed)))
}

// Generate returns horizonHours points where point i is
//
//	max(10, currentAQI + 20·sin(i/12) + noise),  noise ~ U[-7.5, 7.5)
func (g *ForecastGenerator) Generate(currentAQI float64, horizonHours int) (ForecastSeries, error) {
	if horizonHours <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHorizon, horizonHours)
	}
	if math.IsNaN(currentAQI) || math.IsInf(currentAQI, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAQI, currentAQI)
	}

	series := make(ForecastSeries, horizonHours)
	for i := range series {
		variation := math.Sin(float64(i)/diurnalPeriod)*diurnalAmplitude + (g.noise.Float64()-0.5)*noiseSpread
		series[i] = ForecastPoint{
			Hour: i,
			AQI:  math.Max(MinForecastAQI, currentAQI+variation),
		}
	}
	return series, nil
}

// Downsample keeps every stride-th point starting at the first. The stride
// must be positive and divide the series length exactly.
func Downsample(series ForecastSeries, stride int) (ForecastSeries, error) {
	if stride <= 0 || len(series)%stride != 0 {
		return nil, fmt.Errorf("%w: stride %d for series of length %d", ErrInvalidStride, stride, len(series))
	}
	out := make(ForecastSeries, 0, len(series)/stride)
	for i := 0; i < len(series); i += stride {
		out = append(out, series[i])
	}
	return out, nil
}

// Chart downsamples a series and labels each point "<hour>h".
func Chart(series ForecastSeries, stride int) (ChartSeries, error) {
	sampled, err := Downsample(series, stride)
	if err != nil {
		return nil, err
	}
	out := make(ChartSeries, len(sampled))
	for i, p := range sampled {
		out[i] = ChartPoint{Label: fmt.Sprintf("%dh", p.Hour), Hour: p.Hour, AQI: p.AQI}
	}
	return out, nil
}
