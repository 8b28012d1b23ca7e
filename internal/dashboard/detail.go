package dashboard

import (
	"fmt"
	"log/slog"

	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/couchcryptid/grainair/internal/i18n"
	"github.com/couchcryptid/grainair/internal/observability"
)

// Reading is one pollutant measurement with its display label and unit.
type Reading struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Detail is the rendered detail panel for one station.
type Detail struct {
	StationID      int                `json:"station_id"`
	Name           string             `json:"name"`
	Coordinate     domain.Coordinate  `json:"coordinate"`
	AQILabel       string             `json:"aqi_label"`
	AQI            int                `json:"aqi"`
	Category       domain.Category    `json:"category"`
	CategoryText   string             `json:"category_text"`
	Color          string             `json:"color"`
	BadgeStyle     string             `json:"badge_style"`
	Readings       []Reading          `json:"readings"`
	AdviceTitle    string             `json:"advice_title"`
	HealthAdvice   string             `json:"health_advice"`
	CropAlert      bool               `json:"crop_alert"`
	CropAdvice     string             `json:"crop_advice,omitempty"`
	SeasonalAdvice string             `json:"seasonal_advice"`
	ChartTitle     string             `json:"chart_title"`
	ChartMaxAQI    int                `json:"chart_max_aqi"`
	Chart          domain.ChartSeries `json:"chart"`
}

// PanelOptions configures a DetailPanel. Zero horizon and stride use the
// domain defaults.
type PanelOptions struct {
	Generator    *domain.ForecastGenerator
	HorizonHours int
	StrideHours  int
	Logger       *slog.Logger
	Metrics      *observability.Metrics
}

// DetailPanel renders station details. It keeps the last forecast and only
// generates a new one when the station's AQI differs from the one it was
// built for, so re-rendering (for example after a language switch) does not
// reshuffle the chart.
type DetailPanel struct {
	opts PanelOptions

	forecastAQI int
	forecast    domain.ForecastSeries
}

// NewDetailPanel validates the horizon/stride pair and returns an empty panel.
func NewDetailPanel(opts PanelOptions) (*DetailPanel, error) {
	if opts.Generator == nil {
		opts.Generator = domain.NewForecastGenerator(nil)
	}
	if opts.HorizonHours == 0 {
		opts.HorizonHours = domain.DefaultHorizonHours
	}
	if opts.StrideHours == 0 {
		opts.StrideHours = domain.DefaultChartStride
	}
	if opts.HorizonHours < 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidHorizon, opts.HorizonHours)
	}
	if opts.StrideHours < 0 || opts.HorizonHours%opts.StrideHours != 0 {
		return nil, fmt.Errorf("%w: %d does not divide %d", domain.ErrInvalidStride, opts.StrideHours, opts.HorizonHours)
	}
	return &DetailPanel{opts: opts}, nil
}

// Render builds the panel for s with labels resolved through t.
func (p *DetailPanel) Render(s domain.Station, t i18n.Translator) (Detail, error) {
	series, err := p.forecastFor(s)
	if err != nil {
		return Detail{}, err
	}
	chart, err := domain.Chart(series, p.opts.StrideHours)
	if err != nil {
		return Detail{}, fmt.Errorf("chart station %d: %w", s.ID, err)
	}
	return newDetail(s, chart, t), nil
}

// Reset drops the cached forecast.
func (p *DetailPanel) Reset() {
	p.forecast = nil
	p.forecastAQI = 0
}

func (p *DetailPanel) forecastFor(s domain.Station) (domain.ForecastSeries, error) {
	if p.forecast != nil && p.forecastAQI == s.AQI {
		return p.forecast, nil
	}
	series, err := p.opts.Generator.Generate(float64(s.AQI), p.opts.HorizonHours)
	if err != nil {
		return nil, fmt.Errorf("forecast station %d: %w", s.ID, err)
	}
	p.forecast = series
	p.forecastAQI = s.AQI
	p.opts.Metrics.ForecastsGenerated.Inc()
	p.opts.Logger.Debug("forecast generated", "station_id", s.ID, "aqi", s.AQI, "points", len(series))
	return series, nil
}

// RenderDetail builds a detail panel for s without caching. It is what the
// stateless HTTP API uses.
func RenderDetail(s domain.Station, gen *domain.ForecastGenerator, horizon, stride int, t i18n.Translator) (Detail, error) {
	series, err := gen.Generate(float64(s.AQI), horizon)
	if err != nil {
		return Detail{}, fmt.Errorf("forecast station %d: %w", s.ID, err)
	}
	chart, err := domain.Chart(series, stride)
	if err != nil {
		return Detail{}, fmt.Errorf("chart station %d: %w", s.ID, err)
	}
	return newDetail(s, chart, t), nil
}

func newDetail(s domain.Station, chart domain.ChartSeries, t i18n.Translator) Detail {
	cat := s.Category()
	var cropAdvice string
	if domain.CropAlert(s.AQI) {
		cropAdvice = domain.CropAlertAdvice
	}
	return Detail{
		StationID:    s.ID,
		Name:         s.Name,
		Coordinate:   s.Coordinate,
		AQILabel:     t("currentAQI"),
		AQI:          s.AQI,
		Category:     cat,
		CategoryText: t(string(cat)),
		Color:        domain.ColorFor(cat),
		BadgeStyle:   domain.BadgeStyle(cat),
		Readings: []Reading{
			{Label: t("pm25"), Value: s.PM25, Unit: "µg/m³"},
			{Label: t("pm10"), Value: s.PM10, Unit: "µg/m³"},
			{Label: t("no2"), Value: s.NO2, Unit: "ppb"},
		},
		AdviceTitle:    t("healthAdvice"),
		HealthAdvice:   domain.HealthAdvice(cat),
		CropAlert:      cropAdvice != "",
		CropAdvice:     cropAdvice,
		SeasonalAdvice: domain.SeasonalAdvice,
		ChartTitle:     t("next72Hours"),
		ChartMaxAQI:    domain.ChartMaxAQI,
		Chart:          chart,
	}
}
