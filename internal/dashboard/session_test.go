package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/couchcryptid/grainair/internal/i18n"
	"github.com/couchcryptid/grainair/internal/observability"
	"github.com/couchcryptid/grainair/internal/report"
	"github.com/couchcryptid/grainair/internal/selection"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recenterCall struct {
	coord domain.Coordinate
	zoom  int
}

type fixture struct {
	session   *Session
	metrics   *observability.Metrics
	recenters *[]recenterCall
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T, customize func(o *Options)) fixture {
	t.Helper()
	catalog, err := domain.DefaultCatalog()
	require.NoError(t, err)

	var recenters []recenterCall
	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewFakeClock()
	opts := Options{
		Catalog: catalog,
		Recenter: func(coord domain.Coordinate, zoom int) {
			recenters = append(recenters, recenterCall{coord: coord, zoom: zoom})
		},
		Panel: PanelOptions{Generator: domain.NewSeededForecastGenerator(7)},
		Report: report.Options{
			Locator:  report.UnavailableLocator{},
			Backend:  report.NewSimulatedBackend(clock, time.Millisecond, discardLogger()),
			Notifier: report.NotifierFunc(func(report.Notification) {}),
			Clock:    clock,
		},
		Logger:  discardLogger(),
		Metrics: metrics,
	}
	if customize != nil {
		customize(&opts)
	}
	s, err := NewSession(opts)
	require.NoError(t, err)
	return fixture{session: s, metrics: metrics, recenters: &recenters}
}

func TestNewSession_RequiresCatalog(t *testing.T) {
	_, err := NewSession(Options{Logger: discardLogger(), Metrics: observability.NewMetricsForTesting()})
	require.Error(t, err)
}

func TestNewSession_UnsupportedLanguage(t *testing.T) {
	catalog, err := domain.DefaultCatalog()
	require.NoError(t, err)

	_, err = NewSession(Options{
		Catalog:  catalog,
		Language: "fr",
		Logger:   discardLogger(),
		Metrics:  observability.NewMetricsForTesting(),
	})
	assert.ErrorIs(t, err, i18n.ErrUnsupportedLanguage)
}

func TestNewSession_InvalidStride(t *testing.T) {
	catalog, err := domain.DefaultCatalog()
	require.NoError(t, err)

	_, err = NewSession(Options{
		Catalog: catalog,
		Panel:   PanelOptions{StrideHours: 5},
		Logger:  discardLogger(),
		Metrics: observability.NewMetricsForTesting(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStride)
}

func TestSession_StartsWithNothingSelected(t *testing.T) {
	f := newFixture(t, nil)

	_, ok := f.session.Selected()
	assert.False(t, ok)

	_, ok, err := f.session.Detail()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, i18n.English, f.session.Language())
}

func TestSession_SelectStation(t *testing.T) {
	f := newFixture(t, nil)

	d, err := f.session.SelectStation(1)
	require.NoError(t, err)

	assert.Equal(t, "Delhi", d.Name)
	assert.Equal(t, 245, d.AQI)
	assert.Equal(t, domain.CategoryHazardous, d.Category)
	assert.Equal(t, "Hazardous", d.CategoryText)
	assert.Equal(t, domain.ColorHazardous, d.Color)
	assert.Equal(t, "bg-red-100 text-red-800", d.BadgeStyle)
	assert.True(t, d.CropAlert)
	assert.Equal(t, domain.CropAlertAdvice, d.CropAdvice)
	assert.Equal(t, domain.SeasonalAdvice, d.SeasonalAdvice)
	assert.Equal(t, "Next 72 Hours", d.ChartTitle)
	assert.Equal(t, 300, d.ChartMaxAQI)
	require.Len(t, d.Chart, 12)
	assert.Equal(t, "0h", d.Chart[0].Label)
	assert.Equal(t, "66h", d.Chart[11].Label)
	require.Len(t, d.Readings, 3)
	assert.Equal(t, Reading{Label: "PM2.5", Value: 89, Unit: "µg/m³"}, d.Readings[0])
	assert.Equal(t, Reading{Label: "NO₂", Value: 45, Unit: "ppb"}, d.Readings[2])

	require.Len(t, *f.recenters, 1)
	assert.Equal(t, recenterCall{coord: domain.Coordinate{Lat: 28.6139, Lng: 77.2090}, zoom: selection.RecenterZoom}, (*f.recenters)[0])
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.StationSelections), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.ForecastsGenerated), 0)
}

func TestSession_SelectUnknownStation(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.session.SelectStation(99)
	assert.ErrorIs(t, err, domain.ErrStationNotFound)
	assert.Empty(t, *f.recenters)

	_, ok := f.session.Selected()
	assert.False(t, ok)
}

func TestSession_ReselectKeepsForecast(t *testing.T) {
	f := newFixture(t, nil)

	first, err := f.session.SelectStation(3)
	require.NoError(t, err)
	second, err := f.session.SelectStation(3)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Chart, second.Chart); diff != "" {
		t.Errorf("chart changed on reselect (-first +second):\n%s", diff)
	}
	assert.Len(t, *f.recenters, 2, "reselecting still recenters")
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.ForecastsGenerated), 0)
}

func TestSession_NewAQIRegeneratesForecast(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.session.SelectStation(1)
	require.NoError(t, err)
	_, err = f.session.SelectStation(2)
	require.NoError(t, err)

	assert.InDelta(t, 2, testutil.ToFloat64(f.metrics.ForecastsGenerated), 0)
	st, ok := f.session.Selected()
	require.True(t, ok)
	assert.Equal(t, "Mumbai", st.Name)
}

func TestSession_SelectThenClear(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.session.SelectStation(1)
	require.NoError(t, err)
	_, err = f.session.SelectStation(2)
	require.NoError(t, err)
	f.session.ClearSelection()

	_, ok := f.session.Selected()
	assert.False(t, ok)
	assert.Len(t, *f.recenters, 2, "clear does not recenter")
	for _, m := range f.session.Markers() {
		assert.False(t, m.Selected)
	}
}

func TestSession_LanguageSwitchRelabelsWithoutRegenerating(t *testing.T) {
	f := newFixture(t, nil)

	before, err := f.session.SelectStation(9)
	require.NoError(t, err)

	require.NoError(t, f.session.SetLanguage("hi"))
	after, ok, err := f.session.Detail()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "खतरनाक", after.CategoryText)
	assert.Equal(t, "अगले 72 घंटे", after.ChartTitle)
	assert.Equal(t, before.Chart, after.Chart)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.ForecastsGenerated), 0)
}

func TestSession_SetLanguageUnsupported(t *testing.T) {
	f := newFixture(t, nil)

	err := f.session.SetLanguage("ta")
	assert.ErrorIs(t, err, i18n.ErrUnsupportedLanguage)
	assert.Equal(t, i18n.English, f.session.Language())
	assert.Equal(t, "Air Quality", f.session.T("airQuality"))
}

func TestSession_ReportUsesSessionLanguage(t *testing.T) {
	f := newFixture(t, nil)
	wf := f.session.Report()

	require.NoError(t, wf.Open())
	require.NoError(t, f.session.SetLanguage("hi"))
	assert.Equal(t, "धुआं/जलने की रिपोर्ट करें", wf.Form().Title)
	require.NoError(t, wf.Cancel())
}

func TestSession_ReportCaptureUsesCatalog(t *testing.T) {
	f := newFixture(t, func(o *Options) {
		o.Report.Locator = report.FixedLocator{Position: domain.Coordinate{Lat: 26.45, Lng: 80.33}}
	})
	wf := f.session.Report()

	require.NoError(t, wf.Open())
	require.NoError(t, wf.CaptureLocation(context.Background()))
	assert.Equal(t, 9, wf.Draft().NearestStation, "closest to Kanpur")
}

func TestSessions_AreIndependent(t *testing.T) {
	a := newFixture(t, nil)
	b := newFixture(t, nil)

	require.NoError(t, a.session.SetLanguage("hi"))
	_, err := a.session.SelectStation(4)
	require.NoError(t, err)

	assert.Equal(t, i18n.English, b.session.Language())
	_, ok := b.session.Selected()
	assert.False(t, ok)
}
