package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/grainair/internal/dashboard"
	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/couchcryptid/grainair/internal/observability"
	"github.com/couchcryptid/grainair/internal/report"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(t *testing.T, locator report.Locator) (*console, *bytes.Buffer) {
	t.Helper()
	catalog, err := domain.DefaultCatalog()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var out bytes.Buffer
	c := newConsole(&out)
	session, err := dashboard.NewSession(dashboard.Options{
		Catalog:  catalog,
		Recenter: c.recenter,
		Panel:    dashboard.PanelOptions{Generator: domain.NewSeededForecastGenerator(5)},
		Report: report.Options{
			Locator:  locator,
			Backend:  report.NewSimulatedBackend(clockwork.NewRealClock(), time.Millisecond, logger),
			Notifier: c,
		},
		Logger:  logger,
		Metrics: observability.NewMetricsForTesting(),
	})
	require.NoError(t, err)
	c.session = session
	return c, &out
}

func runScript(t *testing.T, c *console, lines ...string) {
	t.Helper()
	require.NoError(t, c.run(context.Background(), strings.NewReader(strings.Join(lines, "\n"))))
}

func TestConsole_SelectAndLanguage(t *testing.T) {
	c, out := newTestConsole(t, report.UnavailableLocator{})

	runScript(t, c, "select 1", "lang hi", "clear", "quit")

	s := out.String()
	assert.Contains(t, s, "map: centre on 28.613900, 77.209000 at zoom 10")
	assert.Contains(t, s, "Delhi  Hazardous - AQI 245")
	assert.Contains(t, s, "Crop Protection Alert")
	assert.Contains(t, s, "Next 72 Hours")
	assert.Contains(t, s, "66h")
	assert.Contains(t, s, "भाषा: हिंदी")
	assert.Contains(t, s, "Delhi  खतरनाक - AQI 245")
	assert.Contains(t, s, "selection cleared")
}

func TestConsole_ReportFlow(t *testing.T) {
	c, out := newTestConsole(t, report.FixedLocator{Position: domain.Coordinate{Lat: 21.1458, Lng: 79.0882}})

	runScript(t, c,
		"report open",
		"report submit",
		"report capture",
		"report set type vehicle",
		"report set description   diesel generators   running all night",
		"report submit",
		"report show",
	)

	s := out.String()
	assert.Contains(t, s, "Report Smoke/Burning [editing]")
	assert.Contains(t, s, "missing: location, description")
	assert.Contains(t, s, "[warning] Incomplete Report")
	assert.Contains(t, s, "[info] Location captured!")
	assert.Contains(t, s, "Location: 21.145800, 79.088200")
	assert.Contains(t, s, "[info] Report Submitted Successfully!")
	assert.Contains(t, s, "report form closed")
	assert.Equal(t, report.PhaseIdle, c.session.Report().State().Phase)
}

func TestConsole_CaptureUnavailable(t *testing.T) {
	c, out := newTestConsole(t, report.UnavailableLocator{})

	runScript(t, c, "report open", "report capture")

	assert.Contains(t, out.String(), "[warning] Location Error: Unable to get your location. Please enter manually.")
	assert.NotContains(t, out.String(), "error:")
}

func TestConsole_Errors(t *testing.T) {
	c, out := newTestConsole(t, report.UnavailableLocator{})

	runScript(t, c, "select", "select 99", "lang fr", "report submit", "frobnicate")

	s := out.String()
	assert.Contains(t, s, "usage: select <id>")
	assert.Contains(t, s, "error: station not found")
	assert.Contains(t, s, "error: unsupported language")
	assert.Contains(t, s, "error: invalid report transition")
	assert.Contains(t, s, `unknown command "frobnicate"`)
}

func TestRestAfter(t *testing.T) {
	assert.Equal(t, "near the old mill", restAfter("report set location near the old mill", 3))
	assert.Equal(t, "a  b", restAfter("  report   set description   a  b ", 3))
	assert.Empty(t, restAfter("report set location", 3))
}
