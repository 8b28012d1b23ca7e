// Command console runs an interactive dashboard session on stdin/stdout. It
// exercises station selection, forecasts, language switching and incident
// reporting without a browser.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	kafkaadapter "github.com/couchcryptid/grainair/internal/adapter/kafka"
	"github.com/couchcryptid/grainair/internal/adapter/mapbox"
	"github.com/couchcryptid/grainair/internal/config"
	"github.com/couchcryptid/grainair/internal/dashboard"
	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/couchcryptid/grainair/internal/i18n"
	"github.com/couchcryptid/grainair/internal/observability"
	"github.com/couchcryptid/grainair/internal/report"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, in io.Reader, out, logOut io.Writer) error {
	logger := observability.NewLoggerTo(logOut, cfg)
	metrics := observability.NewMetrics()

	catalog, err := domain.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("load station catalog: %w", err)
	}

	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		cached, err := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			return err
		}
		geocoder = cached
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	var backend report.Backend
	switch cfg.ReportSink {
	case config.SinkKafka:
		publisher := kafkaadapter.NewReportPublisher(cfg, logger)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		if err := publisher.CheckReadiness(ctx); err != nil {
			logger.Warn("kafka not reachable, submissions will fail until it is", "error", err)
		}
		backend = publisher
	default:
		backend = report.NewSimulatedBackend(clockwork.NewRealClock(), cfg.SubmitDelay, logger)
	}

	var locator report.Locator = report.UnavailableLocator{}
	if cfg.DeviceLat != nil && cfg.DeviceLng != nil {
		locator = report.FixedLocator{Position: domain.Coordinate{Lat: *cfg.DeviceLat, Lng: *cfg.DeviceLng}}
	}

	c := newConsole(out)
	session, err := dashboard.NewSession(dashboard.Options{
		Catalog:  catalog,
		Language: i18n.Language(cfg.DefaultLanguage),
		Recenter: c.recenter,
		Panel: dashboard.PanelOptions{
			HorizonHours: cfg.ForecastHorizonHours,
			StrideHours:  cfg.ForecastStrideHours,
		},
		Report: report.Options{
			Locator:            locator,
			Backend:            backend,
			Notifier:           c,
			Geocoder:           geocoder,
			GeolocationTimeout: cfg.GeolocationTimeout,
		},
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		return err
	}
	c.session = session

	return c.run(ctx, in)
}
