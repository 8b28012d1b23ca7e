// Command grainair serves the read-only air quality dashboard API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/grainair/internal/adapter/http"
	"github.com/couchcryptid/grainair/internal/config"
	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/couchcryptid/grainair/internal/i18n"
	"github.com/couchcryptid/grainair/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	catalog, err := domain.DefaultCatalog()
	if err != nil {
		logger.Error("failed to load station catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("station catalog loaded", "stations", catalog.Len())

	api := httpadapter.NewAPI(httpadapter.APIConfig{
		Catalog:         catalog,
		Forecasts:       domain.NewForecastGenerator(nil),
		HorizonHours:    cfg.ForecastHorizonHours,
		StrideHours:     cfg.ForecastStrideHours,
		DefaultLanguage: i18n.Language(cfg.DefaultLanguage),
		Metrics:         metrics,
		Logger:          logger,
	})
	srv := httpadapter.NewServer(cfg.HTTPAddr, api, httpadapter.AlwaysReady, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
