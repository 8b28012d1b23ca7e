package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Report sinks selectable with REPORT_SINK.
const (
	SinkSimulated = "simulated"
	SinkKafka     = "kafka"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	DefaultLanguage string

	ForecastHorizonHours int
	ForecastStrideHours  int

	SubmitDelay        time.Duration
	GeolocationTimeout time.Duration

	// Fixed device position for hosts without a positioning capability.
	DeviceLat *float64
	DeviceLng *float64

	ReportSink       string
	KafkaBrokers     []string
	KafkaReportTopic string

	// Mapbox reverse geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	submitDelay, err := parsePositiveDuration("SUBMIT_DELAY", "1500ms")
	if err != nil {
		return nil, err
	}
	geoTimeout, err := parsePositiveDuration("GEOLOCATION_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	horizon, err := parsePositiveInt("FORECAST_HORIZON_HOURS", 72)
	if err != nil {
		return nil, err
	}
	stride, err := parsePositiveInt("FORECAST_STRIDE_HOURS", 6)
	if err != nil {
		return nil, err
	}
	if horizon%stride != 0 {
		return nil, fmt.Errorf("FORECAST_STRIDE_HOURS %d must divide FORECAST_HORIZON_HOURS %d", stride, horizon)
	}

	deviceLat, deviceLng, err := parseDevicePosition()
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DefaultLanguage: sharedcfg.EnvOrDefault("DEFAULT_LANGUAGE", "en"),

		ForecastHorizonHours: horizon,
		ForecastStrideHours:  stride,

		SubmitDelay:        submitDelay,
		GeolocationTimeout: geoTimeout,

		DeviceLat: deviceLat,
		DeviceLng: deviceLng,

		ReportSink:       sharedcfg.EnvOrDefault("REPORT_SINK", SinkSimulated),
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReportTopic: sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "incident-reports"),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),
	}

	if cfg.DefaultLanguage != "en" && cfg.DefaultLanguage != "hi" {
		return nil, fmt.Errorf("DEFAULT_LANGUAGE %q must be en or hi", cfg.DefaultLanguage)
	}
	switch cfg.ReportSink {
	case SinkSimulated:
	case SinkKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when REPORT_SINK is kafka")
		}
		if cfg.KafkaReportTopic == "" {
			return nil, errors.New("KAFKA_REPORT_TOPIC is required when REPORT_SINK is kafka")
		}
	default:
		return nil, fmt.Errorf("REPORT_SINK %q must be simulated or kafka", cfg.ReportSink)
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

func parsePositiveDuration(name, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(name, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return d, nil
}

func parsePositiveInt(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return n, nil
}

// parseDevicePosition reads DEVICE_LAT and DEVICE_LNG, which must be set together.
func parseDevicePosition() (*float64, *float64, error) {
	latStr, lngStr := os.Getenv("DEVICE_LAT"), os.Getenv("DEVICE_LNG")
	if latStr == "" && lngStr == "" {
		return nil, nil, nil
	}
	if latStr == "" || lngStr == "" {
		return nil, nil, errors.New("DEVICE_LAT and DEVICE_LNG must be set together")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, nil, errors.New("invalid DEVICE_LAT")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil || lng < -180 || lng > 180 {
		return nil, nil, errors.New("invalid DEVICE_LNG")
	}
	return &lat, &lng, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
