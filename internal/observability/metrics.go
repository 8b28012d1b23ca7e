package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "grainair"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	StationSelections  prometheus.Counter
	ForecastsGenerated prometheus.Counter
	APIRequests        *prometheus.CounterVec // labels: route, status

	// Incident report metrics.
	ReportsSubmitted    *prometheus.CounterVec // labels: outcome={success,failure,invalid}
	SubmissionDuration  prometheus.Histogram
	GeolocationRequests *prometheus.CounterVec // labels: outcome={success,permission_denied,unavailable,timeout}

	// Reverse geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		StationSelections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "station_selections_total",
			Help:      "Total station selections, including re-selections.",
		}),
		ForecastsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecasts_generated_total",
			Help:      "Total synthetic forecast series generated.",
		}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Dashboard API requests by route and status code.",
		}, []string{"route", "status"}),
		ReportsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_submitted_total",
			Help:      "Incident report submission attempts by outcome.",
		}, []string{"outcome"}),
		SubmissionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_submission_duration_seconds",
			Help:      "Time spent in the submitting state.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 1.5, 2, 5, 10},
		}),
		GeolocationRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geolocation_requests_total",
			Help:      "Device position requests by outcome.",
		}, []string{"outcome"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Reverse geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when reverse geocoding is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.StationSelections,
		m.ForecastsGenerated,
		m.APIRequests,
		m.ReportsSubmitted,
		m.SubmissionDuration,
		m.GeolocationRequests,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		StationSelections:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "station_selections_total"}),
		ForecastsGenerated:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "forecasts_generated_total"}),
		APIRequests:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "api_requests_total"}, []string{"route", "status"}),
		ReportsSubmitted:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "reports_submitted_total"}, []string{"outcome"}),
		SubmissionDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "report_submission_duration_seconds"}),
		GeolocationRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geolocation_requests_total"}, []string{"outcome"}),
		GeocodeRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeAPIDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "geocode_api_duration_seconds"}),
		GeocodeEnabled:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "geocode_enabled"}),
	}
}
