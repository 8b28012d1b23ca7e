package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/couchcryptid/grainair/internal/dashboard"
	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/couchcryptid/grainair/internal/i18n"
	"github.com/couchcryptid/grainair/internal/observability"
)

// APIConfig wires the read-only dashboard API.
type APIConfig struct {
	Catalog         *domain.Catalog
	Forecasts       *domain.ForecastGenerator
	HorizonHours    int
	StrideHours     int
	DefaultLanguage i18n.Language
	Metrics         *observability.Metrics
	Logger          *slog.Logger
}

// API serves stations, details, translations and the map view. Every request
// is independent: the language comes from the lang query parameter and a
// fresh forecast is generated per detail request.
type API struct {
	cfg APIConfig
}

// NewAPI creates the dashboard API.
func NewAPI(cfg APIConfig) *API {
	if cfg.Forecasts == nil {
		cfg.Forecasts = domain.NewForecastGenerator(nil)
	}
	if cfg.HorizonHours == 0 {
		cfg.HorizonHours = domain.DefaultHorizonHours
	}
	if cfg.StrideHours == 0 {
		cfg.StrideHours = domain.DefaultChartStride
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = i18n.English
	}
	return &API{cfg: cfg}
}

func (a *API) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/stations", a.instrument("stations", a.handleStations))
	mux.HandleFunc("GET /api/stations/{id}", a.instrument("station", a.handleStation))
	mux.HandleFunc("GET /api/translations/{lang}", a.instrument("translations", a.handleTranslations))
	mux.HandleFunc("GET /api/map", a.instrument("map", a.handleMap))
}

func (a *API) handleStations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dashboard.Markers(a.cfg.Catalog.Stations(), 0))
}

func (a *API) handleStation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "station id must be a positive integer")
		return
	}
	localizer, ok := a.localizer(w, r)
	if !ok {
		return
	}

	station, err := a.cfg.Catalog.Get(id)
	if errors.Is(err, domain.ErrStationNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		a.internalError(w, err)
		return
	}

	detail, err := dashboard.RenderDetail(station, a.cfg.Forecasts, a.cfg.HorizonHours, a.cfg.StrideHours, localizer.Func())
	if err != nil {
		a.internalError(w, err)
		return
	}
	a.cfg.Metrics.ForecastsGenerated.Inc()
	writeJSON(w, http.StatusOK, detail)
}

type translationsResponse struct {
	Language    i18n.Language     `json:"language"`
	DisplayName string            `json:"display_name"`
	Strings     map[string]string `json:"strings"`
}

func (a *API) handleTranslations(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Language(r.PathValue("lang"))
	table, ok := i18n.Table(lang)
	if !ok {
		writeError(w, http.StatusNotFound, "unsupported language: "+string(lang))
		return
	}
	writeJSON(w, http.StatusOK, translationsResponse{
		Language:    lang,
		DisplayName: i18n.DisplayName(lang),
		Strings:     table,
	})
}

func (a *API) handleMap(w http.ResponseWriter, r *http.Request) {
	localizer, ok := a.localizer(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dashboard.DefaultMapView(localizer.Func()))
}

// localizer builds a request-scoped Localizer from ?lang=, writing a 400 for
// unsupported codes.
func (a *API) localizer(w http.ResponseWriter, r *http.Request) (*i18n.Localizer, bool) {
	lang := a.cfg.DefaultLanguage
	if code := r.URL.Query().Get("lang"); code != "" {
		lang = i18n.Language(code)
	}
	l, err := i18n.New(lang)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return l, true
}

func (a *API) internalError(w http.ResponseWriter, err error) {
	a.cfg.Logger.Error("api request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// instrument counts requests per route and response status.
func (a *API) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		a.cfg.Metrics.APIRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
