package dashboard

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/couchcryptid/grainair/internal/i18n"
	"github.com/couchcryptid/grainair/internal/observability"
	"github.com/couchcryptid/grainair/internal/report"
	"github.com/couchcryptid/grainair/internal/selection"
)

// Options configures a Session.
type Options struct {
	Catalog  *domain.Catalog
	Language i18n.Language

	// Recenter receives map recenter commands from the selection controller.
	Recenter selection.RecenterFunc

	// Panel configures forecasting. Its Logger and Metrics are filled in
	// from the session.
	Panel PanelOptions

	// Report configures the incident report workflow. Its Localizer, Logger,
	// Metrics and Catalog are filled in from the session.
	Report report.Options

	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// Session is one user's dashboard: the active language, the selected station,
// the detail panel and the report dialog. Independent sessions share nothing
// but the read-only catalog.
//
// A Session is driven from a single goroutine. The report workflow's blocking
// calls may run elsewhere, but the language must not change while they do.
type Session struct {
	catalog   *domain.Catalog
	localizer *i18n.Localizer
	selection *selection.Controller
	panel     *DetailPanel
	report    *report.Workflow
	logger    *slog.Logger
}

// NewSession wires a session together.
func NewSession(opts Options) (*Session, error) {
	if opts.Catalog == nil {
		return nil, errors.New("dashboard: catalog is required")
	}
	if opts.Language == "" {
		opts.Language = i18n.English
	}
	localizer, err := i18n.New(opts.Language)
	if err != nil {
		return nil, err
	}

	panelOpts := opts.Panel
	panelOpts.Logger = opts.Logger
	panelOpts.Metrics = opts.Metrics
	panel, err := NewDetailPanel(panelOpts)
	if err != nil {
		return nil, fmt.Errorf("detail panel: %w", err)
	}

	reportOpts := opts.Report
	reportOpts.Localizer = localizer
	reportOpts.Logger = opts.Logger
	reportOpts.Metrics = opts.Metrics
	if reportOpts.Catalog == nil {
		reportOpts.Catalog = opts.Catalog
	}

	return &Session{
		catalog:   opts.Catalog,
		localizer: localizer,
		selection: selection.NewController(opts.Recenter, opts.Logger, opts.Metrics),
		panel:     panel,
		report:    report.NewWorkflow(reportOpts),
		logger:    opts.Logger,
	}, nil
}

// SelectStation selects the station with the given id, as the map does when a
// marker is clicked, and returns its detail panel.
func (s *Session) SelectStation(id int) (Detail, error) {
	st, err := s.catalog.Get(id)
	if err != nil {
		return Detail{}, err
	}
	s.selection.Select(st)
	return s.panel.Render(st, s.localizer.Func())
}

// ClearSelection deselects the current station and closes the detail panel.
func (s *Session) ClearSelection() {
	s.selection.Clear()
	s.panel.Reset()
}

// Detail renders the panel for the selected station. ok is false when
// nothing is selected.
func (s *Session) Detail() (d Detail, ok bool, err error) {
	st, ok := s.selection.Selected()
	if !ok {
		return Detail{}, false, nil
	}
	d, err = s.panel.Render(st, s.localizer.Func())
	return d, err == nil, err
}

// Selected returns the selected station.
func (s *Session) Selected() (domain.Station, bool) {
	return s.selection.Selected()
}

// Markers returns every catalog station as a map marker, flagging the
// selected one.
func (s *Session) Markers() []Marker {
	id, _ := s.selection.SelectedID()
	return Markers(s.catalog.Stations(), id)
}

// MapView returns the initial map view with a legend in the active language.
func (s *Session) MapView() MapView {
	return DefaultMapView(s.localizer.Func())
}

// SetLanguage switches the session language by code. Rendered text picks up
// the change on the next render. Unknown codes return
// i18n.ErrUnsupportedLanguage and leave the language unchanged.
func (s *Session) SetLanguage(code string) error {
	lang, err := i18n.ParseLanguage(code)
	if err != nil {
		return err
	}
	if err := s.localizer.SetLanguage(lang); err != nil {
		return err
	}
	s.logger.Info("language changed", "lang", lang)
	return nil
}

// Language returns the active language.
func (s *Session) Language() i18n.Language {
	return s.localizer.Language()
}

// T resolves a translation key in the active language.
func (s *Session) T(key string) string {
	return s.localizer.T(key)
}

// Report returns the session's incident report workflow.
func (s *Session) Report() *report.Workflow {
	return s.report
}
