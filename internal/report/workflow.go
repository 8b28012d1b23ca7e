// Package report implements the incident report workflow: draft editing,
// device location capture, and submission.
//
// The workflow moves through
//
//	idle --open--> editing --submit--> submitting --> succeeded --> idle
//	                  |                    |
//	                cancel                 +--> failed --edit/submit/cancel-->
//	                  v
//	                idle
//
// Submitting cannot be cancelled. Validation is local and synchronous; a draft
// that fails it stays in editing with field errors and a warning notification.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/couchcryptid/grainair/internal/i18n"
	"github.com/couchcryptid/grainair/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultGeolocationTimeout bounds a position request.
const DefaultGeolocationTimeout = 10 * time.Second

// Options wires a Workflow to its collaborators. Locator, Backend, Notifier,
// Localizer, Logger and Metrics are required.
type Options struct {
	Locator   Locator
	Backend   Backend
	Notifier  Notifier
	Localizer *i18n.Localizer
	Logger    *slog.Logger
	Metrics   *observability.Metrics

	// Optional enrichment of captured positions.
	Geocoder domain.Geocoder
	Catalog  *domain.Catalog

	Clock              clockwork.Clock // defaults to the real clock
	GeolocationTimeout time.Duration   // defaults to DefaultGeolocationTimeout

	// OnTransition, if set, observes every state change. It runs while the
	// workflow is locked and must not call back into it.
	OnTransition func(from, to State)
}

// Workflow owns one report draft and its submission state. State changes are
// serialized internally; the suspension points (capture and submit) release
// the lock while they wait.
type Workflow struct {
	mu          sync.Mutex
	state       State
	draft       domain.Draft
	fieldErrors domain.ValidationErrors
	// generation changes every time a report is opened or closed, so late
	// results from a previous report can be recognised and dropped.
	generation    uint64
	captureSeq    uint64
	cancelCapture context.CancelFunc

	opts  Options
	clock clockwork.Clock
}

// NewWorkflow creates a closed (idle) workflow.
func NewWorkflow(opts Options) *Workflow {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.GeolocationTimeout <= 0 {
		opts.GeolocationTimeout = DefaultGeolocationTimeout
	}
	return &Workflow{
		state: State{Phase: PhaseIdle},
		draft: domain.NewDraft(),
		opts:  opts,
		clock: opts.Clock,
	}
}

// State returns the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Draft returns a copy of the current draft.
func (w *Workflow) Draft() domain.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// FieldErrors returns the errors from the last failed validation, if any.
func (w *Workflow) FieldErrors() domain.ValidationErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(domain.ValidationErrors, len(w.fieldErrors))
	copy(out, w.fieldErrors)
	return out
}

// Open starts a new report with an empty draft.
func (w *Workflow) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Phase != PhaseIdle {
		return fmt.Errorf("%w: open while %s", ErrInvalidTransition, w.state)
	}
	w.generation++
	w.draft = domain.NewDraft()
	w.fieldErrors = nil
	w.transition(State{Phase: PhaseEditing})
	return nil
}

// Cancel closes the report and discards the draft along with the effect of
// any capture still in flight. Cancelling a closed report is a no-op.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state.Phase {
	case PhaseIdle:
		return nil
	case PhaseSubmitting, PhaseSucceeded:
		return fmt.Errorf("%w: cancel while %s", ErrInvalidTransition, w.state)
	}
	w.closeLocked()
	return nil
}

// SetLocation replaces the location with free text. Any captured-position
// enrichment is dropped.
func (w *Workflow) SetLocation(location string) error {
	return w.edit(func(d *domain.Draft) {
		d.Location = location
		d.Captured = nil
		d.PlaceName = ""
		d.NearestStation = 0
	})
}

// SetDescription replaces the description.
func (w *Workflow) SetDescription(description string) error {
	return w.edit(func(d *domain.Draft) { d.Description = description })
}

// SetIncidentType replaces the incident type. An empty type selects the default.
// The value is checked at submit time.
func (w *Workflow) SetIncidentType(t domain.IncidentType) error {
	return w.edit(func(d *domain.Draft) {
		if t == "" {
			t = domain.DefaultIncidentType
		}
		d.IncidentType = t
	})
}

func (w *Workflow) edit(apply func(d *domain.Draft)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.state.editable() {
		return fmt.Errorf("%w: edit while %s", ErrInvalidTransition, w.state)
	}
	apply(&w.draft)
	if w.state.Phase == PhaseFailed {
		w.transition(State{Phase: PhaseEditing})
	}
	return nil
}

// CaptureLocation asks the locator for the device position and, on success,
// writes it into the draft as "lat, lng" with six decimals. On failure the
// location is left unchanged, a warning is shown, and a *GeolocationError is
// returned. The request is abandoned after the geolocation timeout. If the
// report is closed while waiting, ErrClosed is returned and nothing changes.
func (w *Workflow) CaptureLocation(ctx context.Context) error {
	w.mu.Lock()
	if !w.state.editable() {
		w.mu.Unlock()
		return fmt.Errorf("%w: capture while %s", ErrInvalidTransition, w.state)
	}
	if w.cancelCapture != nil {
		w.cancelCapture()
	}
	captureCtx, cancel := context.WithCancel(ctx)
	w.cancelCapture = cancel
	w.captureSeq++
	gen, seq := w.generation, w.captureSeq
	w.mu.Unlock()
	defer cancel()

	pos, err := w.locate(captureCtx)

	if err == nil {
		if verr := pos.Validate(); verr != nil {
			err = &GeolocationError{Kind: KindPositionUnavailable, Err: verr}
		}
	}

	var placeName string
	var nearest int
	if err == nil {
		placeName, nearest = w.enrich(ctx, pos)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.generation != gen || !w.state.editable() {
		w.opts.Logger.Debug("discarding capture for closed report")
		return ErrClosed
	}
	if w.captureSeq != seq {
		return ErrSuperseded
	}
	w.cancelCapture = nil

	if err != nil {
		ge := classifyGeolocationError(err)
		w.opts.Metrics.GeolocationRequests.WithLabelValues(string(ge.Kind)).Inc()
		w.opts.Logger.Warn("location capture failed", "kind", ge.Kind, "error", err)
		w.notify("locationError", "locationErrorBody", SeverityWarning)
		return ge
	}

	captured := pos
	w.draft.Location = pos.String()
	w.draft.Captured = &captured
	w.draft.PlaceName = placeName
	w.draft.NearestStation = nearest
	w.opts.Metrics.GeolocationRequests.WithLabelValues("success").Inc()
	w.opts.Logger.Info("location captured", "location", w.draft.Location, "nearest_station", nearest)
	w.notify("locationCaptured", "locationCapturedBody", SeverityInfo)
	return nil
}

// locate runs the locator with the geolocation timeout on the workflow clock.
func (w *Workflow) locate(ctx context.Context) (domain.Coordinate, error) {
	type result struct {
		pos domain.Coordinate
		err error
	}
	done := make(chan result, 1)
	timer := w.clock.NewTimer(w.opts.GeolocationTimeout)
	defer timer.Stop()

	go func() {
		pos, err := w.opts.Locator.CurrentPosition(ctx)
		done <- result{pos: pos, err: err}
	}()

	select {
	case r := <-done:
		return r.pos, r.err
	case <-timer.Chan():
		return domain.Coordinate{}, &GeolocationError{Kind: KindTimeout}
	case <-ctx.Done():
		return domain.Coordinate{}, &GeolocationError{Kind: KindPositionUnavailable, Err: ctx.Err()}
	}
}

// enrich looks up the nearest station and, when a geocoder is configured, a
// place name. Geocoding failures only cost the place name.
func (w *Workflow) enrich(ctx context.Context, pos domain.Coordinate) (string, int) {
	var nearest int
	if w.opts.Catalog != nil {
		if s, _, ok := w.opts.Catalog.Nearest(pos); ok {
			nearest = s.ID
		}
	}
	if w.opts.Geocoder == nil {
		return "", nearest
	}
	result, err := w.opts.Geocoder.ReverseGeocode(ctx, pos.Lat, pos.Lng)
	if err != nil {
		w.opts.Logger.Warn("reverse geocoding failed", "lat", pos.Lat, "lng", pos.Lng, "error", err)
		return "", nearest
	}
	return result.PlaceName, nearest
}

// Submit validates the draft and hands it to the backend. Validation failures
// return domain.ValidationErrors and leave the workflow in editing. Once the
// backend call starts it runs to completion even if ctx is cancelled. On
// success a confirmation is shown and the report is closed; on failure the
// workflow enters PhaseFailed with the draft intact.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if !w.state.editable() {
		w.mu.Unlock()
		return fmt.Errorf("%w: submit while %s", ErrInvalidTransition, w.state)
	}

	draft := w.draft
	if err := draft.Validate(); err != nil {
		var verrs domain.ValidationErrors
		errors.As(err, &verrs)
		w.fieldErrors = verrs
		if w.state.Phase == PhaseFailed {
			w.transition(State{Phase: PhaseEditing})
		}
		w.opts.Metrics.ReportsSubmitted.WithLabelValues("invalid").Inc()
		w.opts.Logger.Warn("report validation failed", "fields", verrs.Fields())
		w.notify("reportIncomplete", "reportIncompleteBody", SeverityWarning)
		w.mu.Unlock()
		return err
	}

	w.draft = draft
	w.fieldErrors = nil
	gen := w.generation
	report := domain.Report{
		ID:          uuid.NewString(),
		Draft:       draft,
		SubmittedAt: w.clock.Now(),
	}
	w.transition(State{Phase: PhaseSubmitting})
	w.mu.Unlock()

	start := w.clock.Now()
	err := w.opts.Backend.Submit(context.WithoutCancel(ctx), report)
	w.opts.Metrics.SubmissionDuration.Observe(w.clock.Since(start).Seconds())

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.generation != gen {
		// Nothing but Submit leaves PhaseSubmitting, so this cannot happen.
		return ErrClosed
	}

	if err != nil {
		w.transition(State{Phase: PhaseFailed, Reason: err.Error()})
		w.opts.Metrics.ReportsSubmitted.WithLabelValues("failure").Inc()
		w.opts.Logger.Error("report submission failed", "report_id", report.ID, "error", err)
		w.notify("reportFailed", "reportFailedBody", SeverityError)
		return fmt.Errorf("submit report: %w", err)
	}

	w.transition(State{Phase: PhaseSucceeded})
	w.opts.Metrics.ReportsSubmitted.WithLabelValues("success").Inc()
	w.opts.Logger.Info("report submitted", "report_id", report.ID, "incident_type", report.Draft.IncidentType)
	w.notify("reportSubmitted", "reportSubmittedBody", SeverityInfo)
	w.closeLocked()
	return nil
}

// closeLocked returns to idle and discards the draft. w.mu must be held.
func (w *Workflow) closeLocked() {
	if w.cancelCapture != nil {
		w.cancelCapture()
		w.cancelCapture = nil
	}
	w.generation++
	w.draft = domain.NewDraft()
	w.fieldErrors = nil
	w.transition(State{Phase: PhaseIdle})
}

func (w *Workflow) transition(to State) {
	from := w.state
	w.state = to
	w.opts.Logger.Debug("report state changed", "from", from.String(), "to", to.String())
	if w.opts.OnTransition != nil {
		w.opts.OnTransition(from, to)
	}
}

func (w *Workflow) notify(titleKey, bodyKey string, severity Severity) {
	w.opts.Notifier.Notify(Notification{
		Title:    w.opts.Localizer.T(titleKey),
		Body:     w.opts.Localizer.T(bodyKey),
		Severity: severity,
	})
}
