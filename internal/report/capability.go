package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Locator provides the device's current position.
type Locator interface {
	CurrentPosition(ctx context.Context) (domain.Coordinate, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (domain.Coordinate, error)

func (f LocatorFunc) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	return f(ctx)
}

// FixedLocator always reports the same position.
type FixedLocator struct {
	Position domain.Coordinate
}

func (l FixedLocator) CurrentPosition(_ context.Context) (domain.Coordinate, error) {
	return l.Position, nil
}

// UnavailableLocator is used on hosts with no positioning capability.
type UnavailableLocator struct{}

func (UnavailableLocator) CurrentPosition(_ context.Context) (domain.Coordinate, error) {
	return domain.Coordinate{}, ErrPositionUnavailable
}

// Backend accepts a validated report. Implementations may fail; a failure
// moves the workflow to PhaseFailed.
type Backend interface {
	Submit(ctx context.Context, r domain.Report) error
}

// SimulatedBackend accepts every report after a fixed delay.
type SimulatedBackend struct {
	clock  clockwork.Clock
	delay  time.Duration
	logger *slog.Logger
}

// NewSimulatedBackend creates a backend that succeeds after delay on clock.
func NewSimulatedBackend(clock clockwork.Clock, delay time.Duration, logger *slog.Logger) *SimulatedBackend {
	return &SimulatedBackend{clock: clock, delay: delay, logger: logger}
}

func (b *SimulatedBackend) Submit(ctx context.Context, r domain.Report) error {
	select {
	case <-b.clock.After(b.delay):
		b.logger.Info("report accepted", "report_id", r.ID, "incident_type", r.Draft.IncidentType)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Severity tells the notification collaborator how to present a message.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a fire-and-forget toast.
type Notification struct {
	Title    string
	Body     string
	Severity Severity
}

// Notifier displays notifications. It must not block.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }
