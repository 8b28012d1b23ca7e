// Package selection tracks which monitoring station the user has picked.
package selection

import (
	"log/slog"

	"github.com/couchcryptid/grainair/internal/domain"
	"github.com/couchcryptid/grainair/internal/observability"
)

// RecenterZoom is the map zoom level used when focusing a selected station.
const RecenterZoom = 10

// RecenterFunc moves the map to coord at the given zoom.
type RecenterFunc func(coord domain.Coordinate, zoom int)

// Controller holds the current selection. It is single-owner state: every call
// is processed synchronously in the order issued, with no coalescing.
type Controller struct {
	selected *domain.Station
	recenter RecenterFunc
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewController creates a Controller with nothing selected. recenter may be nil.
func NewController(recenter RecenterFunc, logger *slog.Logger, metrics *observability.Metrics) *Controller {
	return &Controller{
		recenter: recenter,
		logger:   logger,
		metrics:  metrics,
	}
}

// OnRecenter replaces the recenter callback.
func (c *Controller) OnRecenter(fn RecenterFunc) {
	c.recenter = fn
}

// Select makes s the current station and recenters the map on it. Selecting
// the station that is already selected leaves the state unchanged but still
// recenters.
func (c *Controller) Select(s domain.Station) {
	changed := c.selected == nil || c.selected.ID != s.ID
	if changed {
		station := s
		c.selected = &station
		c.logger.Debug("station selected", "station_id", s.ID, "name", s.Name)
	}
	c.metrics.StationSelections.Inc()

	if c.recenter != nil {
		c.recenter(s.Coordinate, RecenterZoom)
	}
}

// Clear drops the selection. The map is not moved.
func (c *Controller) Clear() {
	if c.selected != nil {
		c.logger.Debug("selection cleared", "station_id", c.selected.ID)
	}
	c.selected = nil
}

// Selected returns the current station and whether one is selected.
func (c *Controller) Selected() (domain.Station, bool) {
	if c.selected == nil {
		return domain.Station{}, false
	}
	return *c.selected, true
}

// SelectedID returns the id of the current station, or 0 when none is selected.
func (c *Controller) SelectedID() (int, bool) {
	if c.selected == nil {
		return 0, false
	}
	return c.selected.ID, true
}
