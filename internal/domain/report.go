package domain

import (
	"strings"
	"time"
)

// IncidentType classifies what a reporter observed.
type IncidentType string

const (
	IncidentSmoke      IncidentType = "smoke"
	IncidentDust       IncidentType = "dust"
	IncidentIndustrial IncidentType = "industrial"
	IncidentVehicle    IncidentType = "vehicle"
	IncidentOther      IncidentType = "other"

	// DefaultIncidentType applies when the reporter leaves the type unset.
	DefaultIncidentType = IncidentSmoke
)

// AllIncidentTypes returns the selectable types in display order.
func AllIncidentTypes() []IncidentType {
	return []IncidentType{IncidentSmoke, IncidentDust, IncidentIndustrial, IncidentVehicle, IncidentOther}
}

// Valid reports whether t is one of the five defined types.
func (t IncidentType) Valid() bool {
	switch t {
	case IncidentSmoke, IncidentDust, IncidentIndustrial, IncidentVehicle, IncidentOther:
		return true
	default:
		return false
	}
}

// Label is the option text shown in the type selector.
func (t IncidentType) Label() string {
	switch t {
	case IncidentSmoke:
		return "🔥 Smoke/Burning"
	case IncidentDust:
		return "💨 Dust Storm"
	case IncidentIndustrial:
		return "🏭 Industrial Emission"
	case IncidentVehicle:
		return "🚗 Vehicle Pollution"
	case IncidentOther:
		return "🔍 Other"
	default:
		return string(t)
	}
}

// Draft is an incident report being edited. It is never persisted.
type Draft struct {
	Location     string       `json:"location"`
	Description  string       `json:"description"`
	IncidentType IncidentType `json:"incident_type"`

	// Enrichment set when the location was captured from the device.
	Captured       *Coordinate `json:"captured,omitempty"`
	PlaceName      string      `json:"place_name,omitempty"`
	NearestStation int         `json:"nearest_station,omitempty"`
}

// NewDraft returns an empty draft with the default incident type.
func NewDraft() Draft {
	return Draft{IncidentType: DefaultIncidentType}
}

// Validate performs the synchronous submit-time checks. An unset incident
// type is replaced by the default before checking.
func (d *Draft) Validate() error {
	if d.IncidentType == "" {
		d.IncidentType = DefaultIncidentType
	}

	var errs ValidationErrors
	if strings.TrimSpace(d.Location) == "" {
		errs = append(errs, ValidationError{Field: "location", Reason: "is required"})
	}
	if strings.TrimSpace(d.Description) == "" {
		errs = append(errs, ValidationError{Field: "description", Reason: "is required"})
	}
	if !d.IncidentType.Valid() {
		errs = append(errs, ValidationError{Field: "incident_type", Reason: "must be one of smoke, dust, industrial, vehicle, other"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Report is a validated draft handed to a submission backend.
type Report struct {
	ID          string    `json:"id"`
	Draft       Draft     `json:"draft"`
	SubmittedAt time.Time `json:"submitted_at"`
}
