package report

import "github.com/couchcryptid/grainair/internal/domain"

// TypeOption is one entry of the incident type selector.
type TypeOption struct {
	Value    domain.IncidentType `json:"value"`
	Label    string              `json:"label"`
	Selected bool                `json:"selected"`
}

// Form is everything a view needs to render the report dialog, with labels
// resolved in the active language.
type Form struct {
	Open             bool         `json:"open"`
	Title            string       `json:"title"`
	IncidentTypeText string       `json:"incident_type_label"`
	LocationText     string       `json:"location_label"`
	DescriptionText  string       `json:"description_label"`
	SubmitText       string       `json:"submit_label"`
	CancelText       string       `json:"cancel_label"`
	SubmitEnabled    bool         `json:"submit_enabled"`
	Types            []TypeOption `json:"types"`
	Draft            domain.Draft `json:"draft"`
	FieldErrors      []string     `json:"field_errors,omitempty"`
	State            string       `json:"state"`
}

// Form renders the dialog for the current state.
func (w *Workflow) Form() Form {
	w.mu.Lock()
	defer w.mu.Unlock()

	t := w.opts.Localizer.T
	submit := t("submit")
	if w.state.Phase == PhaseSubmitting {
		submit = t("submitting")
	}

	types := make([]TypeOption, 0, 5)
	for _, it := range domain.AllIncidentTypes() {
		types = append(types, TypeOption{Value: it, Label: it.Label(), Selected: it == w.draft.IncidentType})
	}

	return Form{
		Open:             w.state.Phase != PhaseIdle,
		Title:            t("reportSmokeTitle"),
		IncidentTypeText: t("incidentType"),
		LocationText:     t("location"),
		DescriptionText:  t("description"),
		SubmitText:       submit,
		CancelText:       t("cancel"),
		SubmitEnabled:    w.state.SubmitEnabled(),
		Types:            types,
		Draft:            w.draft,
		FieldErrors:      w.fieldErrors.Fields(),
		State:            w.state.String(),
	}
}
