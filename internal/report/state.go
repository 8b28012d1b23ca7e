package report

// Phase is the coarse state of the report workflow.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// State is the workflow state. Reason is set only in PhaseFailed.
type State struct {
	Phase  Phase
	Reason string
}

func (s State) String() string {
	if s.Phase == PhaseFailed && s.Reason != "" {
		return string(s.Phase) + "(" + s.Reason + ")"
	}
	return string(s.Phase)
}

// editable reports whether draft fields may change in this state.
func (s State) editable() bool {
	return s.Phase == PhaseEditing || s.Phase == PhaseFailed
}

// SubmitEnabled reports whether the submit control should accept input.
func (s State) SubmitEnabled() bool {
	return s.editable()
}
