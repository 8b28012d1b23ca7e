package domain

import (
	"fmt"
	"strings"
)

// ValidationError describes one field that failed a submit-time check.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ValidationErrors collects every failing field of a draft.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the names of the failing fields in order.
func (e ValidationErrors) Fields() []string {
	out := make([]string, len(e))
	for i, v := range e {
		out[i] = v.Field
	}
	return out
}

// Has reports whether field is among the failures.
func (e ValidationErrors) Has(field string) bool {
	for _, v := range e {
		if v.Field == field {
			return true
		}
	}
	return false
}
