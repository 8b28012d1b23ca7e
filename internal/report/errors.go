package report

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned for an operation the current state
	// does not allow, such as cancelling while submitting.
	ErrInvalidTransition = errors.New("invalid report transition")

	// ErrClosed is returned by a capture whose report was closed before the
	// position arrived. The result is discarded.
	ErrClosed = errors.New("report closed")

	// ErrSuperseded is returned by a capture replaced by a newer request.
	ErrSuperseded = errors.New("capture superseded")
)

// GeolocationErrorKind distinguishes why a position could not be acquired.
type GeolocationErrorKind string

const (
	KindPermissionDenied    GeolocationErrorKind = "permission_denied"
	KindPositionUnavailable GeolocationErrorKind = "unavailable"
	KindTimeout             GeolocationErrorKind = "timeout"
)

// GeolocationError reports a failed position request. It is recoverable: the
// draft keeps its location and manual entry stays available.
type GeolocationError struct {
	Kind GeolocationErrorKind
	Err  error
}

// Sentinels for errors.Is. A GeolocationError matches the sentinel of its kind.
var (
	ErrPermissionDenied    = &GeolocationError{Kind: KindPermissionDenied}
	ErrPositionUnavailable = &GeolocationError{Kind: KindPositionUnavailable}
	ErrGeolocationTimeout  = &GeolocationError{Kind: KindTimeout}
)

func (e *GeolocationError) Error() string {
	msg := "geolocation " + string(e.Kind)
	if e.Kind == KindPermissionDenied {
		msg = "geolocation permission denied"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *GeolocationError) Unwrap() error { return e.Err }

// Is matches any GeolocationError of the same kind when target carries no cause.
func (e *GeolocationError) Is(target error) bool {
	t, ok := target.(*GeolocationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Err == nil
}

// classifyGeolocationError normalizes a locator failure. Anything that is not
// already a GeolocationError is reported as unavailable.
func classifyGeolocationError(err error) *GeolocationError {
	var ge *GeolocationError
	if errors.As(err, &ge) {
		return ge
	}
	return &GeolocationError{Kind: KindPositionUnavailable, Err: err}
}
