package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds. Every error returned by this package matches at most one of
// these with errors.Is.
var (
	ErrUnauthenticated     = errors.New("not authenticated")
	ErrValidation          = errors.New("name and duration are required")
	ErrNotFoundOrForbidden = errors.New("workout not found or not authorized")
	ErrInvalidIdentifier   = errors.New("invalid workout identifier")
	ErrNormalization       = errors.New("unexpected data format from API")
	ErrNetwork             = errors.New("network error or API is unreachable")

	// ErrSessionSuperseded is returned by View operations whose response
	// arrived after the session that issued them ended. The response is dropped.
	ErrSessionSuperseded = errors.New("session changed before the response arrived")
)

// NormalizationError reports a response body that could not be turned into
// workouts. It is never reported as an empty list.
type NormalizationError struct {
	Reason string // "malformed body", "unexpected shape", ...
	Cause  error
}

func (e *NormalizationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", ErrNormalization, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrNormalization, e.Reason)
}

func (e *NormalizationError) Is(target error) bool { return target == ErrNormalization }

func (e *NormalizationError) Unwrap() error { return e.Cause }

// APIError is a non-2xx reply. Kind is the matching sentinel, if any.
type APIError struct {
	StatusCode int
	Message    string
	Kind       error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api: %d: %s", e.StatusCode, msg)
}

func (e *APIError) Unwrap() error { return e.Kind }
