package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend interaction. Each kind maps to a
// distinct user-visible treatment.
type Kind string

const (
	// KindValidation is a local precondition failure; no network call was made.
	KindValidation Kind = "validation"
	// KindNetworkUnavailable is a transport-level failure with no response.
	KindNetworkUnavailable Kind = "network_unavailable"
	// KindBackendRejected is a non-success status, or a success status with
	// an unparseable body.
	KindBackendRejected Kind = "backend_rejected"
	// KindFetchFailed is the read-side equivalent of the two above, surfaced
	// inline rather than as a submission alert.
	KindFetchFailed Kind = "fetch_failed"
)

// Error is the typed failure returned by backend clients. Response carries
// any structured error payload the backend returned, when present.
type Error struct {
	Kind       Kind
	StatusCode int
	Response   []byte
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidation reports a locally rejected operation.
func NewValidation(message string, err error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

// NewNetworkUnavailable reports a transport failure.
func NewNetworkUnavailable(err error) *Error {
	return &Error{Kind: KindNetworkUnavailable, Message: "no response from backend", Err: err}
}

// NewBackendRejected reports an explicit backend rejection.
func NewBackendRejected(statusCode int, response []byte, message string) *Error {
	return &Error{
		Kind:       KindBackendRejected,
		StatusCode: statusCode,
		Response:   response,
		Message:    message,
	}
}

// NewFetchFailed reports a failed read-side fetch.
func NewFetchFailed(message string, err error) *Error {
	return &Error{Kind: KindFetchFailed, Message: message, Err: err}
}

// AsError extracts a typed *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	if apiErr, ok := AsError(err); ok {
		return apiErr.Kind == kind
	}
	return false
}

// asFetchFailed re-marks transport and rejection errors from read paths as
// fetch failures while keeping the original in the chain.
func asFetchFailed(message string, err error) *Error {
	return &Error{Kind: KindFetchFailed, Message: message, Err: err}
}
