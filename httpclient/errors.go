package httpclient

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a client failure.
type Kind string

const (
	// KindClientError covers 4xx responses. The envelope carries the response.
	KindClientError Kind = "client_error"
	// KindServerError covers 5xx responses. The envelope carries the response.
	KindServerError Kind = "server_error"
	// KindTimeout covers context deadlines and net timeouts. No response is
	// attached.
	KindTimeout Kind = "timeout"
	// KindNetwork covers every other transport failure. No response is
	// attached.
	KindNetwork Kind = "network"
	// KindValidation covers request precondition violations caught before
	// dispatch (nil request, empty path, unencodable body).
	KindValidation Kind = "validation"
)

// Error is the classified failure envelope. The client never swallows a
// failure; it always surfaces one of these with timing attached.
type Error struct {
	Kind    Kind
	Message string
	// Response is non-nil for KindClientError and KindServerError and carries
	// the status, headers, body and duration of the failed call.
	Response *Response
	// Elapsed is the wall-clock time spent before the failure surfaced. Zero
	// for validation errors, which never reach the transport.
	Elapsed time.Duration
	wrapped error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindClientError, KindServerError:
		return fmt.Sprintf("%s: %s (status: %d)", e.Kind, e.Message, e.Response.StatusCode)
	default:
		if e.wrapped != nil {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.wrapped)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

// StatusCode returns the HTTP status of the attached response, or 0 when the
// failure carries no response.
func (e *Error) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// NewStatusError builds the envelope for a 4xx/5xx response.
func NewStatusError(method, target string, resp *Response) *Error {
	kind := KindClientError
	if resp.StatusCode >= 500 {
		kind = KindServerError
	}
	return &Error{
		Kind:     kind,
		Message:  fmt.Sprintf("%s %s failed", method, target),
		Response: resp,
		Elapsed:  resp.Duration,
	}
}

// NewTimeoutError builds the envelope for a timed-out call. No partial
// response is attached.
func NewTimeoutError(timeout, elapsed time.Duration) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: fmt.Sprintf("request timed out after %v", timeout),
		Elapsed: elapsed,
	}
}

// NewNetworkError builds the envelope for a connectivity failure.
func NewNetworkError(message string, wrapped error, elapsed time.Duration) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: message,
		Elapsed: elapsed,
		wrapped: wrapped,
	}
}

// NewValidationError builds the envelope for a precondition violation.
func NewValidationError(message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
	}
}

// KindOf extracts the failure kind from any error in the chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given failure kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsStatus reports whether err is a status error with the given code.
func IsStatus(err error, status int) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode() == status
	}
	return false
}

// ResponseFrom extracts the attached response envelope, when present.
func ResponseFrom(err error) (*Response, bool) {
	var e *Error
	if errors.As(err, &e) && e.Response != nil {
		return e.Response, true
	}
	return nil, false
}

// IsSuccessStatus reports whether a status code is in the 2xx range.
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
