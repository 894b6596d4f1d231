package zebedee

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// noMessageReturned is substituted when an error body carries no message.
const noMessageReturned = "No Message Returned"

// Common errors. Every *Error matches exactly one of the kind sentinels.
var (
	// ErrTransport indicates the HTTP exchange could not complete
	ErrTransport = errors.New("transport failure")
	// ErrMalformedResponse indicates a body that could not be understood
	ErrMalformedResponse = errors.New("malformed response")
	// ErrAPI indicates the provider rejected the request
	ErrAPI = errors.New("zebedee API error")
	// ErrValidation indicates a request failed local validation
	ErrValidation = errors.New("validation failed")
	// ErrOAuthNotConfigured indicates an OAuth call on a client without OAuth settings
	ErrOAuthNotConfigured = errors.New("oauth is not configured")
)

// ErrorKind classifies an *Error.
type ErrorKind int

const (
	KindTransport ErrorKind = iota + 1
	KindMalformedResponse
	KindAPI
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindMalformedResponse:
		return "malformed_response"
	case KindAPI:
		return "api"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by every Client method.
type Error struct {
	Kind ErrorKind
	// StatusCode is zero for transport and validation failures.
	StatusCode int
	// Message is the provider message for API failures.
	Message string
	// Body holds the raw response text for API and malformed failures.
	Body       string
	Violations []Violation
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("zebedee: transport failure: %v", e.Err)
	case KindMalformedResponse:
		return fmt.Sprintf("zebedee: malformed response (status %d): %v", e.StatusCode, e.Err)
	case KindAPI:
		return fmt.Sprintf("zebedee API error: status %d: %s", e.StatusCode, e.Message)
	case KindValidation:
		if len(e.Violations) == 0 && e.Err != nil {
			return fmt.Sprintf("zebedee: validation failed: %v", e.Err)
		}
		msgs := make([]string, 0, len(e.Violations))
		for _, v := range e.Violations {
			msgs = append(msgs, v.String())
		}
		return "zebedee: validation failed: " + strings.Join(msgs, "; ")
	default:
		return "zebedee: unknown error"
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrMalformedResponse:
		return e.Kind == KindMalformedResponse
	case ErrAPI:
		return e.Kind == KindAPI
	case ErrValidation:
		return e.Kind == KindValidation
	}
	return false
}

// IsNotFound checks if the error indicates a not found response
func (e *Error) IsNotFound() bool {
	return e.Kind == KindAPI && e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *Error) IsUnauthorized() bool {
	return e.Kind == KindAPI && (e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var zerr *Error
	if errors.As(err, &zerr) {
		return zerr, true
	}
	return nil, false
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Err: err}
}

func malformedError(status int, body []byte, err error) *Error {
	return &Error{
		Kind:       KindMalformedResponse,
		StatusCode: status,
		Body:       string(body),
		Err:        err,
	}
}

func apiError(status int, body []byte, message *string) *Error {
	msg := noMessageReturned
	if message != nil {
		msg = *message
	}
	return &Error{
		Kind:       KindAPI,
		StatusCode: status,
		Message:    msg,
		Body:       string(body),
	}
}

func validationError(violations []Violation) *Error {
	return &Error{Kind: KindValidation, Violations: violations}
}
