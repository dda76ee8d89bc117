package harvest

import (
	"errors"
	"fmt"
)

// Failure classes. ConnectionError and MalformedDocumentError match these
// with errors.Is.
var (
	ErrConnectionFailure = errors.New("connection failure")
	ErrMalformedDocument = errors.New("malformed document")
)

// Common static errors that can be wrapped with context.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnknownKind       = errors.New("unknown resource kind")
	ErrUnknownParent     = errors.New("unknown parent kind")
	ErrEmptyKindName     = errors.New("empty resource kind name")
	ErrKindConflict      = errors.New("conflicting resource kind registration")
	ErrNotPrimary        = errors.New("resource kind is not reachable from the client root")
	ErrNotNested         = errors.New("resource kind is not nested under parent kind")
	ErrKindMismatch      = errors.New("entity has an unexpected kind")
	ErrNoID              = errors.New("entity has no id")
	ErrNoFetcher         = errors.New("entity is not bound to a client")
	ErrConfigRequired    = errors.New("config is required")
	ErrBaseURLRequired   = errors.New("base URL is required")
	ErrCacheMiss         = errors.New("cache miss")
	ErrNATSConfigMissing = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCache  = errors.New("unsupported cache type")
)

// ConnectionError reports that the HTTP exchange could not be completed:
// network errors, refusals, timeouts and non-success statuses.
type ConnectionError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrConnectionFailure, e.Method, e.URL, e.Err)
}

// Unwrap returns the original cause.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is matches ErrConnectionFailure.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnectionFailure
}

// MalformedDocumentError reports a received body that is not a well-formed
// XML document.
type MalformedDocumentError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrMalformedDocument, e.URL, e.Err)
}

// Unwrap returns the parser error.
func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// Is matches ErrMalformedDocument.
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// StatusError is the cause of a ConnectionError raised by a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return "unexpected status " + e.Status
}

// CoercionError reports a typed value that could not be constructed. It is
// only returned in strict mode.
type CoercionError struct {
	Type AttrType
	Raw  string
	Err  error
}

// Error implements the error interface.
func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %q to %s: %v", e.Raw, e.Type, e.Err)
}

// Unwrap returns the conversion error.
func (e *CoercionError) Unwrap() error {
	return e.Err
}

// IsConnectionFailure checks if the error is a connection failure.
func IsConnectionFailure(err error) bool {
	return errors.Is(err, ErrConnectionFailure)
}

// IsMalformedDocument checks if the error is a malformed document failure.
func IsMalformedDocument(err error) bool {
	return errors.Is(err, ErrMalformedDocument)
}

// IsNotFound checks if the error means the resource does not exist, either
// because no element matched or because the server answered 404.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}

	code, ok := StatusCode(err)

	return ok && code == 404
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}

	return 0, false
}
