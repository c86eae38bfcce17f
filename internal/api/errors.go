package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

var (
	// ErrNotFound is returned for a line, station or train type the
	// provider does not know
	ErrNotFound = errors.New("not found")

	// ErrInvalidRequest is a 4xx reply other than not found or timeout
	ErrInvalidRequest = errors.New("invalid request")

	// ErrServerError is a 5xx or rate limited reply; retrying later may help
	ErrServerError = errors.New("station-data service unavailable")

	// ErrTimeout covers both a canceled context and a 408/504 reply
	ErrTimeout = errors.New("request timed out")

	// ErrNoResults is a successful reply with an empty body
	ErrNoResults = errors.New("no results")

	// ErrBadDataset marks a dataset file that cannot be served
	ErrBadDataset = errors.New("bad dataset")
)

// APIError is a non-200 reply from the station-data API. RequestID is the
// correlation id sent with the request, for matching server logs.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	reason := e.Message
	if reason == "" {
		reason = http.StatusText(e.StatusCode)
	}
	msg := fmt.Sprintf("station-data API %s returned %d: %s", e.Endpoint, e.StatusCode, reason)
	if e.RequestID != "" {
		msg += " (request " + e.RequestID + ")"
	}
	return msg
}

// Is matches the sentinel for the status code
func (e *APIError) Is(target error) bool {
	kind := e.kind()
	return kind != nil && kind == target
}

func (e *APIError) kind() error {
	switch code := e.StatusCode; {
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusRequestTimeout, code == http.StatusGatewayTimeout:
		return ErrTimeout
	case code == http.StatusTooManyRequests, code >= 500:
		return ErrServerError
	case code >= 400:
		return ErrInvalidRequest
	}
	return nil
}

// ValidationError rejects an id, flag or dataset field before any lookup
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func invalidID(field string, id int64) error {
	return &ValidationError{Field: field, Value: strconv.FormatInt(id, 10), Reason: "must be a positive id"}
}

func notAnID(field, value string) error {
	return &ValidationError{Field: field, Value: value, Reason: "not a numeric id"}
}

func missingField(field string) error {
	return &ValidationError{Field: field, Reason: "missing"}
}
