// Package apperror defines the failure kinds produced while handling a
// webhook and the single translation from kind to HTTP status.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failure.
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindConfiguration Kind = "CONFIGURATION"
	KindAPI           Kind = "API"
	KindParsing       Kind = "PARSING"
)

// Error is a failure with a kind attached.
type Error struct {
	Kind    Kind
	Message string
	Err     error
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

// Validation reports a malformed or incomplete inbound payload.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Parsing reports a value that could not be extracted from an accepted payload.
func Parsing(err error, format string, args ...any) *Error {
	return &Error{Kind: KindParsing, Message: fmt.Sprintf(format, args...), Err: err}
}

// MissingConfiguration names every required setting that is absent.
func MissingConfiguration(keys []string) *Error {
	return &Error{
		Kind:    KindConfiguration,
		Message: "missing " + strings.Join(keys, ", "),
	}
}

// APIError is a failed call to an external service. Either Status is set
// (the service answered outside 2xx) or Transport is (no answer at all).
type APIError struct {
	Service   string
	Status    int
	Body      string
	Transport string
}

func (e *APIError) Error() string {
	if e.IsTransport() {
		return fmt.Sprintf("[API Request Failed] %s: %s", e.Service, e.Transport)
	}
	return fmt.Sprintf("[API Request Failed] %s: %d - %s", e.Service, e.Status, e.Body)
}

// IsTransport reports whether the request never produced a response.
func (e *APIError) IsTransport() bool {
	return e.Status == 0
}

// KindOf returns the kind of err. Errors that carry no kind are treated as
// parsing failures.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return KindAPI
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindParsing
}

// StatusCode maps err to the status returned to the webhook sender.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if KindOf(err) == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
