package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to API clients. Every recoverable failure in the
// plan pipeline maps onto one of these.
const (
	CodeValidation               = "validation_error"
	CodeNotFound                 = "not_found"
	CodeInsufficientWindow       = "insufficient_window"
	CodeInsufficientAvailability = "insufficient_availability"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func InsufficientWindow(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeInsufficientWindow, fmt.Errorf(format, args...))
}

func InsufficientAvailability(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeInsufficientAvailability, fmt.Errorf(format, args...))
}

// StatusOf resolves the HTTP status for err, defaulting to 500 for
// anything outside the taxonomy.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// CodeOf resolves the taxonomy code for err, empty for foreign errors.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
