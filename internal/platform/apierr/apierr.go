package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a classified failure. Status doubles as the error kind: services
// raise it through the constructors below and the HTTP layer writes it as-is.
type Error struct {
	Status int
	Code   string
	Err    error
	Fields map[string]string
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

func NotFound(code, format string, args ...any) *Error {
	return New(http.StatusNotFound, code, fmt.Errorf(format, args...))
}

func Conflict(code, format string, args ...any) *Error {
	return New(http.StatusConflict, code, fmt.Errorf(format, args...))
}

func Invalid(code, format string, args ...any) *Error {
	return New(http.StatusBadRequest, code, fmt.Errorf(format, args...))
}

func Unauthorized(code, format string, args ...any) *Error {
	return New(http.StatusUnauthorized, code, fmt.Errorf(format, args...))
}

func Forbidden(code, format string, args ...any) *Error {
	return New(http.StatusForbidden, code, fmt.Errorf(format, args...))
}

// WithFields attaches per-field validation messages.
func (e *Error) WithFields(fields map[string]string) *Error {
	e.Fields = fields
	return e
}

// As returns the classified error in err's chain, if any.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae, true
	}
	return nil, false
}

// StatusOf reports the HTTP status for err; unclassified errors are 500.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if ae, ok := As(err); ok && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool     { return StatusOf(err) == http.StatusNotFound }
func IsConflict(err error) bool     { return StatusOf(err) == http.StatusConflict }
func IsInvalid(err error) bool      { return StatusOf(err) == http.StatusBadRequest }
func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }
