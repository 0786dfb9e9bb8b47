// Package httperror carries a typed application error with an HTTP status
// code from service code out to the single terminal handler that writes the
// response. Every failure path in every handler raises one of these instead
// of a raw driver or library error.
package httperror

import (
	"errors"
	"net/http"
)

// HTTPError is the single error shape crossing handler boundaries.
type HTTPError struct {
	Message string `json:"message"`
	Code    int    `json:"-"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// New builds an HTTPError with an explicit status code.
func New(message string, code int) *HTTPError {
	return &HTTPError{Message: message, Code: code}
}

func BadRequest(message string) *HTTPError {
	return New(message, http.StatusBadRequest)
}

// Unauthorized maps to 401, used for ownership violations.
func Unauthorized(message string) *HTTPError {
	return New(message, http.StatusUnauthorized)
}

// Forbidden maps to 403, used for authentication failures.
func Forbidden(message string) *HTTPError {
	return New(message, http.StatusForbidden)
}

func NotFound(message string) *HTTPError {
	return New(message, http.StatusNotFound)
}

func UnprocessableEntity(message string) *HTTPError {
	return New(message, http.StatusUnprocessableEntity)
}

func Internal(message string) *HTTPError {
	return New(message, http.StatusInternalServerError)
}

// From extracts an HTTPError from err, falling back to a generic 500 so that
// no internal detail ever reaches a client.
func From(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code == 0 {
			httpErr.Code = http.StatusInternalServerError
		}
		return httpErr
	}
	return Internal("An unknown error occurred!")
}
