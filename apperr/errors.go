package apperr

import (
	"errors"
	"net/http"
)

// Error is a caller-facing error with a fixed HTTP status. Anything that is
// not an *Error is treated as an unexpected internal failure by the handlers.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) *Error {
	if msg == "" {
		msg = "Unauthorized"
	}
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// As unwraps err into an *Error if it is one.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Status == http.StatusNotFound
}

// IsBadRequest reports whether err is a BadRequest error.
func IsBadRequest(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Status == http.StatusBadRequest
}
