// Package apperr defines the domain error taxonomy. Every error carries the
// HTTP status and the exact message shown to the client; the wrapped cause is
// only ever logged server-side.
package apperr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func Wrap(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Conflict(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// InvalidOTP covers both a wrong code and an expired one. The purge of
// pending rows makes the two indistinguishable and the merged message keeps
// it that way on purpose.
func InvalidOTP() *Error {
	return New(http.StatusBadRequest, "Invalid or expired OTP")
}

// InvalidCredentials is returned for unknown identity and wrong password
// alike, with one message, so login cannot be used to enumerate usernames.
func InvalidCredentials() *Error {
	return New(http.StatusUnauthorized, "Invalid credentials")
}

func NoToken() *Error {
	return New(http.StatusUnauthorized, "Authentication error: No refresh token provided")
}

func Forbidden() *Error {
	return New(http.StatusForbidden, "Forbidden: Invalid or expired refresh token")
}

func Delivery(err error) *Error {
	return Wrap(http.StatusInternalServerError, "Failed to send verification email", err)
}

func Persistence(err error) *Error {
	return Wrap(http.StatusInternalServerError, "Internal Server Error", err)
}

func Internal(err error) *Error {
	return Wrap(http.StatusInternalServerError, "Internal Server Error", err)
}
