package lostfound

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Static errors for err113 compliance.
var (
	ErrNoTokenReceived = errors.New("no token received")
	ErrSignupRejected  = errors.New("signup rejected")
	ErrNoData          = errors.New("response envelope has no data")
	ErrEmptyBody       = errors.New("response body is empty")
)

// TransportError is returned when a request could not be completed at the
// transport level. It is the only failure the dispatcher produces.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request failed because its deadline passed.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(e.Err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// AuthenticationError is returned when sign-in produced no usable token,
// regardless of the HTTP status the server answered with.
type AuthenticationError struct {
	Email      string
	StatusCode int
	Message    string

	// SignupStatus is set when the failed sign-in followed a signup the
	// server did not accept.
	SignupStatus int
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	msg := "authentication failed: " + ErrNoTokenReceived.Error()

	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d", msg, e.StatusCode)
		if e.Message != "" {
			msg += ": " + e.Message
		}

		msg += ")"
	}

	if e.SignupStatus != 0 {
		msg = fmt.Sprintf("%s after signup returned %d", msg, e.SignupStatus)
	}

	return msg
}

// Unwrap lets errors.Is match ErrNoTokenReceived.
func (e *AuthenticationError) Unwrap() error {
	return ErrNoTokenReceived
}

// SignupError is returned by a strict test-user factory when the signup call
// is not accepted.
type SignupError struct {
	Email      string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *SignupError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("signup for %s failed with status %d", e.Email, e.StatusCode)
	}

	return fmt.Sprintf("signup for %s failed with status %d: %s", e.Email, e.StatusCode, e.Message)
}

// Unwrap lets errors.Is match ErrSignupRejected.
func (e *SignupError) Unwrap() error {
	return ErrSignupRejected
}

// IsTransport checks if the error is a transport failure.
func IsTransport(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}

// IsAuthentication checks if the error is an authentication failure.
func IsAuthentication(err error) bool {
	authErr := &AuthenticationError{}

	return errors.As(err, &authErr)
}
