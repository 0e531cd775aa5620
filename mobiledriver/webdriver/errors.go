package webdriver

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse is returned when the server answers with a body that
// does not follow the WebDriver response shape.
var ErrInvalidResponse = errors.New("invalid webdriver response")

// ConnectError reports a failure to reach the remote server at all.
type ConnectError struct {
	Method string
	URL    string
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("webdriver: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// ServerError is a WebDriver error returned by the remote server, either as a
// W3C error object, a legacy non-zero JSON Wire status or a body that is not a
// WebDriver response at all.
type ServerError struct {
	HTTPStatus int
	// Code is the W3C error code, e.g. "session not created". Legacy
	// responses carry their numeric status here instead.
	Code       string
	Message    string
	Stacktrace string
	// Err is ErrInvalidResponse when the body could not be understood.
	Err error
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("webdriver: server error %d: %s", e.HTTPStatus, e.Code)
	}
	return fmt.Sprintf("webdriver: server error %d: %s: %s", e.HTTPStatus, e.Code, e.Message)
}

func (e *ServerError) Unwrap() error {
	return e.Err
}
