package definitions

import "errors"

var (
	// ErrInvalidPlatform is returned for platform names no capability builder
	// is registered for.
	ErrInvalidPlatform = errors.New("invalid platform")
	// ErrMalformedURL is returned when the remote server address cannot be
	// turned into a valid URL.
	ErrMalformedURL = errors.New("malformed remote url")
	// ErrSessionActive is returned by Start while a handle is still held.
	ErrSessionActive = errors.New("session already active")
)
