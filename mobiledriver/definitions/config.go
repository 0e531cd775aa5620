package definitions

import "time"

// DriverConfig holds the settings the session facade applies to every
// session it opens.
type DriverConfig struct {
	// ImplicitWait is how long the server polls for elements before failing.
	ImplicitWait time.Duration
	// Lang selects the language of lifecycle log lines ("cn" or "en").
	Lang string

	Scheme      string
	BasePath    string
	URLTemplate string

	// RequestTimeout bounds a single HTTP exchange with the remote server.
	RequestTimeout time.Duration

	ExtraCapabilities map[string]any
}
