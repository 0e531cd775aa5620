package mobiledriver

import (
	"context"
	"net/http"
	"time"

	"github.com/spance/mobiledriver/mobiledriver/definitions"
	"github.com/spance/mobiledriver/mobiledriver/webdriver"
)

// Driver is a handle on a live session of the remote automation server.
type Driver interface {
	SessionID() string
	Capabilities() map[string]any
	SetImplicitWait(ctx context.Context, d time.Duration) error
	Quit(ctx context.Context) error
}

// Connector opens sessions on a remote automation server.
type Connector interface {
	Connect(ctx context.Context, endpoint string, caps definitions.Capabilities) (Driver, error)
}

// ConnectorFunc adapts a function to the Connector interface.
type ConnectorFunc func(ctx context.Context, endpoint string, caps definitions.Capabilities) (Driver, error)

func (f ConnectorFunc) Connect(ctx context.Context, endpoint string, caps definitions.Capabilities) (Driver, error) {
	return f(ctx, endpoint, caps)
}

// RemoteConnector opens sessions over the WebDriver protocol.
type RemoteConnector struct {
	HTTPClient *http.Client
	Timeout    time.Duration
}

func (c *RemoteConnector) Connect(ctx context.Context, endpoint string, caps definitions.Capabilities) (Driver, error) {
	session, err := webdriver.NewClient(endpoint, c.HTTPClient, c.Timeout).NewSession(ctx, caps)
	if err != nil {
		return nil, err
	}
	return session, nil
}
