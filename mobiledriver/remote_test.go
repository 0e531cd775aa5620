package mobiledriver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spance/mobiledriver/constants"
	"github.com/spance/mobiledriver/mobiledriver/definitions"
	"github.com/spance/mobiledriver/mobiledriver/webdriver"
	"github.com/spance/mobiledriver/mobiledriver/webdriver/webdrivertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRemoteSession(t *testing.T) (*Session, *webdrivertest.Server, definitions.SessionParams) {
	t.Helper()
	srv := webdrivertest.NewServer()
	t.Cleanup(srv.Close)

	host, port := srv.HostPort()
	params := androidParams()
	params.RemoteHost = host
	params.RemotePort = port

	session := NewSession(definitions.DriverConfig{
		ImplicitWait:   3 * time.Second,
		BasePath:       webdrivertest.BasePath,
		RequestTimeout: 5 * time.Second,
	})
	return session, srv, params
}

func TestRemoteSessionLifecycle(t *testing.T) {
	session, srv, params := newRemoteSession(t)
	ctx := context.Background()

	driver, err := session.Start(ctx, params)
	require.NoError(t, err)

	id := driver.SessionID()
	assert.Equal(t, "com.tencent.mm", srv.Capabilities(id)[constants.CapAppPackage])
	assert.Equal(t, "com.tencent.mm", driver.Capabilities()[constants.CapAppPackage])

	ms, ok := srv.ImplicitWait(id)
	require.True(t, ok)
	assert.Equal(t, int64(3000), ms)

	require.NoError(t, session.Close(ctx))
	require.NoError(t, session.Close(ctx))
	assert.Equal(t, []string{id}, srv.Deleted())
	assert.Equal(t, 0, srv.ActiveSessions())
}

func TestRemoteSessionRejected(t *testing.T) {
	session, srv, params := newRemoteSession(t)
	srv.SessionError = "session not created"

	_, err := session.Start(context.Background(), params)

	var serverErr *webdriver.ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, "session not created", serverErr.Code)
	assert.Equal(t, StateUninitialized, session.State())
}

func TestRemoteImplicitWaitRejectedQuitsSession(t *testing.T) {
	session, srv, params := newRemoteSession(t)
	srv.TimeoutsError = "invalid argument"

	_, err := session.Start(context.Background(), params)
	require.Error(t, err)

	assert.Equal(t, 0, srv.ActiveSessions())
	assert.Len(t, srv.Deleted(), 1)
}

func TestRemoteServerUnreachable(t *testing.T) {
	session, srv, params := newRemoteSession(t)
	srv.Close()

	_, err := session.Start(context.Background(), params)

	var connectErr *webdriver.ConnectError
	assert.True(t, errors.As(err, &connectErr))
}
