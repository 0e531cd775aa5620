package mobiledriver

import (
	"context"
	"errors"
	"time"

	"github.com/spance/mobiledriver/mobiledriver/definitions"
)

type fakeDriver struct {
	id           string
	caps         map[string]any
	implicitWait time.Duration
	waitErr      error
	quitErr      error
	quitCtxErr   error
	onWait       func()
	calls        []string
}

func (d *fakeDriver) SessionID() string            { return d.id }
func (d *fakeDriver) Capabilities() map[string]any { return d.caps }

func (d *fakeDriver) SetImplicitWait(_ context.Context, wait time.Duration) error {
	d.calls = append(d.calls, "wait")
	if d.onWait != nil {
		d.onWait()
	}
	if d.waitErr != nil {
		return d.waitErr
	}
	d.implicitWait = wait
	return nil
}

func (d *fakeDriver) Quit(ctx context.Context) error {
	d.calls = append(d.calls, "quit")
	d.quitCtxErr = ctx.Err()
	return d.quitErr
}

// fakeConnector records every connect and hands out fakeDrivers.
type fakeConnector struct {
	err       error
	endpoints []string
	caps      []definitions.Capabilities
	drivers   []*fakeDriver
	prepare   func(*fakeDriver)
}

func (c *fakeConnector) Connect(_ context.Context, endpoint string, caps definitions.Capabilities) (Driver, error) {
	c.endpoints = append(c.endpoints, endpoint)
	c.caps = append(c.caps, caps)
	if c.err != nil {
		return nil, c.err
	}
	d := &fakeDriver{id: "fake-" + string(rune('a'+len(c.drivers))), caps: caps}
	if c.prepare != nil {
		c.prepare(d)
	}
	c.drivers = append(c.drivers, d)
	return d, nil
}

var errBoom = errors.New("boom")
