package mobiledriver

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spance/mobiledriver/constants"
	"github.com/spance/mobiledriver/mobiledriver/definitions"
	"github.com/spance/mobiledriver/mobiledriver/helper"
)

type State int

const (
	StateUninitialized State = iota
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session owns at most one driver handle at a time. It remembers the
// parameters of the last Start and applies the configured implicit wait to
// every handle before handing it out.
type Session struct {
	mu        sync.Mutex
	config    definitions.DriverConfig
	connector Connector

	traceID  string
	params   definitions.SessionParams
	platform constants.Platform
	driver   Driver
	state    State
}

type Option func(*Session)

// WithConnector replaces the WebDriver connector, mostly for tests.
func WithConnector(connector Connector) Option {
	return func(s *Session) {
		s.connector = connector
	}
}

func NewSession(cfg definitions.DriverConfig, opts ...Option) *Session {
	if cfg.BasePath == "" && cfg.URLTemplate == "" {
		cfg.BasePath = constants.DefaultBasePath
	}
	s := &Session{
		config:    cfg,
		connector: &RemoteConnector{Timeout: cfg.RequestTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a session on the remote server described by params and
// returns its handle once the implicit wait has been applied. It fails with
// definitions.ErrSessionActive while a previous handle is still held.
func (s *Session) Start(ctx context.Context, params definitions.SessionParams) (Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateActive {
		return nil, fmt.Errorf("start %s: %w", params.PlatformName, definitions.ErrSessionActive)
	}

	s.params = params
	s.platform = ""
	s.traceID = uuid.NewString()
	logger := log.With().Str("trace_id", s.traceID).Str("platform", params.PlatformName).Logger()

	platform, err := ParsePlatform(params.PlatformName)
	if err != nil {
		logger.Error().Err(err).Msg("[Start] rejected platform")
		return nil, err
	}
	s.platform = platform

	endpoint, err := RemoteURL(s.config, params.RemoteHost, params.RemotePort)
	if err != nil {
		logger.Error().Err(err).Str("host", params.RemoteHost).Str("port", params.RemotePort).Msg("[Start] bad remote address")
		return nil, err
	}

	driver, err := Dispatch(ctx, s.connector, endpoint, params, s.config.ExtraCapabilities)
	if err != nil {
		logger.Error().Err(err).Msg("[Start] failed to open session")
		return nil, err
	}

	if err := driver.SetImplicitWait(ctx, s.config.ImplicitWait); err != nil {
		logger.Error().Err(err).Str("session_id", driver.SessionID()).Msg("[Start] failed to apply implicit wait, quitting session")
		if quitErr := driver.Quit(context.WithoutCancel(ctx)); quitErr != nil {
			logger.Error().Err(quitErr).Msg("[Start] failed to quit session")
		}
		return nil, err
	}

	s.driver = driver
	s.state = StateActive

	logger.Info().Str("session_id", driver.SessionID()).Dur("implicit_wait", s.config.ImplicitWait).
		Msg(helper.StartedMessage(platform, params.AppPackage, s.config.Lang))
	return driver, nil
}

// Close quits the held session, if any, and drops the handle. The handle is
// released even when the remote quit fails; later calls are no-ops.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.driver == nil {
		log.Debug().Str("trace_id", s.traceID).Str("state", s.state.String()).Msg("[Close] no session held")
		return nil
	}

	driver := s.driver
	s.driver = nil
	s.state = StateClosed

	if err := driver.Quit(ctx); err != nil {
		log.Error().Err(err).Str("trace_id", s.traceID).Str("session_id", driver.SessionID()).Msg("[Close] quit failed")
		return err
	}

	log.Info().Str("trace_id", s.traceID).Str("session_id", driver.SessionID()).
		Msg(helper.ClosedMessage(s.params.PlatformName, s.config.Lang))
	return nil
}

// Driver returns the live handle, or nil when none is held.
func (s *Session) Driver() Driver {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driver
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TraceID identifies the last Start attempt in logs.
func (s *Session) TraceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traceID
}

// Platform is the platform resolved by the last Start, empty if it was rejected.
func (s *Session) Platform() constants.Platform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.platform
}

func (s *Session) Params() definitions.SessionParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *Session) PlatformName() string {
	return s.Params().PlatformName
}

func (s *Session) UDID() string {
	return s.Params().UDID
}

func (s *Session) AppPackage() string {
	return s.Params().AppPackage
}

func (s *Session) AppActivity() string {
	return s.Params().AppActivity
}

func (s *Session) AutomationName() string {
	return s.Params().AutomationName
}

func (s *Session) RemoteHost() string {
	return s.Params().RemoteHost
}

func (s *Session) RemotePort() string {
	return s.Params().RemotePort
}
