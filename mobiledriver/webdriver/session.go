package webdriver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// Session is a live session on the remote server.
type Session struct {
	client       *Client
	id           string
	capabilities map[string]any
}

func (s *Session) SessionID() string {
	return s.id
}

// Capabilities returns the capabilities the server granted.
func (s *Session) Capabilities() map[string]any {
	return s.capabilities
}

// SetImplicitWait sets how long element lookups poll before failing.
func (s *Session) SetImplicitWait(ctx context.Context, d time.Duration) error {
	body := map[string]any{"implicit": d.Milliseconds()}
	if _, err := s.client.do(ctx, http.MethodPost, s.path("/timeouts"), body); err != nil {
		return fmt.Errorf("set implicit wait: %w", err)
	}
	log.Debug().Str("session_id", s.id).Dur("implicit_wait", d).Msg("[SetImplicitWait] applied")
	return nil
}

// Quit deletes the session on the server.
func (s *Session) Quit(ctx context.Context) error {
	if _, err := s.client.do(ctx, http.MethodDelete, s.path(""), nil); err != nil {
		return fmt.Errorf("quit session %s: %w", s.id, err)
	}
	log.Debug().Str("session_id", s.id).Msg("[Quit] session deleted")
	return nil
}

func (s *Session) path(suffix string) string {
	return "/session/" + url.PathEscape(s.id) + suffix
}
