// Package webdrivertest provides an in-memory automation server that speaks
// enough of the WebDriver protocol to open, configure and quit sessions.
package webdrivertest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	json "github.com/bytedance/sonic"
	"github.com/spance/mobiledriver/utils"
)

const BasePath = "/wd/hub"

// Server is a fake automation server. Configure the exported fields before
// the first request.
type Server struct {
	*httptest.Server

	// Legacy makes the server answer with JSON Wire shaped responses.
	Legacy bool
	// SessionError, when set, is returned as the W3C error code for every
	// new session request.
	SessionError string
	// TimeoutsError, when set, is returned for every timeouts request.
	TimeoutsError string

	mu            sync.Mutex
	nextID        int
	sessions      map[string]map[string]any
	implicitWaits map[string]int64
	deleted       []string
}

func NewServer() *Server {
	s := &Server{
		sessions:      make(map[string]map[string]any),
		implicitWaits: make(map[string]int64),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Endpoint is the base URL clients should be pointed at.
func (s *Server) Endpoint() string {
	return s.URL + BasePath
}

// HostPort splits the listener address into host and port strings.
func (s *Server) HostPort() (string, string) {
	addr := strings.TrimPrefix(s.URL, "http://")
	i := strings.LastIndex(addr, ":")
	return addr[:i], addr[i+1:]
}

func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Capabilities returns the alwaysMatch capabilities a session was created with.
func (s *Server) Capabilities(id string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// ImplicitWait returns the implicit wait in milliseconds last set on a session.
func (s *Server) ImplicitWait(id string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ms, ok := s.implicitWaits[id]
	return ms, ok
}

// Deleted lists the ids of quit sessions in order.
func (s *Server) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, BasePath)
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case r.Method == http.MethodGet && path == "/status":
		writeJSON(w, http.StatusOK, map[string]any{
			"value": map[string]any{"ready": true, "message": "fake server is ready"},
		})
	case r.Method == http.MethodPost && path == "/session":
		s.newSession(w, r)
	case r.Method == http.MethodPost && len(parts) == 3 && parts[0] == "session" && parts[2] == "timeouts":
		s.setTimeouts(w, r, parts[1])
	case r.Method == http.MethodDelete && len(parts) == 2 && parts[0] == "session":
		s.deleteSession(w, parts[1])
	default:
		writeError(w, http.StatusNotFound, "unknown command", fmt.Sprintf("%s %s", r.Method, r.URL.Path))
	}
}

func (s *Server) newSession(w http.ResponseWriter, r *http.Request) {
	if s.SessionError != "" {
		writeError(w, http.StatusInternalServerError, s.SessionError, "session could not be created")
		return
	}

	var body map[string]any
	if err := utils.DecodeJSON(r.Body, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid argument", err.Error())
		return
	}
	caps := utils.AnyToMap(utils.AnyToMap(body["capabilities"])["alwaysMatch"])

	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("session-%d", s.nextID)
	s.sessions[id] = caps
	s.mu.Unlock()

	if s.Legacy {
		writeJSON(w, http.StatusOK, map[string]any{"status": 0, "sessionId": id, "value": caps})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"value": map[string]any{"sessionId": id, "capabilities": caps},
	})
}

func (s *Server) setTimeouts(w http.ResponseWriter, r *http.Request, id string) {
	if s.TimeoutsError != "" {
		writeError(w, http.StatusBadRequest, s.TimeoutsError, "timeouts rejected")
		return
	}

	var body map[string]any
	if err := utils.DecodeJSON(r.Body, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid argument", err.Error())
		return
	}
	implicit, ok := body["implicit"].(float64)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid argument", "implicit must be a number")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		writeError(w, http.StatusNotFound, "invalid session id", id)
		return
	}
	s.implicitWaits[id] = int64(implicit)
	writeJSON(w, http.StatusOK, map[string]any{"value": nil})
}

func (s *Server) deleteSession(w http.ResponseWriter, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		writeError(w, http.StatusNotFound, "invalid session id", id)
		return
	}
	delete(s.sessions, id)
	s.deleted = append(s.deleted, id)
	writeJSON(w, http.StatusOK, map[string]any{"value": nil})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"value": map[string]any{"error": code, "message": message, "stacktrace": ""},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, _ := json.Marshal(v)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
