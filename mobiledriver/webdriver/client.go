package webdriver

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"github.com/spance/mobiledriver/utils"
)

// Client speaks the W3C WebDriver protocol, with the Appium extensions, to a
// remote automation server. It also understands legacy JSON Wire responses.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client rooted at baseURL, e.g.
// "http://127.0.0.1:4723/wd/hub". A nil httpClient gets a default client
// with the given timeout (no timeout when zero).
func NewClient(baseURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status reports whether the server is ready to create new sessions.
type Status struct {
	Ready   bool
	Message string
	Raw     map[string]any
}

// Status queries GET /status.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	resp, err := c.do(ctx, http.MethodGet, "/status", nil)
	if err != nil {
		return nil, err
	}

	value := utils.AnyToMap(resp.Value)
	status := &Status{Raw: value}
	if ready, ok := value["ready"]; ok {
		status.Ready = utils.AnyToBool(ready)
		status.Message = utils.AnyToString(value["message"])
	} else {
		// JSON Wire servers have no ready flag; answering at all means ready.
		status.Ready = true
	}
	return status, nil
}

// NewSession creates a session with caps as the alwaysMatch capabilities.
// The same set is sent as desiredCapabilities for JSON Wire servers.
func (c *Client) NewSession(ctx context.Context, caps map[string]any) (*Session, error) {
	body := map[string]any{
		"capabilities": map[string]any{
			"alwaysMatch": caps,
			"firstMatch":  []map[string]any{{}},
		},
		"desiredCapabilities": caps,
	}

	resp, err := c.do(ctx, http.MethodPost, "/session", body)
	if err != nil {
		return nil, err
	}

	value := utils.AnyToMap(resp.Value)
	id := utils.AnyToString(value["sessionId"])
	granted := utils.AnyToMap(value["capabilities"])
	if id == "" {
		id = resp.SessionID
		granted = value
	}
	if id == "" {
		return nil, &ServerError{HTTPStatus: http.StatusOK, Code: "invalid response", Message: "no session id in response", Err: ErrInvalidResponse}
	}

	log.Debug().Str("session_id", id).Str("url", c.baseURL).Msg("[NewSession] session created")
	return &Session{client: c, id: id, capabilities: granted}, nil
}

type response struct {
	SessionID string `json:"sessionId"`
	Status    *int   `json:"status"`
	Value     any    `json:"value"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*response, error) {
	url := c.baseURL + path

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("webdriver: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &ConnectError{Method: method, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	log.Debug().Str("cmd", fmt.Sprintf("[%s] %s", method, url)).Msg("")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("[do] request failed")
		return nil, &ConnectError{Method: method, URL: url, Err: err}
	}
	defer httpResp.Body.Close()

	var resp response
	if err := utils.DecodeJSON(httpResp.Body, &resp); err != nil {
		if httpResp.StatusCode >= http.StatusBadRequest {
			return nil, &ServerError{HTTPStatus: httpResp.StatusCode, Code: http.StatusText(httpResp.StatusCode)}
		}
		log.Error().Err(err).Str("url", url).Msg("[do] undecodable response")
		return nil, &ServerError{
			HTTPStatus: httpResp.StatusCode,
			Code:       "invalid response",
			Message:    fmt.Sprintf("decode %s %s: %v", method, path, err),
			Err:        ErrInvalidResponse,
		}
	}

	log.Debug().Int("status", httpResp.StatusCode).Str("output", utils.JsonString(resp.Value)).Msg("[do] response")

	if serverErr := responseError(httpResp.StatusCode, &resp); serverErr != nil {
		log.Error().Err(serverErr).Str("url", url).Msg("[do] server error")
		return nil, serverErr
	}
	return &resp, nil
}

func responseError(httpStatus int, resp *response) *ServerError {
	value := utils.AnyToMap(resp.Value)

	if code := utils.AnyToString(value["error"]); code != "" {
		return &ServerError{
			HTTPStatus: httpStatus,
			Code:       code,
			Message:    utils.AnyToString(value["message"]),
			Stacktrace: utils.AnyToString(value["stacktrace"]),
		}
	}
	if resp.Status != nil && *resp.Status != 0 {
		return &ServerError{
			HTTPStatus: httpStatus,
			Code:       strconv.Itoa(*resp.Status),
			Message:    utils.AnyToString(value["message"]),
		}
	}
	if httpStatus >= http.StatusBadRequest {
		return &ServerError{
			HTTPStatus: httpStatus,
			Code:       http.StatusText(httpStatus),
			Message:    utils.AnyToString(value["message"]),
		}
	}
	return nil
}
