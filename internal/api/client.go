package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kalpyotish/kalp-admin/internal/logging"
)

// Client wraps HTTP calls to the Kalpyotish REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new API client. Requests have no deadline unless a
// timeout is given.
func NewClient(baseURL string, timeout ...time.Duration) *Client {
	httpClient := &http.Client{}
	if len(timeout) > 0 && timeout[0] > 0 {
		httpClient.Timeout = timeout[0]
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logging.Discard(),
	}
}

// SetToken updates the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SetLogger routes request logs to l.
func (c *Client) SetLogger(l *slog.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	c.logger = l
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do executes an HTTP request and returns the raw response body of a 2xx
// response. Every failure is an *Error.
func (c *Client) do(method, path, contentType string, body io.Reader) ([]byte, int, error) {
	start := time.Now()
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, transportError(fmt.Errorf("create request: %w", err))
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "method", method, "path", path, "kind", KindTransport, "err", err)
		return nil, 0, transportError(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, transportError(fmt.Errorf("read response: %w", err))
	}

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := extractAPIErrorBody(respBody)
		apiErr := serverError(resp.StatusCode, msg)
		c.logger.Warn("api request rejected", "method", method, "path", path, "status", resp.StatusCode, "kind", KindServer, "message", apiErr.Message)
		return nil, resp.StatusCode, apiErr
	}

	return respBody, resp.StatusCode, nil
}

// get performs a GET request.
func (c *Client) get(path string) ([]byte, int, error) {
	return c.do(http.MethodGet, path, "", nil)
}

// postJSON performs a POST request with a JSON body.
func (c *Client) postJSON(path string, body any) ([]byte, int, error) {
	return c.sendJSON(http.MethodPost, path, body)
}

// patchJSON performs a PATCH request with a JSON body.
func (c *Client) patchJSON(path string, body any) ([]byte, int, error) {
	return c.sendJSON(http.MethodPatch, path, body)
}

// del performs a DELETE request.
func (c *Client) del(path string) ([]byte, int, error) {
	return c.do(http.MethodDelete, path, "", nil)
}

func (c *Client) sendJSON(method, path string, body any) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, transportError(fmt.Errorf("marshal body: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}
	return c.do(method, path, "application/json", reqBody)
}

// --- Envelope ---

// envelope is the { data?, success?, message? } shape every endpoint uses.
type envelope struct {
	Data    Value  `json:"data"`
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

// decodeEnvelope parses a 2xx body. An empty body is an empty envelope and an
// explicit success=false is a server error carrying the message.
func decodeEnvelope(status int, data []byte) (envelope, error) {
	var env envelope
	if len(bytes.TrimSpace(data)) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return env, decodeError(err)
	}
	if env.Success != nil && !*env.Success {
		msg := strings.TrimSpace(env.Message)
		if msg == "" {
			msg = "An unknown error occurred."
		}
		return env, serverError(status, msg)
	}
	return env, nil
}

func extractAPIErrorBody(body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}

	if msg, ok := parseErrorValue(payload["message"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["error"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["detail"]); ok {
		return msg, true
	}
	return "", false
}

func parseErrorValue(raw any) (string, bool) {
	switch value := raw.(type) {
	case string:
		msg := strings.TrimSpace(value)
		if msg == "" {
			return "", false
		}
		return msg, true
	case map[string]any:
		if nested, ok := parseErrorValue(value["error"]); ok {
			return nested, true
		}
		code, _ := value["code"].(string)
		message, _ := value["message"].(string)
		return formatAPIError(code, message)
	}
	return "", false
}

func formatAPIError(code, message string) (string, bool) {
	code = strings.TrimSpace(code)
	message = strings.TrimSpace(message)
	switch {
	case code != "" && message != "":
		return fmt.Sprintf("%s: %s", code, message), true
	case code != "":
		return code, true
	case message != "":
		return message, true
	default:
		return "", false
	}
}
