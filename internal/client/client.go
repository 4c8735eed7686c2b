// Package client talks to the remote inventory REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/erazemk/popis/internal/model"
	"github.com/erazemk/popis/internal/session"
)

// DefaultTimeout bounds every request made by a Client.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 4 << 10

// Client is the HTTP transport shared by all API components.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Session *session.Session
}

// New returns a Client for baseURL. A zero timeout selects DefaultTimeout.
func New(baseURL string, timeout time.Duration, sess *session.Session) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Session: sess,
	}
}

// envelope is the response wrapper used by every endpoint.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// request describes one API call.
type request struct {
	method      string
	path        string
	auth        bool
	body        io.Reader
	contentType string
	accept      string
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(method, path string, auth bool, payload any) (request, error) {
	req := request{method: method, path: path, auth: auth}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return req, fmt.Errorf("encoding request: %w", err)
		}
		req.body = bytes.NewReader(data)
		req.contentType = "application/json"
	}
	return req, nil
}

// send performs r and returns the response after status mapping. The caller
// closes the body.
func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.BaseURL+r.path, r.body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	accept := r.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.auth {
		token, err := c.Session.Token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", model.ErrNetwork, r.method, r.path, err)
	}
	slog.Debug("api request", "method", r.method, "path", r.path, "status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Millisecond))

	if err := statusError(resp); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	return resp, nil
}

// do performs r and decodes the data member of the response envelope into
// out, if out is non-nil.
func (c *Client) do(ctx context.Context, r request, out any) (*envelope, error) {
	resp, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: decoding %s %s response: %w", model.ErrNetwork, r.method, r.path, err)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("%w: decoding %s %s data: %w", model.ErrNetwork, r.method, r.path, err)
		}
	}
	return &env, nil
}

// statusError maps a non-2xx response onto the error taxonomy.
func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := http.StatusText(resp.StatusCode)
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env envelope
	if json.Unmarshal(body, &env) == nil {
		if env.Error != "" {
			msg = env.Error
		} else if env.Message != "" {
			msg = env.Message
		}
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", model.ErrNotFound, msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", model.ErrValidation, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", model.ErrNetwork, resp.StatusCode, msg)
	}
}
