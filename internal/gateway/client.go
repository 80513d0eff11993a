// Package gateway is the typed client for the external AI/business HTTP API.
// Every call attaches a bearer credential when a session token is available,
// surfaces non-2xx responses as *APIError, and performs no retries or caching.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// APIError is the single error kind for non-2xx gateway responses. It carries
// the HTTP status and the server-supplied message so call sites can show it
// inline.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: %s (status %d)", e.Message, e.Status)
}

// TokenSource supplies the current session's bearer token. ok is false when
// no session exists; the Authorization header is then omitted entirely.
type TokenSource func(ctx context.Context) (token string, ok bool)

// Client issues authenticated calls against the AI/business backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// errorEnvelope matches the backend's failure body shape.
type errorEnvelope struct {
	Detail string `json:"detail"`
}

// post serializes body as JSON and decodes a 2xx response into out. Most
// endpoints take an object body; two take a bare string or array. body is
// marshalled as-is, so both shapes flow through the same path.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if token, ok := c.tokens(req.Context()); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", req.URL.Path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response from %s: %w", req.URL.Path, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var envelope errorEnvelope
		message := fmt.Sprintf("request failed (%d)", res.StatusCode)
		if json.Unmarshal(data, &envelope) == nil && envelope.Detail != "" {
			message = envelope.Detail
		}
		c.log.Warnf("Gateway call %s failed: status=%d message=%q", req.URL.Path, res.StatusCode, message)
		return &APIError{Status: res.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}
