// Package api is the typed client for the remote task-list service. All
// endpoints except sign-in and account creation require a bearer token,
// sourced per request from the session layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// TokenSource supplies the current bearer token, or "" when signed out.
type TokenSource func() string

// RequestError is a non-2xx response from the service. The message comes
// from the body's "detail" field when present, the HTTP status line
// otherwise.
type RequestError struct {
	StatusCode int
	Detail     string
}

func (e *RequestError) Error() string {
	return e.Detail
}

// StatusCode extracts the HTTP status from an error chain, or 0 if the
// error did not come from a service response.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

// Client issues requests against the remote task-list service.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource TokenSource
}

// Option modifies the Client instance.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a Client for the given base URL. tokenSource may be nil for
// a client that only calls unauthenticated endpoints.
func New(baseURL string, tokenSource TokenSource, options ...Option) *Client {
	client := &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		tokenSource: tokenSource,
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// bearer returns the stored access token for standard authenticated calls.
func (c *Client) bearer() string {
	if c.tokenSource == nil {
		return ""
	}
	return c.tokenSource()
}

// do issues one request and decodes the response into out (when non-nil).
// token, when non-empty, is sent as a bearer Authorization header.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Client.do] marshalling request body")
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "[Client.do] building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[Client.do] %s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(resp),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "[Client.do] decoding %s %s response", method, path)
	}
	return nil
}

// errorDetail pulls the service's "detail" message out of an error
// response, falling back to the status line when the body does not parse.
func errorDetail(resp *http.Response) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
