// Package client is a typed HTTP client for the restaurant API. It is used by
// the web front end and decodes the {success, ...} envelope of every route.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is a failed call: a non-2xx status or {success:false}.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// ErrInProgress is returned for a create whose Idempotency-Key belongs to a
// request the API is still working on (202). The resource will appear once
// that request finishes.
var ErrInProgress = errors.New("request already in progress")

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

// Client calls the API at BaseURL.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a Client for baseURL such as "http://localhost:3001".
// A nil httpClient gets a client with a 10s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTPClient: httpClient}
}

// call is one API request. Key names the envelope field decoded into Out.
type call struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
	Key     string
	Out     interface{}
}

func (c *Client) do(ctx context.Context, cl call) error {
	u := c.BaseURL + cl.Path
	if q := cl.Query.Encode(); q != "" {
		u += "?" + q
	}

	var body io.Reader
	if cl.Body != nil {
		b, err := json.Marshal(cl.Body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, cl.Method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range cl.Headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", cl.Method, cl.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	var success bool
	_ = json.Unmarshal(env["success"], &success)
	if resp.StatusCode >= 300 || !success {
		var msg string
		_ = json.Unmarshal(env["error"], &msg)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if resp.StatusCode == http.StatusAccepted {
		return ErrInProgress
	}
	if cl.Out == nil {
		return nil
	}
	if cl.Key == "" {
		return json.Unmarshal(raw, cl.Out)
	}
	field, ok := env[cl.Key]
	if !ok {
		return fmt.Errorf("response has no %q field", cl.Key)
	}
	if err := json.Unmarshal(field, cl.Out); err != nil {
		return fmt.Errorf("decode %s: %w", cl.Key, err)
	}
	return nil
}

func pathOf(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return "/api/" + strings.Join(escaped, "/")
}

func query(pairs ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			q.Set(pairs[i], pairs[i+1])
		}
	}
	return q
}
