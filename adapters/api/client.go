package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rejectconsole/internal/errors"
)

const methodPrefix = "/api/method/rejection_analysis.api."

// Client is a thin RPC client for the quality backend. Every call is a
// GET or POST to /api/method/rejection_analysis.api.<fn> with token auth;
// responses arrive wrapped in a {"message": ...} envelope.
type Client struct {
	baseURL   string
	apiKey    string
	apiSecret string
	http      *http.Client
}

// NewClient builds a client for the backend at baseURL. Timeout bounds
// each call end to end; zero means 30 seconds.
func NewClient(baseURL, apiKey, apiSecret string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		apiSecret: apiSecret,
		http:      &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Message json.RawMessage `json:"message"`
	Exc     string          `json:"exception,omitempty"`
}

// Get calls a read method with query parameters and decodes the message
// payload into out.
func (c *Client) Get(ctx context.Context, method string, params url.Values, out any) error {
	endpoint := c.baseURL + methodPrefix + method
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build backend request")
	}
	return c.do(req, method, out)
}

// Post calls a write method with a JSON body and decodes the message
// payload into out. A nil out discards the response payload.
func (c *Client) Post(ctx context.Context, method string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode backend request")
		}
		reader = strings.NewReader(string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+methodPrefix+method, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build backend request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, method, out)
}

func (c *Client) do(req *http.Request, method string, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s:%s", c.apiKey, c.apiSecret))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.BackendError(fmt.Sprintf("backend call %s failed", method), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return errors.BackendError(fmt.Sprintf("failed to read backend response for %s", method), err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.Unauthorized("backend rejected API credentials")
	case resp.StatusCode == http.StatusNotFound:
		return errors.NotFound(method)
	case resp.StatusCode >= 400:
		return errors.BackendError(fmt.Sprintf("backend call %s returned status %d", method, resp.StatusCode), nil)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return errors.BackendError(fmt.Sprintf("failed to decode backend response for %s", method), err)
	}
	if env.Exc != "" {
		return errors.BackendError(fmt.Sprintf("backend call %s raised: %s", method, env.Exc), nil)
	}
	if out == nil || len(env.Message) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Message, out); err != nil {
		return errors.BackendError(fmt.Sprintf("failed to decode backend payload for %s", method), err)
	}
	return nil
}
