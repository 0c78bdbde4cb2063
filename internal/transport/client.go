// Package transport provides the HTTP client used for metadata API calls.
package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/logging"
)

// Client provides HTTP client functionality with authentication.
type Client struct {
	http   *http.Client
	auth   Authenticator
	apiKey string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithAPIKey sets the key passed to the authenticator.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http: &http.Client{Timeout: constants.DefaultHTTPTimeout},
		auth: auth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.apiKey != "" {
		c.auth.Apply(req, c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	return c.http.Do(req)
}

// Get performs a GET request. Failures are reported as NetworkError.
func (c *Client) Get(ctx context.Context, url, operation string) (*http.Response, error) {
	ctx = logging.WithOperation(ctx, operation)
	log := logging.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapNetwork(operation, err)
	}
	start := time.Now()
	resp, err := c.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("request failed")
		return nil, errors.WrapNetwork(operation, err)
	}
	log.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("request completed")
	return resp, nil
}
