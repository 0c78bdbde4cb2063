// Package omdb is a thin client for the OMDb search and title endpoints.
// Payloads are returned as sent; normalization happens in pkg/catalog.
package omdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/agentstation/marquee/internal/transport"
	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/logging"
)

// Query selects one search page.
type Query struct {
	Term string
	Type string
	Year int // 0 means any year
	Page int
}

// Client calls the metadata API.
type Client struct {
	transport *transport.Client
	baseURL   string
}

// NewClient creates a client for baseURL authenticated with apiKey.
// An empty baseURL uses the public endpoint.
func NewClient(baseURL, apiKey string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}
	return &Client{
		transport: transport.New(
			&transport.QueryAuth{Param: constants.APIKeyParam},
			transport.WithAPIKey(apiKey),
			transport.WithHTTPClient(hc),
		),
		baseURL: baseURL,
	}
}

// Search fetches one search page. A payload whose Response is "False" is
// reported as a NetworkError carrying the API's message.
func (c *Client) Search(ctx context.Context, q Query) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("s", q.Term)
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	if q.Year > 0 {
		params.Set("y", strconv.Itoa(q.Year))
	}
	params.Set("page", strconv.Itoa(q.Page))

	logging.FromContext(ctx).Debug().
		Str("term", q.Term).
		Int("page", q.Page).
		Msg("searching catalog")

	var out SearchResponse
	if err := c.get(ctx, params, "search", &out); err != nil {
		return nil, err
	}
	if failed(out.Response) {
		return nil, errors.NewNetworkError("search", 0, out.Error)
	}
	return &out, nil
}

// Detail fetches the short-plot record for id together with its raw payload.
func (c *Client) Detail(ctx context.Context, id string) (*Detail, json.RawMessage, error) {
	params := url.Values{}
	params.Set("i", id)
	params.Set("plot", "short")

	var raw json.RawMessage
	if err := c.get(ctx, params, "detail", &raw); err != nil {
		return nil, nil, err
	}

	var out Detail
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, nil, &errors.NetworkError{Operation: "detail", Message: "malformed response body", Err: err}
	}
	if failed(out.Response) {
		return nil, nil, errors.NewNetworkError("detail", 0, out.Error)
	}
	return &out, raw, nil
}

func (c *Client) get(ctx context.Context, params url.Values, operation string, target any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return errors.NewConfigError("omdb", "invalid base URL", err)
	}
	q := u.Query()
	for k, v := range params {
		q[k] = v
	}
	u.RawQuery = q.Encode()

	resp, err := c.transport.Get(ctx, u.String(), operation)
	if err != nil {
		return err
	}
	return transport.DecodeResponse(resp, target, operation)
}
