// Package catalog browses the movie catalog one page at a time. A search
// returns at most one page of hits, which are enriched concurrently into
// full records.
package catalog

import (
	"context"
	"net/http"

	"github.com/agentstation/marquee/internal/omdb"
	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/logging"
	"github.com/agentstation/marquee/pkg/movies"
)

// ErrNoMorePages is returned by LoadMore once the cursor is exhausted.
var ErrNoMorePages = errors.New("no more pages")

// API is the subset of the metadata API the catalog needs.
type API interface {
	DetailFetcher
	Search(ctx context.Context, q omdb.Query) (*omdb.SearchResponse, error)
}

// Client searches the catalog.
type Client struct {
	api      API
	enricher *Enricher
	term     string
	kind     string
	year     int
}

// Option configures a Client.
type Option func(*Client)

// WithTerm sets the search term.
func WithTerm(term string) Option {
	return func(c *Client) {
		if term != "" {
			c.term = term
		}
	}
}

// WithType restricts results to a title type. Empty means any type.
func WithType(kind string) Option {
	return func(c *Client) {
		c.kind = kind
	}
}

// WithYear restricts results to a release year. Zero means any year.
func WithYear(year int) Option {
	return func(c *Client) {
		c.year = year
	}
}

// NewClient creates a catalog client over api.
func NewClient(api API, opts ...Option) *Client {
	c := &Client{
		api:      api,
		enricher: NewEnricher(api),
		term:     constants.DefaultSearchTerm,
		kind:     constants.DefaultSearchType,
		year:     constants.DefaultSearchYear,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// New creates a catalog client talking to the metadata API at baseURL.
func New(baseURL, apiKey string, hc *http.Client, opts ...Option) *Client {
	return NewClient(omdb.NewClient(baseURL, apiKey, hc), opts...)
}

// Search fetches and enriches one page. The cursor is updated only when the
// search succeeds. Each call hits the network; nothing is cached.
func (c *Client) Search(ctx context.Context, cursor *Cursor, page int) (*movies.Page, error) {
	if page < 1 {
		return nil, errors.NewValidationError("page", page, "must be at least 1")
	}
	if cursor == nil {
		return nil, errors.NewValidationError("cursor", nil, "is required")
	}
	ctx = logging.WithPage(ctx, page)

	resp, err := c.api.Search(ctx, omdb.Query{Term: c.term, Type: c.kind, Year: c.year, Page: page})
	if err != nil {
		return nil, err
	}

	total := parseTotal(resp.TotalResults)
	items := c.enricher.Enrich(ctx, pageHits(resp.Search))

	cursor.advance(page, total)

	logging.FromContext(ctx).Debug().
		Int("items", len(items)).
		Int("total_results", total).
		Msg("catalog page loaded")

	return &movies.Page{
		Number:       page,
		Items:        items,
		TotalResults: total,
		HasMore:      hasMore(page, total),
	}, nil
}

// LoadMore fetches the page after the cursor's current page.
func (c *Client) LoadMore(ctx context.Context, cursor *Cursor) (*movies.Page, error) {
	state := cursor.Snapshot()
	if state.CurrentPage > 0 && !state.HasMore {
		return nil, ErrNoMorePages
	}
	return c.Search(ctx, cursor, state.CurrentPage+1)
}

// Refresh resets the cursor and fetches the first page.
func (c *Client) Refresh(ctx context.Context, cursor *Cursor) (*movies.Page, error) {
	cursor.Reset()
	return c.Search(ctx, cursor, 1)
}

// Detail fetches one title by id without degrading on failure.
func (c *Client) Detail(ctx context.Context, id string) (*movies.Movie, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", id, "is required")
	}
	d, raw, err := c.api.Detail(logging.WithMovie(ctx, id), id)
	if err != nil {
		return nil, err
	}
	m := fromDetail(d, raw)
	if m.ID == "" {
		m.ID = id
	}
	return &m, nil
}

// pageHits drops repeated ids and caps the page at the fixed page size.
func pageHits(hits []omdb.SearchHit) []omdb.SearchHit {
	seen := make(map[string]bool, len(hits))
	out := make([]omdb.SearchHit, 0, min(len(hits), constants.PageSize))
	for _, h := range hits {
		if len(out) == constants.PageSize {
			break
		}
		if h.ImdbID == "" || seen[h.ImdbID] {
			continue
		}
		seen[h.ImdbID] = true
		out = append(out, h)
	}
	return out
}

var _ API = (*omdb.Client)(nil)
