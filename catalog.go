package marquee

import (
	"context"

	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/movies"
)

// Compile-time interface check to ensure proper implementation.
var _ Catalog = (*client)(nil)

// Catalog browses the metadata API one page at a time. Calls are not
// cancelled when a newer one starts; the last response to arrive updates
// the cursor.
type Catalog interface {
	// Browse fetches page n (1-based) of the configured search
	Browse(ctx context.Context, page int) (*movies.Page, error)

	// LoadMore fetches the page after the last one loaded
	LoadMore(ctx context.Context) (*movies.Page, error)

	// Refresh starts over from page 1
	Refresh(ctx context.Context) (*movies.Page, error)

	// Movie fetches one title by id
	Movie(ctx context.Context, id string) (*movies.Movie, error)

	// Position reports the cursor
	Position() Position
}

// Position is a snapshot of the browse cursor.
type Position struct {
	CurrentPage  int  `json:"current_page" yaml:"current_page"`
	TotalResults int  `json:"total_results" yaml:"total_results"`
	HasMore      bool `json:"has_more" yaml:"has_more"`
}

// Browse fetches one page.
func (c *client) Browse(ctx context.Context, page int) (*movies.Page, error) {
	if err := c.requireAPIKey(); err != nil {
		return nil, err
	}
	return c.catalog.Search(c.ctx(ctx), c.cursor, page)
}

// LoadMore fetches the next page.
func (c *client) LoadMore(ctx context.Context) (*movies.Page, error) {
	if err := c.requireAPIKey(); err != nil {
		return nil, err
	}
	return c.catalog.LoadMore(c.ctx(ctx), c.cursor)
}

// Refresh resets the cursor and fetches page 1.
func (c *client) Refresh(ctx context.Context) (*movies.Page, error) {
	if err := c.requireAPIKey(); err != nil {
		return nil, err
	}
	return c.catalog.Refresh(c.ctx(ctx), c.cursor)
}

// Movie fetches one title.
func (c *client) Movie(ctx context.Context, id string) (*movies.Movie, error) {
	if err := c.requireAPIKey(); err != nil {
		return nil, err
	}
	return c.catalog.Detail(c.ctx(ctx), id)
}

// Position returns the cursor state.
func (c *client) Position() Position {
	state := c.cursor.Snapshot()
	return Position{
		CurrentPage:  state.CurrentPage,
		TotalResults: state.TotalResults,
		HasMore:      state.HasMore,
	}
}

func (c *client) requireAPIKey() error {
	if c.options.apiKey == "" {
		return errors.NewConfigError("catalog", "set OMDB_API_KEY or pass WithAPIKey", errors.ErrAPIKeyRequired)
	}
	return nil
}
