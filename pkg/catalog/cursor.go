package catalog

import (
	"sync"

	"github.com/agentstation/marquee/pkg/constants"
)

// Cursor tracks how far a browsing session has paged into the catalog.
// Each session owns its own Cursor and passes it to every search; the
// cursor only moves after a search succeeds.
type Cursor struct {
	mu           sync.RWMutex
	currentPage  int
	totalResults int
}

// NewCursor returns a cursor positioned before the first page.
func NewCursor() *Cursor {
	return &Cursor{}
}

// CurrentPage returns the highest page fetched so far, 0 before any fetch.
func (c *Cursor) CurrentPage() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentPage
}

// TotalResults returns the total reported by the most recent search.
func (c *Cursor) TotalResults() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalResults
}

// HasMorePages reports whether pages remain after CurrentPage.
func (c *Cursor) HasMorePages() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return hasMore(c.currentPage, c.totalResults)
}

// State is a consistent view of a Cursor.
type State struct {
	CurrentPage  int
	TotalResults int
	HasMore      bool
}

// Snapshot returns the page, total and has-more flag read together.
func (c *Cursor) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{
		CurrentPage:  c.currentPage,
		TotalResults: c.totalResults,
		HasMore:      hasMore(c.currentPage, c.totalResults),
	}
}

// Next returns the page a load-more should request.
func (c *Cursor) Next() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentPage + 1
}

// Reset moves the cursor back before the first page.
func (c *Cursor) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentPage = 0
	c.totalResults = 0
}

// advance records a successful search: page first, then total. The page
// never moves backwards.
func (c *Cursor) advance(page, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page > c.currentPage {
		c.currentPage = page
	}
	c.totalResults = total
}

func hasMore(page, total int) bool {
	return page*constants.PageSize < total
}
