package marquee

import (
	"context"
	"errors"

	"github.com/agentstation/marquee/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ Lifecycle = (*client)(nil)

// Lifecycle loads and releases durable state.
type Lifecycle interface {
	// Hydrate loads every collection from the store. Missing or malformed
	// values load as empty; Hydrate never fails.
	Hydrate(ctx context.Context)

	// Flush waits for background writes queued so far
	Flush(ctx context.Context) error

	// Close flushes pending writes and stops the collections. The store
	// passed to WithStore is left open.
	Close(ctx context.Context) error
}

// Hydrate loads the session, watchlist, reviews and accounts.
func (c *client) Hydrate(ctx context.Context) {
	ctx = c.ctx(ctx)
	c.accounts.Hydrate(ctx)
	c.session.Hydrate(ctx)
	c.watchlist.Hydrate(ctx)
	c.reviews.Hydrate(ctx)
	state := c.auth.Restore()

	logging.FromContext(ctx).Debug().
		Int("watchlist", c.watchlist.Len()).
		Int("reviews", len(c.reviews.All())).
		Int("accounts", len(c.accounts.Get())).
		Str("session", state.String()).
		Msg("collections hydrated")
}

// Flush waits for the background writers.
func (c *client) Flush(ctx context.Context) error {
	return errors.Join(
		c.watchlist.Flush(ctx),
		c.reviews.Flush(ctx),
	)
}

// Close stops hooks and drains every collection writer.
func (c *client) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		for _, cancel := range c.unsubscribe {
			cancel()
		}
		c.closeErr = errors.Join(
			c.watchlist.Close(ctx),
			c.reviews.Close(ctx),
			c.accounts.Close(ctx),
			c.session.Close(ctx),
		)
		// a store created by New is ours to release
		if c.options.store == nil {
			c.closeErr = errors.Join(c.closeErr, c.store.Close())
		}
	})
	return c.closeErr
}
