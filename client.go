// Package marquee is a personal movie tracker. It browses a paginated
// catalog from the OMDb metadata API and keeps a durable local watchlist,
// review log, account list and login session.
//
// Example usage:
//
//	st, err := marquee.OpenStore(ctx, marquee.StoreConfig{Driver: marquee.DriverFiles, Path: "~/.marquee"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
//	mq, err := marquee.New(marquee.WithStore(st), marquee.WithAPIKey(os.Getenv("OMDB_API_KEY")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer mq.Close(ctx)
//	mq.Hydrate(ctx)
//
//	mq.OnWatchlistAdded(func(e movies.WatchlistEntry) {
//	    log.Printf("saved %s", e.Title)
//	})
//
//	page, err := mq.Browse(ctx, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range page.Items {
//	    fmt.Printf("%s (%d)\n", m.Title, m.Year)
//	}
//	_, err = mq.AddToWatchlist(ctx, page.Items[0])
package marquee

import (
	"context"
	"sync"

	"github.com/agentstation/marquee/internal/store/memory"
	"github.com/agentstation/marquee/pkg/auth"
	"github.com/agentstation/marquee/pkg/catalog"
	"github.com/agentstation/marquee/pkg/collections"
	"github.com/agentstation/marquee/pkg/logging"
	"github.com/agentstation/marquee/pkg/movies"
	"github.com/agentstation/marquee/pkg/store"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client is the tracker facade used by user interfaces.
type Client interface {

	// Catalog browses the metadata API
	Catalog

	// Library manages the watchlist, reviews and profile stats
	Library

	// Accounts handles registration and the login session
	Accounts

	// Lifecycle loads and releases durable state
	Lifecycle

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {

	// options are the configured options for the client
	options *options

	// catalog state; the cursor is private to this client
	catalog *catalog.Client
	cursor  *catalog.Cursor

	// durable collections
	store     store.Store
	watchlist *collections.Watchlist
	reviews   *collections.ReviewLog
	accounts  *collections.Accounts
	session   *collections.SessionStore
	auth      *auth.Service

	hooks       *hooks
	unsubscribe []func()
	closeOnce   sync.Once
	closeErr    error
}

// New creates a Client. Without WithStore the collections live only in
// memory. Call Hydrate before reading collections.
func New(opts ...Option) (Client, error) {
	o := defaults().apply(opts...)

	st := o.store
	if st == nil {
		st = memory.New()
	}

	var catalogOpts []catalog.Option
	if o.searchTerm != "" {
		catalogOpts = append(catalogOpts, catalog.WithTerm(o.searchTerm))
	}
	if o.searchYear != nil {
		catalogOpts = append(catalogOpts, catalog.WithYear(*o.searchYear))
	}

	c := &client{
		options:   o,
		catalog:   catalog.New(o.baseURL, o.apiKey, o.httpClient, catalogOpts...),
		cursor:    catalog.NewCursor(),
		store:     st,
		watchlist: collections.NewWatchlist(st),
		reviews:   collections.NewReviewLog(st),
		accounts:  collections.NewAccounts(st),
		session:   collections.NewSessionStore(st),
		hooks:     newHooks(),
	}

	var authOpts []auth.Option
	authOpts = append(authOpts, auth.WithClock(o.now))
	if o.passwordCost > 0 {
		authOpts = append(authOpts, auth.WithCost(o.passwordCost))
	}
	c.auth = auth.New(c.accounts, c.session, authOpts...)

	c.unsubscribe = []func(){
		c.watchlist.Subscribe(c.hooks.triggerWatchlistUpdate),
		c.reviews.Subscribe(c.hooks.triggerReviewUpdate),
		c.session.Subscribe(c.hooks.triggerSessionUpdate),
	}

	return c, nil
}

// ctx attaches the configured logger.
func (c *client) ctx(ctx context.Context) context.Context {
	if c.options.logger != nil {
		return logging.WithLogger(ctx, c.options.logger)
	}
	return ctx
}

// Session returns the logged-in session or nil.
func (c *client) Session() *movies.Session {
	return c.auth.Current()
}
