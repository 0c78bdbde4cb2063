package marquee

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/marquee/pkg/store"
)

// Option is a function that configures a Client.
type Option func(*options)

// options holds the configuration for a Client.
type options struct {
	store        store.Store
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	searchTerm   string
	searchYear   *int
	logger       *zerolog.Logger
	passwordCost int
	now          func() time.Time
}

// defaults returns options with default values.
func defaults() *options {
	return &options{
		now: time.Now,
	}
}

// apply applies the given options.
func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithStore sets the durable store. The caller keeps ownership and closes
// it after the Client.
func WithStore(s store.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithAPIKey sets the metadata API key. Catalog calls fail without one.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.apiKey = key
	}
}

// WithBaseURL points the catalog at a different metadata endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for catalog requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithSearchTerm sets the browse query. An empty term keeps the default.
func WithSearchTerm(term string) Option {
	return func(o *options) {
		if term != "" {
			o.searchTerm = term
		}
	}
}

// WithSearchYear sets the release year browsed. Zero browses all years.
func WithSearchYear(year int) Option {
	return func(o *options) {
		o.searchYear = &year
	}
}

// WithLogger attaches logger to every operation's context.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithPasswordCost sets the bcrypt cost for new accounts.
func WithPasswordCost(cost int) Option {
	return func(o *options) {
		o.passwordCost = cost
	}
}

// WithClock replaces time.Now for timestamps on saved records.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
