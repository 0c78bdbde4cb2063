// Package app wires configuration, logging and the marquee client for the
// CLI. Commands reach these through the application.Application interface.
package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/marquee"
	"github.com/agentstation/marquee/cmd/application"
	"github.com/agentstation/marquee/pkg/logging"
	"github.com/agentstation/marquee/pkg/store"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App holds the CLI's dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// store and client are opened on first use
	mu          sync.Mutex
	store       store.Store
	ownsStore   bool
	client      marquee.Client
	extraClient []marquee.Option
}

// New creates an App with configuration loaded from the environment.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the --output value.
func (a *App) OutputFormat() string { return a.config.Output }

// Client opens the store, creates the client and hydrates it. Later calls
// return the same client.
func (a *App) Client(ctx context.Context) (marquee.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	ctx = logging.WithLogger(ctx, a.logger)

	if a.store == nil {
		st, err := marquee.OpenStore(ctx, a.config.Store)
		if err != nil {
			return nil, err
		}
		a.store = st
		a.ownsStore = true
		a.logger.Debug().Str("driver", a.config.Store.Driver).Msg("store opened")
	}

	client, err := marquee.New(a.clientOptions()...)
	if err != nil {
		return nil, err
	}
	client.Hydrate(ctx)

	a.client = client
	return client, nil
}

// Shutdown flushes pending writes and closes the client and store.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	if a.client != nil {
		errs = append(errs, a.client.Close(ctx))
		a.client = nil
	}
	if a.store != nil && a.ownsStore {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	return errors.Join(errs...)
}

func (a *App) clientOptions() []marquee.Option {
	opts := []marquee.Option{
		marquee.WithStore(a.store),
		marquee.WithAPIKey(a.config.APIKey),
		marquee.WithBaseURL(a.config.BaseURL),
		marquee.WithSearchTerm(a.config.SearchTerm),
		marquee.WithSearchYear(a.config.SearchYear),
		marquee.WithLogger(*a.logger),
	}
	return append(opts, a.extraClient...)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore uses s instead of opening the configured store. The caller
// closes it.
func WithStore(s store.Store) Option {
	return func(a *App) error {
		a.store = s
		return nil
	}
}

// WithClientOptions appends options for the marquee client.
func WithClientOptions(opts ...marquee.Option) Option {
	return func(a *App) error {
		a.extraClient = append(a.extraClient, opts...)
		return nil
	}
}
