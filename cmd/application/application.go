// Package application provides the application interface for marquee commands.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested against a mock:
//
//	mock := &application.Mock{
//	    ClientFunc: func(ctx context.Context) (marquee.Client, error) {
//	        return testClient, nil
//	    },
//	}
//	cmd := watchlist.NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/marquee"
)

// Application is what commands need from the app.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client returns the hydrated marquee client, opening the store on
	// first use.
	Client(ctx context.Context) (marquee.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	// Empty means auto-detect.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
