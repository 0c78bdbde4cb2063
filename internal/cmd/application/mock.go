// Package application provides a mock Application for command tests.
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/marquee"
	"github.com/agentstation/marquee/cmd/application"
	"github.com/agentstation/marquee/pkg/errors"
)

var _ application.Application = (*Mock)(nil)

var errNoClient = errors.New("mock: no client configured")

// Mock implements the commands' Application interface. Each method uses
// the matching function field, or returns a zero value when it is nil.
type Mock struct {
	ClientFunc       func(ctx context.Context) (marquee.Client, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Client returns the client from ClientFunc or an error.
func (m *Mock) Client(ctx context.Context) (marquee.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(ctx)
	}
	return nil, errNoClient
}

// Logger returns the logger from LoggerFunc or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format from OutputFormatFunc or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns the version from VersionFunc or "test".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "test"
}

// Commit returns the commit from CommitFunc or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the date from DateFunc or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the builder from BuiltByFunc or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}
