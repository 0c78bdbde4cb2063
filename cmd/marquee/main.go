// Package main provides the entry point for the marquee CLI.
package main

import (
	"context"
	"os"
	"time"

	"github.com/agentstation/marquee/cmd/marquee/app"
	"github.com/agentstation/marquee/pkg/logging"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	// LOG_* variables apply until the config and flags are loaded
	logging.ConfigureFromEnv()

	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	runErr := application.Execute(ctx, os.Args[1:])

	// the signal context may already be cancelled; give pending writes a fresh deadline
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		application.Logger().Error().Err(err).Msg("Shutdown error")
	}

	app.ExitOnError(runErr)
}
