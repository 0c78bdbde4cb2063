// Package logging provides structured logging for marquee using zerolog.
// Console output is used when stderr is a terminal, JSON otherwise.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("movie_id", "tt0111161").Msg("Added to watchlist")
//
//	ctx := logging.WithLogger(context.Background(), log)
//	logging.FromContext(ctx).Debug().Msg("Using logger from context")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is the global logger instance.
var defaultLogger zerolog.Logger

func init() {
	defaultLogger = createDefaultLogger()
}

func createDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr

	if stderrIsTerminal() && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := parseLevel(getEnvOrDefault("LOG_LEVEL", "warn"))
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
