package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/marquee/pkg/logging"
)

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag or LOG_LEVEL
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for error)
//  4. Default (warn)
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)
	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
}

func determineLogLevel(config *Config) string {
	if config.LogLevel != "" {
		validated := validateLogLevel(config.LogLevel)
		if validated != config.LogLevel {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", config.LogLevel, validated)
		}
		return validated
	}

	if config.Verbose && config.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "error"
	}
	if config.Verbose {
		return "debug"
	}
	if config.Quiet {
		return "error"
	}
	return "warn"
}

func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	default:
		return "warn"
	}
}
