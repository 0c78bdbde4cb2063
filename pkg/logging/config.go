package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/agentstation/marquee/pkg/constants"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum log level to output
	Level string

	// Format is the output format (auto, json, console)
	Format string

	// Output is where to write logs (stderr, stdout, discard, or a file path)
	Output string

	// TimeFormat for timestamps (kitchen, rfc3339, unix, or a layout)
	TimeFormat string

	// NoColor disables color output in console mode
	NoColor bool

	// AddCaller includes file:line in log output
	AddCaller bool

	// Fields are default fields to include in all logs
	Fields map[string]any

	// Rotation limits for file output.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Level:      "warn",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
		Fields:     make(map[string]any),
		MaxSizeMB:  constants.LogRotationSizeMB,
		MaxBackups: constants.LogRotationBackups,
		MaxAgeDays: constants.LogRotationAgeDays,
	}
}

// NewLoggerFromConfig creates a new logger from configuration
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(getWriter(cfg)).
		Level(level).
		With().
		Timestamp().
		Logger()

	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	if len(cfg.Fields) > 0 {
		ctx := logger.With()
		for k, v := range cfg.Fields {
			ctx = addFieldToContext(ctx, k, v)
		}
		logger = ctx.Logger()
	}

	return logger
}

// Configure updates the default logger with the given configuration
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// ConfigureFromEnv configures the logger from environment variables
func ConfigureFromEnv() {
	cfg := DefaultConfig()
	cfg.Level = getEnvOrDefault("LOG_LEVEL", cfg.Level)
	cfg.Format = getEnvOrDefault("LOG_FORMAT", cfg.Format)
	cfg.Output = getEnvOrDefault("LOG_OUTPUT", cfg.Output)
	cfg.TimeFormat = getEnvOrDefault("LOG_TIME_FORMAT", cfg.TimeFormat)
	cfg.AddCaller = os.Getenv("LOG_CALLER") == "true"
	cfg.Fields = parseFields(os.Getenv("LOG_FIELDS"))
	Configure(cfg)
}

// getWriter creates the appropriate writer based on configuration.
// File paths are written through a rotating lumberjack writer.
func getWriter(cfg *Config) io.Writer {
	var output io.Writer
	terminal := false
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		output = os.Stdout
	case "", "stderr":
		output = os.Stderr
		terminal = stderrIsTerminal()
	case "discard", "none":
		output = io.Discard
	default:
		output = &lumberjack.Logger{
			Filename:   cfg.Output,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
	}

	format := strings.ToLower(cfg.Format)
	if format == "auto" || format == "" {
		format = "json"
		if terminal {
			format = "console"
		}
	}

	switch format {
	case "console", "pretty":
		return zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: parseTimeFormat(cfg.TimeFormat),
			NoColor:    cfg.NoColor,
		}
	default:
		return output
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "warning":
		return zerolog.WarnLevel
	case "disabled", "none", "off":
		return zerolog.Disabled
	default:
		if l, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
			return l
		}
		return zerolog.InfoLevel
	}
}

func parseTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	case "unix", "epoch":
		return ""
	default:
		if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
			return format
		}
		return time.Kitchen
	}
}

// parseFields parses comma-separated key=value pairs
func parseFields(fields string) map[string]any {
	result := make(map[string]any)
	if fields == "" {
		return result
	}

	for _, field := range strings.Split(fields, ",") {
		parts := strings.SplitN(field, "=", 2)
		if len(parts) == 2 {
			result[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return result
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
