package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{"default", &Config{}, "warn"},
		{"verbose", &Config{Verbose: true}, "debug"},
		{"quiet", &Config{Quiet: true}, "error"},
		{"verbose and quiet", &Config{Verbose: true, Quiet: true}, "error"},
		{"explicit level wins", &Config{LogLevel: "info", Verbose: true}, "info"},
		{"invalid level", &Config{LogLevel: "loud"}, "warn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determineLogLevel(tt.config))
		})
	}
}
