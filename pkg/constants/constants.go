// Package constants provides shared constants used throughout marquee.
// This includes catalog paging, timeouts, store keys, file permissions and
// the placeholder values used when catalog metadata is missing.
package constants

import "time"

// Catalog constants
const (
	// PageSize is the fixed number of items the metadata API returns per search page.
	PageSize = 10

	// DefaultSearchTerm is the search term used when browsing the catalog.
	DefaultSearchTerm = "movie"

	// DefaultSearchType restricts browsing to a single title type.
	DefaultSearchType = "movie"

	// DefaultSearchYear restricts browsing to a release year. Zero means any year.
	DefaultSearchYear = 2025

	// DefaultBaseURL is the metadata API endpoint.
	DefaultBaseURL = "https://www.omdbapi.com/"

	// APIKeyParam is the query parameter that carries the metadata API key.
	APIKeyParam = "apikey"
)

// Placeholder values for missing metadata
const (
	// NotAvailable is the API's marker for an absent field.
	NotAvailable = "N/A"

	// NoDescription replaces a missing overview.
	NoDescription = "No description available"

	// UnknownRuntime replaces a missing runtime.
	UnknownRuntime = "N/A"

	// UnknownVotes replaces a missing vote count.
	UnknownVotes = "0"

	// NoFavoriteGenre is reported when the watchlist carries no genres.
	NoFavoriteGenre = "None"

	// TopGenreCount is the number of genres reported in profile statistics.
	TopGenreCount = 6
)

// Store keys for the durable collections
const (
	KeySession   = "session"
	KeyWatchlist = "watchlist"
	KeyAccounts  = "accounts"
	KeyReviews   = "reviews"
)

// Account validation limits
const (
	MinPasswordLength = 4
	MinNameLength     = 2
	MinReviewRating   = 1
	MaxReviewRating   = 5
)

// Timeout constants
const (
	// DefaultHTTPTimeout is the timeout for a single metadata API request.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations.
	DefaultTimeout = 10 * time.Second

	// CommandTimeout is the default timeout for CLI commands.
	CommandTimeout = 2 * time.Minute

	// StoreBusyTimeout is how long the sqlite backend waits on a locked database.
	StoreBusyTimeout = 5 * time.Second
)

// File permission constants
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for files holding account data (rw-------)
	SecureFilePermissions = 0600
)

// Logging constants
const (
	// LogRotationSizeMB is the maximum size of a log file before rotation.
	LogRotationSizeMB = 10

	// LogRotationAgeDays is the maximum age of log files before deletion.
	LogRotationAgeDays = 7

	// LogRotationBackups is the maximum number of old log files to retain.
	LogRotationBackups = 5
)

// Path constants
const (
	// DefaultDataPath is the default directory for durable collections.
	DefaultDataPath = "~/.marquee"

	// DefaultConfigPath is the default path for the configuration file.
	DefaultConfigPath = "~/.marquee.yaml"

	// DefaultSQLiteFile is the database file name used by the sqlite store.
	DefaultSQLiteFile = "marquee.db"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"
)
