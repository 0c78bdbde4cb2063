// Package emoji provides the status symbols printed before CLI messages.
package emoji

const (
	// Success marks a change that was applied.
	Success = "✓"

	// Skipped marks a request that changed nothing, such as saving a movie
	// that is already on the watchlist.
	Skipped = "-"

	// Info marks neutral status lines.
	Info = "i"

	// Error marks failures printed before exit.
	Error = "✗"
)
