// Package store defines the durable key-value contract behind every
// persistent collection. Values are opaque bytes; a write replaces the
// whole value under its key.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentstation/marquee/pkg/errors"
)

// ErrNotFound is returned by Get when a key has never been written or was deleted.
// It matches errors.ErrNotFound.
var ErrNotFound = fmt.Errorf("store: key %w", errors.ErrNotFound)

// Store is a durable byte store keyed by collection name.
type Store interface {
	// Get returns the value under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value under key. A failed Put leaves the previous
	// value intact.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// ValidateKey rejects keys that cannot be used as file names or table keys.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.NewValidationError("key", key, "cannot be empty")
	}
	if strings.ContainsAny(key, `/\:`) || strings.HasPrefix(key, ".") {
		return errors.NewValidationError("key", key, "must be a plain name")
	}
	return nil
}
