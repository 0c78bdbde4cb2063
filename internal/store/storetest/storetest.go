// Package storetest holds the behaviour every store backend must share and
// a fault-injecting wrapper for collection tests.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/store"
)

// Run exercises a fresh store from newStore against the store contract.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "watchlist")
		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrNotFound))
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("put then get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "watchlist", []byte(`[{"id":"tt1"}]`)))
		got, err := s.Get(ctx, "watchlist")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"tt1"}]`, string(got))
	})

	t.Run("put replaces", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "session", []byte(`{"a":1}`)))
		require.NoError(t, s.Put(ctx, "session", []byte(`null`)))
		got, err := s.Get(ctx, "session")
		require.NoError(t, err)
		assert.Equal(t, "null", string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "session", []byte(`1`)))
		require.NoError(t, s.Put(ctx, "reviews", []byte(`2`)))
		require.NoError(t, s.Delete(ctx, "session"))

		_, err := s.Get(ctx, "session")
		assert.True(t, errors.Is(err, store.ErrNotFound))
		got, err := s.Get(ctx, "reviews")
		require.NoError(t, err)
		assert.Equal(t, "2", string(got))
	})

	t.Run("delete absent key", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Delete(ctx, "accounts"))
	})

	t.Run("invalid key", func(t *testing.T) {
		s := newStore(t)
		err := s.Put(ctx, "../escape", []byte(`1`))
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

// Flaky wraps a store and fails writes on demand.
type Flaky struct {
	store.Store

	mu      sync.Mutex
	putErr  error
	puts    int
	written map[string]int
}

// NewFlaky wraps inner.
func NewFlaky(inner store.Store) *Flaky {
	return &Flaky{Store: inner, written: map[string]int{}}
}

// FailPuts makes every Put return err until called again with nil.
func (f *Flaky) FailPuts(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putErr = err
}

// Puts returns the number of successful Put calls.
func (f *Flaky) Puts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts
}

// PutsFor returns the number of successful Put calls for key.
func (f *Flaky) PutsFor(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written[key]
}

// Put implements store.Store.
func (f *Flaky) Put(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	err := f.putErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	if err := f.Store.Put(ctx, key, value); err != nil {
		return err
	}
	f.mu.Lock()
	f.puts++
	f.written[key]++
	f.mu.Unlock()
	return nil
}
