// Package memory is an in-process store for tests and throwaway sessions.
package memory

import (
	"context"
	"sync"

	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/store"
)

// Store keeps values in a map. Values are copied in and out.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
	closed bool
}

// New creates an empty store.
func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

// Get implements store.Store.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errors.ErrClosed
	}
	v, ok := s.values[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put implements store.Store.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrClosed
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements store.Store.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrClosed
	}
	delete(s.values, key)
	return nil
}

// Close implements store.Store. Further calls fail with errors.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var _ store.Store = (*Store)(nil)
