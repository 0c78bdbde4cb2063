// Package redis stores collection values as plain Redis strings under a
// key prefix.
package redis

import (
	"context"
	stderrors "errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/store"
)

// DefaultPrefix namespaces marquee keys.
const DefaultPrefix = "marquee:"

// Options configures the connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Store persists values in Redis.
type Store struct {
	client *goredis.Client
	prefix string
}

// New wraps an existing client.
func New(client *goredis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Open connects to Redis and verifies the connection.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Addr == "" {
		return nil, errors.NewValidationError("addr", opts.Addr, "cannot be empty")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapIO("connect", opts.Addr, err)
	}
	return New(client, opts.Prefix), nil
}

// Get implements store.Store.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if stderrors.Is(err, goredis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.WrapIO("read", s.prefix+key, err)
	}
	return value, nil
}

// Put implements store.Store.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return errors.WrapIO("write", s.prefix+key, err)
	}
	return nil
}

// Delete implements store.Store.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.WrapIO("delete", s.prefix+key, err)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ store.Store = (*Store)(nil)
