// Package collections keeps in-memory state consistent with the durable
// store. Each Collection owns one store key and is its only writer:
// mutations run one at a time and the full resulting value is persisted.
package collections

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sort"
	"sync"

	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/logging"
	"github.com/agentstation/marquee/pkg/store"
)

// Policy decides when a mutation becomes visible relative to its durable write.
type Policy int

const (
	// Optimistic updates memory first and persists in the background, in
	// mutation order. Write failures are logged, not returned.
	Optimistic Policy = iota

	// DurableFirst persists first and updates memory only after the write
	// succeeds. Write failures are returned and memory is left unchanged.
	DurableFirst
)

// String returns the policy name.
func (p Policy) String() string {
	if p == DurableFirst {
		return "durable-first"
	}
	return "optimistic"
}

// Mutation computes the next value from a private copy of the current one.
// Returning changed=false makes the mutation a no-op.
type Mutation[T any] func(current T) (next T, changed bool, err error)

// Listener observes committed changes. Listeners run on the mutating
// goroutine and must not mutate the collection they listen to.
type Listener[T any] func(old, new T)

// Config describes a collection.
type Config[T any] struct {
	Key    string
	Policy Policy
	// Empty returns the value used when nothing is stored.
	Empty func() T
	// Clone returns a deep copy; nil means values are copied by assignment.
	Clone func(T) T
	// Normalize repairs a decoded value before it becomes visible.
	Normalize func(T) T
}

type write struct {
	data    []byte
	barrier chan struct{}
}

// Collection is a reactive value backed by one store key.
type Collection[T any] struct {
	key    string
	policy Policy
	store  store.Store
	empty  func() T
	clone  func(T) T
	normal func(T) T

	// mu serializes hydrate and mutations.
	mu     sync.Mutex
	closed bool

	stateMu sync.RWMutex
	value   T

	listenersMu sync.RWMutex
	listeners   map[int]Listener[T]
	nextID      int

	queue chan write
	done  chan struct{}
}

// New creates a collection over s and starts its background writer.
// The value is Empty until Hydrate is called.
func New[T any](s store.Store, cfg Config[T]) *Collection[T] {
	empty := cfg.Empty
	if empty == nil {
		empty = func() T { var zero T; return zero }
	}
	clone := cfg.Clone
	if clone == nil {
		clone = func(v T) T { return v }
	}
	normal := cfg.Normalize
	if normal == nil {
		normal = func(v T) T { return v }
	}
	c := &Collection[T]{
		key:       cfg.Key,
		policy:    cfg.Policy,
		store:     s,
		empty:     empty,
		clone:     clone,
		normal:    normal,
		value:     empty(),
		listeners: make(map[int]Listener[T]),
		queue:     make(chan write, 64),
		done:      make(chan struct{}),
	}
	go c.writer(logging.WithCollection(context.Background(), c.key))
	return c
}

// Key returns the store key this collection owns.
func (c *Collection[T]) Key() string { return c.key }

// Policy returns the commit policy.
func (c *Collection[T]) Policy() Policy { return c.policy }

// Get returns a copy of the current value.
func (c *Collection[T]) Get() T {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.clone(c.value)
}

// Hydrate loads the durable value into memory. It never fails: a missing
// key yields the empty value, and an unreadable or malformed value is
// logged and also yields the empty value.
func (c *Collection[T]) Hydrate(ctx context.Context) T {
	ctx = logging.WithCollection(ctx, c.key)
	log := logging.FromContext(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.empty()
	data, err := c.store.Get(ctx, c.key)
	switch {
	case stderrors.Is(err, store.ErrNotFound):
		log.Debug().Msg("no stored value, starting empty")
	case err != nil:
		log.Warn().Err(err).Msg("failed to read stored value, starting empty")
	default:
		decoded, derr := c.decode(data)
		if derr != nil {
			log.Warn().Err(derr).Msg("stored value is malformed, starting empty")
		} else {
			next = c.normal(decoded)
		}
	}

	old := c.swap(next)
	c.notify(old, next)
	return c.clone(next)
}

// Apply runs m against the current value and commits the result according
// to the collection's policy. It returns the committed value and whether
// anything changed.
func (c *Collection[T]) Apply(ctx context.Context, m Mutation[T]) (T, bool, error) {
	ctx = logging.WithCollection(ctx, c.key)

	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.Get()
	if c.closed {
		return current, false, errors.ErrClosed
	}

	next, changed, err := m(c.clone(current))
	if err != nil || !changed {
		return current, false, err
	}

	data, err := json.Marshal(next)
	if err != nil {
		return current, false, errors.WrapSerialization(c.key, "encode", err)
	}

	switch c.policy {
	case DurableFirst:
		if err := c.store.Put(ctx, c.key, data); err != nil {
			logging.FromContext(ctx).Error().Err(err).Msg("durable write failed, change discarded")
			return current, false, err
		}
		c.swap(next)
	default:
		c.swap(next)
		c.queue <- write{data: data}
	}

	c.notify(current, next)
	return c.clone(next), true, nil
}

// Flush blocks until every write queued before the call has been attempted.
func (c *Collection[T]) Flush(ctx context.Context) error {
	barrier := make(chan struct{})

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.queue <- write{barrier: barrier}
	c.mu.Unlock()

	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registers fn for committed changes and returns a function that
// removes it.
func (c *Collection[T]) Subscribe(fn Listener[T]) (cancel func()) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		delete(c.listeners, id)
	}
}

// Close drains pending writes and stops the writer. Later mutations fail
// with errors.ErrClosed. The store itself is not closed.
func (c *Collection[T]) Close(ctx context.Context) error {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.queue)
	}
	c.mu.Unlock()

	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Collection[T]) writer(ctx context.Context) {
	defer close(c.done)
	for w := range c.queue {
		if w.barrier != nil {
			close(w.barrier)
			continue
		}
		if err := c.store.Put(ctx, c.key, w.data); err != nil {
			logging.FromContext(ctx).Error().Err(err).Msg("background write failed")
		}
	}
}

func (c *Collection[T]) swap(next T) (old T) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	old = c.value
	c.value = next
	return old
}

func (c *Collection[T]) notify(old, next T) {
	c.listenersMu.RLock()
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener[T], 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.listeners[id])
	}
	c.listenersMu.RUnlock()

	for _, fn := range fns {
		fn(c.clone(old), c.clone(next))
	}
}

func (c *Collection[T]) decode(data []byte) (T, error) {
	v := c.empty()
	if err := json.Unmarshal(data, &v); err != nil {
		return c.empty(), errors.WrapSerialization(c.key, "decode", err)
	}
	return v, nil
}
