package collections

import (
	"context"
	"slices"

	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/movies"
	"github.com/agentstation/marquee/pkg/store"
)

// Watchlist is the set of saved movies, keyed by movie ID and kept in the
// order they were added.
type Watchlist struct {
	*Collection[[]movies.WatchlistEntry]
}

// NewWatchlist creates the watchlist collection over s.
func NewWatchlist(s store.Store) *Watchlist {
	return &Watchlist{New(s, Config[[]movies.WatchlistEntry]{
		Key:       constants.KeyWatchlist,
		Policy:    Optimistic,
		Empty:     func() []movies.WatchlistEntry { return []movies.WatchlistEntry{} },
		Clone:     cloneEntries,
		Normalize: dedupeEntries,
	})}
}

// AddWatchlistItem adds entry unless an entry with the same ID is present.
func AddWatchlistItem(entry movies.WatchlistEntry) Mutation[[]movies.WatchlistEntry] {
	return func(current []movies.WatchlistEntry) ([]movies.WatchlistEntry, bool, error) {
		if entry.ID == "" {
			return current, false, errors.NewValidationError("id", entry.ID, "cannot be empty")
		}
		if indexOf(current, entry.ID) >= 0 {
			return current, false, nil
		}
		return append(current, entry), true, nil
	}
}

// RemoveWatchlistItem removes the entry with id, if any.
func RemoveWatchlistItem(id string) Mutation[[]movies.WatchlistEntry] {
	return func(current []movies.WatchlistEntry) ([]movies.WatchlistEntry, bool, error) {
		i := indexOf(current, id)
		if i < 0 {
			return current, false, nil
		}
		return slices.Delete(current, i, i+1), true, nil
	}
}

// ClearWatchlist removes every entry.
func ClearWatchlist() Mutation[[]movies.WatchlistEntry] {
	return func(current []movies.WatchlistEntry) ([]movies.WatchlistEntry, bool, error) {
		if len(current) == 0 {
			return current, false, nil
		}
		return []movies.WatchlistEntry{}, true, nil
	}
}

// Add saves entry and reports whether it was new.
func (w *Watchlist) Add(ctx context.Context, entry movies.WatchlistEntry) (bool, error) {
	_, added, err := w.Apply(ctx, AddWatchlistItem(entry))
	return added, err
}

// Remove deletes the entry with id and reports whether one was present.
func (w *Watchlist) Remove(ctx context.Context, id string) (bool, error) {
	_, removed, err := w.Apply(ctx, RemoveWatchlistItem(id))
	return removed, err
}

// Clear removes every entry.
func (w *Watchlist) Clear(ctx context.Context) error {
	_, _, err := w.Apply(ctx, ClearWatchlist())
	return err
}

// Contains reports whether id is saved.
func (w *Watchlist) Contains(id string) bool {
	w.stateMu.RLock()
	defer w.stateMu.RUnlock()
	return indexOf(w.value, id) >= 0
}

// Entries returns the saved entries in insertion order.
func (w *Watchlist) Entries() []movies.WatchlistEntry {
	return w.Get()
}

// Len returns the number of saved entries.
func (w *Watchlist) Len() int {
	w.stateMu.RLock()
	defer w.stateMu.RUnlock()
	return len(w.value)
}

func indexOf(entries []movies.WatchlistEntry, id string) int {
	return slices.IndexFunc(entries, func(e movies.WatchlistEntry) bool { return e.ID == id })
}

func cloneEntries(in []movies.WatchlistEntry) []movies.WatchlistEntry {
	out := make([]movies.WatchlistEntry, len(in))
	for i, e := range in {
		e.Genres = slices.Clone(e.Genres)
		out[i] = e
	}
	return out
}

// dedupeEntries drops repeated IDs from a stored watchlist, keeping the
// first occurrence.
func dedupeEntries(in []movies.WatchlistEntry) []movies.WatchlistEntry {
	seen := make(map[string]bool, len(in))
	out := make([]movies.WatchlistEntry, 0, len(in))
	for _, e := range in {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}
