package marquee

import (
	"sync"

	"github.com/agentstation/marquee/pkg/movies"
)

// Hook function types for collection events. Hooks run synchronously after
// a change is committed and must not modify the Client's collections.
type (
	// WatchlistAddedHook is called when a movie is saved to the watchlist
	WatchlistAddedHook func(entry movies.WatchlistEntry)

	// WatchlistRemovedHook is called when a movie leaves the watchlist
	WatchlistRemovedHook func(entry movies.WatchlistEntry)

	// WatchlistChangedHook is called with the full watchlist before and after a change
	WatchlistChangedHook func(old, new []movies.WatchlistEntry)

	// ReviewAddedHook is called when a review is appended
	ReviewAddedHook func(review movies.Review)

	// SessionChangedHook is called on login and logout; nil means logged out
	SessionChangedHook func(old, new *movies.Session)
)

// Hooks provides event callback registration.
type Hooks interface {
	OnWatchlistAdded(WatchlistAddedHook)
	OnWatchlistRemoved(WatchlistRemovedHook)
	OnWatchlistChanged(WatchlistChangedHook)
	OnReviewAdded(ReviewAddedHook)
	OnSessionChanged(SessionChangedHook)
}

// hooks manages event callbacks for collection changes
type hooks struct {
	mu                 sync.RWMutex
	onWatchlistAdded   []WatchlistAddedHook
	onWatchlistRemoved []WatchlistRemovedHook
	onWatchlistChanged []WatchlistChangedHook
	onReviewAdded      []ReviewAddedHook
	onSessionChanged   []SessionChangedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnWatchlistAdded registers a callback for saved movies
func (h *hooks) OnWatchlistAdded(fn WatchlistAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onWatchlistAdded = append(h.onWatchlistAdded, fn)
}

// OnWatchlistRemoved registers a callback for removed movies
func (h *hooks) OnWatchlistRemoved(fn WatchlistRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onWatchlistRemoved = append(h.onWatchlistRemoved, fn)
}

// OnWatchlistChanged registers a callback for any watchlist change
func (h *hooks) OnWatchlistChanged(fn WatchlistChangedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onWatchlistChanged = append(h.onWatchlistChanged, fn)
}

// OnReviewAdded registers a callback for appended reviews
func (h *hooks) OnReviewAdded(fn ReviewAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReviewAdded = append(h.onReviewAdded, fn)
}

// OnSessionChanged registers a callback for login and logout
func (h *hooks) OnSessionChanged(fn SessionChangedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSessionChanged = append(h.onSessionChanged, fn)
}

// triggerWatchlistUpdate compares old and new watchlists and triggers the
// matching hooks. Hydration reports every stored entry as added.
func (h *hooks) triggerWatchlistUpdate(oldList, newList []movies.WatchlistEntry) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	oldIDs := make(map[string]bool, len(oldList))
	for _, e := range oldList {
		oldIDs[e.ID] = true
	}
	newIDs := make(map[string]bool, len(newList))
	for _, e := range newList {
		newIDs[e.ID] = true
	}

	for _, e := range newList {
		if !oldIDs[e.ID] {
			for _, hook := range h.onWatchlistAdded {
				hook(e)
			}
		}
	}
	for _, e := range oldList {
		if !newIDs[e.ID] {
			for _, hook := range h.onWatchlistRemoved {
				hook(e)
			}
		}
	}
	for _, hook := range h.onWatchlistChanged {
		hook(oldList, newList)
	}
}

// triggerReviewUpdate reports reviews appended to the log. A log that did
// not grow (hydration of a shorter value) is reported in full.
func (h *hooks) triggerReviewUpdate(oldLog, newLog []movies.Review) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	added := newLog
	if len(newLog) >= len(oldLog) {
		added = newLog[len(oldLog):]
	}
	for _, r := range added {
		for _, hook := range h.onReviewAdded {
			hook(r)
		}
	}
}

// triggerSessionUpdate reports a login or logout.
func (h *hooks) triggerSessionUpdate(oldSession, newSession *movies.Session) {
	if oldSession == nil && newSession == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onSessionChanged {
		hook(oldSession, newSession)
	}
}

// OnWatchlistAdded registers a callback for saved movies.
func (c *client) OnWatchlistAdded(fn WatchlistAddedHook) { c.hooks.OnWatchlistAdded(fn) }

// OnWatchlistRemoved registers a callback for removed movies.
func (c *client) OnWatchlistRemoved(fn WatchlistRemovedHook) { c.hooks.OnWatchlistRemoved(fn) }

// OnWatchlistChanged registers a callback for any watchlist change.
func (c *client) OnWatchlistChanged(fn WatchlistChangedHook) { c.hooks.OnWatchlistChanged(fn) }

// OnReviewAdded registers a callback for appended reviews.
func (c *client) OnReviewAdded(fn ReviewAddedHook) { c.hooks.OnReviewAdded(fn) }

// OnSessionChanged registers a callback for login and logout.
func (c *client) OnSessionChanged(fn SessionChangedHook) { c.hooks.OnSessionChanged(fn) }
