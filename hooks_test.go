package marquee_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/marquee/internal/store/memory"
	"github.com/agentstation/marquee/pkg/movies"
)

func TestWatchlistHooks(t *testing.T) {
	c := newClient(t, memory.New(), nil)
	ctx := context.Background()

	var added, removed []string
	var changes int
	c.OnWatchlistAdded(func(e movies.WatchlistEntry) { added = append(added, e.ID) })
	c.OnWatchlistRemoved(func(e movies.WatchlistEntry) { removed = append(removed, e.ID) })
	c.OnWatchlistChanged(func(old, new []movies.WatchlistEntry) { changes++ })

	_, err := c.AddToWatchlist(ctx, movies.Movie{ID: "tt1"})
	require.NoError(t, err)
	_, err = c.AddToWatchlist(ctx, movies.Movie{ID: "tt2"})
	require.NoError(t, err)
	_, err = c.AddToWatchlist(ctx, movies.Movie{ID: "tt1"})
	require.NoError(t, err)
	_, err = c.RemoveFromWatchlist(ctx, "tt1")
	require.NoError(t, err)

	assert.Equal(t, []string{"tt1", "tt2"}, added)
	assert.Equal(t, []string{"tt1"}, removed)
	assert.Equal(t, 3, changes, "no-op add fires nothing")

	require.NoError(t, c.ClearWatchlist(ctx))
	assert.Equal(t, []string{"tt1", "tt2"}, removed)
}

func TestReviewAndSessionHooks(t *testing.T) {
	c := newClient(t, memory.New(), nil)
	ctx := context.Background()

	var reviews []movies.Review
	c.OnReviewAdded(func(r movies.Review) { reviews = append(reviews, r) })

	type transition struct{ from, to string }
	var sessions []transition
	name := func(s *movies.Session) string {
		if s == nil {
			return ""
		}
		return s.Email
	}
	c.OnSessionChanged(func(old, new *movies.Session) {
		sessions = append(sessions, transition{name(old), name(new)})
	})

	_, err := c.SubmitReview(ctx, movies.Movie{ID: "tt1", Title: "Heat"}, 4, "Tense")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Tense", reviews[0].Text)

	_, err = c.Register(ctx, "Ann", "ann@example.com", "secret")
	require.NoError(t, err)
	_, err = c.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, c.Logout(ctx))
	require.NoError(t, c.Logout(ctx))

	assert.Equal(t, []transition{
		{"", "ann@example.com"},
		{"ann@example.com", ""},
	}, sessions)
}
