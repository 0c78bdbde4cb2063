package collections_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/marquee/internal/store/memory"
	"github.com/agentstation/marquee/internal/store/storetest"
	"github.com/agentstation/marquee/pkg/collections"
	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/logging"
	"github.com/agentstation/marquee/pkg/movies"
)

func entry(id string, genres ...string) movies.WatchlistEntry {
	return movies.WatchlistEntry{ID: id, Title: "Title " + id, Year: 2025, Genres: genres}
}

func closeAll(t *testing.T, closers ...interface{ Close(context.Context) error }) {
	t.Helper()
	t.Cleanup(func() {
		for _, c := range closers {
			_ = c.Close(context.Background())
		}
	})
}

func TestHydrateEmptyStore(t *testing.T) {
	s := memory.New()
	w := collections.NewWatchlist(s)
	sess := collections.NewSessionStore(s)
	closeAll(t, w, sess)
	ctx := context.Background()

	assert.Equal(t, []movies.WatchlistEntry{}, w.Hydrate(ctx))
	assert.Nil(t, sess.Hydrate(ctx))
	assert.Zero(t, w.Len())
}

func TestHydrateMalformedValue(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, constants.KeyWatchlist, []byte(`{not json`)))
	require.NoError(t, s.Put(ctx, constants.KeySession, []byte(`[1,2,3]`)))

	w := collections.NewWatchlist(s)
	sess := collections.NewSessionStore(s)
	closeAll(t, w, sess)

	assert.Empty(t, w.Hydrate(ctx))
	assert.Nil(t, sess.Hydrate(ctx))
	assert.True(t, captured.Contains("malformed"))
	assert.True(t, captured.Contains(`"collection":"watchlist"`))

	raw, err := s.Get(ctx, constants.KeyWatchlist)
	require.NoError(t, err)
	assert.Equal(t, `{not json`, string(raw), "hydrate must not overwrite the stored value")
}

func TestWatchlistAddIsIdempotent(t *testing.T) {
	s := storetest.NewFlaky(memory.New())
	w := collections.NewWatchlist(s)
	closeAll(t, w)
	ctx := context.Background()

	added, err := w.Add(ctx, entry("tt1"))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = w.Add(ctx, entry("tt1"))
	require.NoError(t, err)
	assert.False(t, added)

	require.NoError(t, w.Flush(ctx))
	assert.Len(t, w.Entries(), 1)
	assert.Equal(t, 1, s.PutsFor(constants.KeyWatchlist), "a no-op add must not write")
}

func TestWatchlistRemoveAbsentIsNoop(t *testing.T) {
	s := storetest.NewFlaky(memory.New())
	w := collections.NewWatchlist(s)
	closeAll(t, w)
	ctx := context.Background()

	_, err := w.Add(ctx, entry("tt1"))
	require.NoError(t, err)

	removed, err := w.Remove(ctx, "tt404")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.True(t, w.Contains("tt1"))

	removed, err = w.Remove(ctx, "tt1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, w.Contains("tt1"))

	require.NoError(t, w.Flush(ctx))
	assert.Equal(t, 2, s.PutsFor(constants.KeyWatchlist))
}

func TestWatchlistRejectsEmptyID(t *testing.T) {
	w := collections.NewWatchlist(memory.New())
	closeAll(t, w)
	_, err := w.Add(context.Background(), movies.WatchlistEntry{})
	assert.True(t, errors.IsValidationError(err))
}

func TestWatchlistConcurrentAddsSameID(t *testing.T) {
	w := collections.NewWatchlist(memory.New())
	closeAll(t, w)
	ctx := context.Background()

	var wg sync.WaitGroup
	added := make(chan bool, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := w.Add(ctx, entry("tt1"))
			assert.NoError(t, err)
			added <- ok
		}()
	}
	wg.Wait()
	close(added)

	wins := 0
	for ok := range added {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, w.Len())
}

func TestWatchlistConcurrentDistinctAdds(t *testing.T) {
	s := memory.New()
	w := collections.NewWatchlist(s)
	closeAll(t, w)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := w.Add(ctx, entry(fmt.Sprintf("tt%d", i)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	require.NoError(t, w.Flush(ctx))

	raw, err := s.Get(ctx, constants.KeyWatchlist)
	require.NoError(t, err)
	var stored []movies.WatchlistEntry
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Len(t, stored, 40, "durable value must reflect every add")
}

func TestRoundTripAcrossInstances(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	first := collections.NewWatchlist(s)
	_, err := first.Add(ctx, entry("tt1", "Drama"))
	require.NoError(t, err)
	_, err = first.Add(ctx, entry("tt2"))
	require.NoError(t, err)
	require.NoError(t, first.Close(ctx))

	second := collections.NewWatchlist(s)
	closeAll(t, second)
	got := second.Hydrate(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, "tt1", got[0].ID)
	assert.Equal(t, []string{"Drama"}, got[0].Genres)
	assert.Equal(t, "tt2", got[1].ID)
}

func TestOptimisticWriteFailureKeepsProjection(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)
	s := storetest.NewFlaky(memory.New())
	s.FailPuts(errors.NewIOError("write", "watchlist", fmt.Errorf("disk full")))
	w := collections.NewWatchlist(s)
	closeAll(t, w)
	ctx := context.Background()

	added, err := w.Add(ctx, entry("tt1"))
	require.NoError(t, err)
	assert.True(t, added)
	require.NoError(t, w.Flush(ctx))

	assert.True(t, w.Contains("tt1"))
	assert.True(t, captured.Contains("background write failed"))
}

func TestDurableFirstWriteFailureLeavesProjection(t *testing.T) {
	logging.DisableLoggingForTest(t)
	s := storetest.NewFlaky(memory.New())
	sess := collections.NewSessionStore(s)
	closeAll(t, sess)
	ctx := context.Background()

	s.FailPuts(fmt.Errorf("read-only filesystem"))
	err := sess.Set(ctx, &movies.Session{AccountID: "u1", Email: "a@b.c"})
	require.Error(t, err)
	assert.Nil(t, sess.Current())

	s.FailPuts(nil)
	require.NoError(t, sess.Set(ctx, &movies.Session{AccountID: "u1", Email: "a@b.c"}))
	require.NotNil(t, sess.Current())
	assert.Equal(t, "a@b.c", sess.Current().Email)
}

func TestSubscribe(t *testing.T) {
	w := collections.NewWatchlist(memory.New())
	closeAll(t, w)
	ctx := context.Background()

	var mu sync.Mutex
	var seen []int
	cancel := w.Subscribe(func(old, new []movies.WatchlistEntry) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, len(new)-len(old))
	})

	_, _ = w.Add(ctx, entry("tt1"))
	_, _ = w.Add(ctx, entry("tt1"))
	_, _ = w.Remove(ctx, "tt1")
	cancel()
	_, _ = w.Add(ctx, entry("tt2"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, -1}, seen)
}

func TestGetReturnsCopy(t *testing.T) {
	w := collections.NewWatchlist(memory.New())
	closeAll(t, w)
	_, err := w.Add(context.Background(), entry("tt1", "Drama"))
	require.NoError(t, err)

	got := w.Entries()
	got[0].Genres[0] = "Mutated"
	got[0].Title = "Mutated"

	fresh := w.Entries()
	assert.Equal(t, "Drama", fresh[0].Genres[0])
	assert.Equal(t, "Title tt1", fresh[0].Title)
}

func TestClosedCollection(t *testing.T) {
	w := collections.NewWatchlist(memory.New())
	ctx := context.Background()
	require.NoError(t, w.Close(ctx))
	require.NoError(t, w.Close(ctx))

	_, err := w.Add(ctx, entry("tt1"))
	assert.ErrorIs(t, err, errors.ErrClosed)
	assert.NoError(t, w.Flush(ctx))
}

func TestFlushHonoursContext(t *testing.T) {
	w := collections.NewWatchlist(memory.New())
	closeAll(t, w)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, w.Flush(ctx))
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "optimistic", collections.Optimistic.String())
	assert.Equal(t, "durable-first", collections.DurableFirst.String())
	accounts := collections.NewAccounts(memory.New())
	closeAll(t, accounts)
	assert.Equal(t, collections.DurableFirst, accounts.Policy())
}
