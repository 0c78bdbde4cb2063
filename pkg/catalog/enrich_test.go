package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agentstation/marquee/internal/omdb"
	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu      sync.Mutex
	failing map[string]bool
	jitter  bool

	barrier  int
	arrived  atomic.Int64
	released chan struct{}
	once     sync.Once
}

func (f *fakeFetcher) Detail(_ context.Context, id string) (*omdb.Detail, json.RawMessage, error) {
	if f.barrier > 0 {
		if int(f.arrived.Add(1)) == f.barrier {
			f.once.Do(func() { close(f.released) })
		}
		select {
		case <-f.released:
		case <-time.After(2 * time.Second):
			return nil, nil, errors.NewNetworkError("detail", 0, "barrier timeout")
		}
	}
	if f.jitter {
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
	}
	f.mu.Lock()
	failing := f.failing[id]
	f.mu.Unlock()
	if failing {
		return nil, nil, errors.NewNetworkError("detail", 0, "Incorrect IMDb ID.")
	}
	d := &omdb.Detail{ImdbID: id, Title: "Detail " + id, Year: "2025", ImdbRating: "7.5", Genre: "Drama, War", Plot: "plot", Response: "True"}
	raw, _ := json.Marshal(d)
	return d, raw, nil
}

func hits(n int) []omdb.SearchHit {
	out := make([]omdb.SearchHit, n)
	for i := range out {
		out[i] = omdb.SearchHit{ImdbID: fmt.Sprintf("tt%02d", i), Title: fmt.Sprintf("Hit %d", i), Year: "2024", Poster: "https://p/" + fmt.Sprint(i)}
	}
	return out
}

func TestEnrichPreservesLengthAndOrder(t *testing.T) {
	e := NewEnricher(&fakeFetcher{jitter: true})
	in := hits(constants.PageSize)

	out := e.Enrich(context.Background(), in)

	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].ImdbID, out[i].ID, "index %d", i)
		assert.Equal(t, 7.5, out[i].Rating)
		assert.Equal(t, []string{"Drama", "War"}, out[i].Genres)
	}
}

func TestEnrichDegradesFailedItems(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)
	f := &fakeFetcher{failing: map[string]bool{"tt01": true, "tt03": true}}
	e := NewEnricher(f)
	in := hits(4)

	out := e.Enrich(context.Background(), in)

	require.Len(t, out, 4)
	for _, i := range []int{1, 3} {
		m := out[i]
		assert.Equal(t, in[i].ImdbID, m.ID)
		assert.Equal(t, in[i].Title, m.Title)
		assert.Equal(t, 2024, m.Year)
		require.NotNil(t, m.PosterURL)
		assert.Equal(t, in[i].Poster, *m.PosterURL)
		assert.Zero(t, m.Rating)
		assert.Empty(t, m.Genres)
		assert.Equal(t, constants.NoDescription, m.Overview)
	}
	assert.Equal(t, "Detail tt00", out[0].Title)
	assert.Equal(t, "Detail tt02", out[2].Title)
	assert.True(t, captured.Contains("tt01"))
}

func TestEnrichAllFailing(t *testing.T) {
	f := &fakeFetcher{failing: map[string]bool{}}
	in := hits(3)
	for _, h := range in {
		f.failing[h.ImdbID] = true
	}
	out := NewEnricher(f).Enrich(context.Background(), in)
	require.Len(t, out, 3)
	for i := range out {
		assert.Equal(t, in[i].Title, out[i].Title)
	}
}

func TestEnrichDispatchesAllBeforeAwaiting(t *testing.T) {
	n := constants.PageSize
	f := &fakeFetcher{barrier: n, released: make(chan struct{})}

	out := NewEnricher(f).Enrich(context.Background(), hits(n))

	require.Len(t, out, n)
	for _, m := range out {
		assert.Equal(t, 7.5, m.Rating, "every lookup should pass the barrier")
	}
}

func TestEnrichEmpty(t *testing.T) {
	out := NewEnricher(&fakeFetcher{}).Enrich(context.Background(), nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
