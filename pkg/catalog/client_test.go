package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/agentstation/marquee/internal/omdb"
	"github.com/agentstation/marquee/internal/omdb/omdbtest"
	"github.com/agentstation/marquee/pkg/catalog"
	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, srv *omdbtest.Server) *catalog.Client {
	t.Helper()
	return catalog.New(srv.URL, "", srv.Client())
}

func TestSearchPagination(t *testing.T) {
	srv := omdbtest.New(t, omdbtest.Titles(25)...)
	client := newClient(t, srv)
	cursor := catalog.NewCursor()
	ctx := context.Background()

	page1, err := client.Search(ctx, cursor, 1)
	require.NoError(t, err)
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, 25, page1.TotalResults)
	assert.True(t, page1.HasMore)
	assert.True(t, cursor.HasMorePages())

	page2, err := client.LoadMore(ctx, cursor)
	require.NoError(t, err)
	assert.Equal(t, 2, page2.Number)
	assert.True(t, page2.HasMore)

	page3, err := client.LoadMore(ctx, cursor)
	require.NoError(t, err)
	assert.Len(t, page3.Items, 5)
	assert.False(t, page3.HasMore)
	assert.False(t, cursor.HasMorePages())

	_, err = client.LoadMore(ctx, cursor)
	assert.ErrorIs(t, err, catalog.ErrNoMorePages)
	assert.Equal(t, 3, srv.Searches())
}

func TestSearchNoCache(t *testing.T) {
	srv := omdbtest.New(t, omdbtest.Titles(25)...)
	client := newClient(t, srv)
	cursor := catalog.NewCursor()

	for i := 0; i < 2; i++ {
		_, err := client.Search(context.Background(), cursor, 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, srv.Searches())
	assert.Equal(t, 20, srv.Details())
}

func TestSearchFailureLeavesCursor(t *testing.T) {
	srv := omdbtest.New(t, omdbtest.Titles(25)...)
	client := newClient(t, srv)
	cursor := catalog.NewCursor()

	_, err := client.Search(context.Background(), cursor, 1)
	require.NoError(t, err)

	srv.FailSearch("Request limit reached!")
	_, err = client.LoadMore(context.Background(), cursor)
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
	assert.Equal(t, 1, cursor.CurrentPage())
	assert.Equal(t, 25, cursor.TotalResults())
}

func TestSearchCapsPageSize(t *testing.T) {
	titles := omdbtest.Titles(14)
	srv := omdbtest.New(t, titles...)
	var oversized []omdb.SearchHit
	for _, d := range titles {
		oversized = append(oversized, omdb.SearchHit{ImdbID: d.ImdbID, Title: d.Title, Year: d.Year})
	}
	oversized = append(oversized, oversized[0])
	srv.OverridePage(1, oversized)

	page, err := newClient(t, srv).Search(context.Background(), catalog.NewCursor(), 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(page.Items), constants.PageSize)

	seen := map[string]bool{}
	for _, m := range page.Items {
		assert.False(t, seen[m.ID], "duplicate %s", m.ID)
		seen[m.ID] = true
	}
}

func TestSearchDegradedItems(t *testing.T) {
	srv := omdbtest.New(t, omdbtest.Titles(10)...)
	srv.FailDetail("tt0000002")
	srv.BreakDetail("tt0000005")

	page, err := newClient(t, srv).Search(context.Background(), catalog.NewCursor(), 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 10)

	for i, m := range page.Items {
		assert.Equal(t, fmt.Sprintf("tt%07d", i+1), m.ID)
	}
	assert.Zero(t, page.Items[1].Rating)
	assert.Equal(t, constants.NoDescription, page.Items[1].Overview)
	assert.Zero(t, page.Items[4].Rating)
	assert.Equal(t, 7.0, page.Items[0].Rating)
}

func TestSearchConcurrentDetailDispatch(t *testing.T) {
	srv := omdbtest.New(t, omdbtest.Titles(10)...)
	srv.GateDetails(10)

	_, err := newClient(t, srv).Search(context.Background(), catalog.NewCursor(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, srv.MaxInFlight())
}

func TestSearchValidation(t *testing.T) {
	srv := omdbtest.New(t)
	client := newClient(t, srv)

	_, err := client.Search(context.Background(), catalog.NewCursor(), 0)
	assert.True(t, errors.IsValidationError(err))

	_, err = client.Search(context.Background(), nil, 1)
	assert.True(t, errors.IsValidationError(err))
	assert.Zero(t, srv.Searches())
}

func TestRefresh(t *testing.T) {
	srv := omdbtest.New(t, omdbtest.Titles(25)...)
	client := newClient(t, srv)
	cursor := catalog.NewCursor()

	_, err := client.Search(context.Background(), cursor, 2)
	require.NoError(t, err)

	page, err := client.Refresh(context.Background(), cursor)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, cursor.CurrentPage())
}

func TestDetail(t *testing.T) {
	srv := omdbtest.New(t, omdbtest.Title("tt0113277", "Heat", 1995, "8.3", "Crime", "Drama"))
	client := newClient(t, srv)

	m, err := client.Detail(context.Background(), "tt0113277")
	require.NoError(t, err)
	assert.Equal(t, "Heat", m.Title)
	assert.Equal(t, []string{"Crime", "Drama"}, m.Genres)

	_, err = client.Detail(context.Background(), "tt404")
	assert.True(t, errors.IsNetwork(err))
}
