package discover

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/marquee"
	"github.com/agentstation/marquee/internal/cmd/application"
	"github.com/agentstation/marquee/internal/omdb/omdbtest"
	"github.com/agentstation/marquee/pkg/movies"
)

func run(t *testing.T, srv *omdbtest.Server, args ...string) (string, error) {
	t.Helper()
	client, err := marquee.New(
		marquee.WithAPIKey("k"),
		marquee.WithBaseURL(srv.URL),
		marquee.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	mock := &application.Mock{
		ClientFunc:       func(context.Context) (marquee.Client, error) { return client, nil },
		OutputFormatFunc: func() string { return "json" },
	}
	cmd := NewCommand(mock)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDiscoverPages(t *testing.T) {
	srv := omdbtest.New(t, omdbtest.Titles(15)...)

	out, err := run(t, srv, "--pages", "5")
	require.NoError(t, err)

	var items []movies.Movie
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Len(t, items, 15)
	assert.Equal(t, 2, srv.Searches(), "stops once the catalog is exhausted")
}

func TestDiscoverStartPage(t *testing.T) {
	srv := omdbtest.New(t, omdbtest.Titles(15)...)

	out, err := run(t, srv, "--page", "2")
	require.NoError(t, err)

	var items []movies.Movie
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 5)
	assert.Equal(t, "tt0000011", items[0].ID)
}

func TestDiscoverMovie(t *testing.T) {
	srv := omdbtest.New(t, omdbtest.Title("tt0111161", "The Shawshank Redemption", 1994, "9.3", "Drama"))

	out, err := run(t, srv, "tt0111161")
	require.NoError(t, err)

	var m movies.Movie
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "The Shawshank Redemption", m.Title)
	assert.Equal(t, []string{"Drama"}, m.Genres)
}

func TestDiscoverSearchFailure(t *testing.T) {
	srv := omdbtest.New(t)
	srv.FailSearch("Request limit reached!")

	_, err := run(t, srv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Request limit reached!")
}
