package review

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
	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/movies"
)

func newApp(t *testing.T) (*application.Mock, marquee.Client, *omdbtest.Server) {
	t.Helper()
	srv := omdbtest.New(t, omdbtest.Title("tt0111161", "The Shawshank Redemption", 1994, "9.3", "Drama"))
	client, err := marquee.New(
		marquee.WithAPIKey("k"),
		marquee.WithBaseURL(srv.URL),
		marquee.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	client.Hydrate(context.Background())
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	return &application.Mock{
		ClientFunc:       func(context.Context) (marquee.Client, error) { return client, nil },
		OutputFormatFunc: func() string { return "json" },
	}, client, srv
}

func execute(app *application.Mock, args ...string) (string, error) {
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReviewAddAndList(t *testing.T) {
	app, client, _ := newApp(t)

	out, err := execute(app, "add", "tt0111161", "--rating", "5", "--text", "Hope is a good thing.")
	require.NoError(t, err)
	assert.Contains(t, out, "Review saved for The Shawshank Redemption (5/5)")

	out, err = execute(app, "list", "tt0111161")
	require.NoError(t, err)
	var reviews []movies.Review
	require.NoError(t, json.Unmarshal([]byte(out), &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "Hope is a good thing.", reviews[0].Text)
	assert.Len(t, client.Reviews(), 1)
}

func TestReviewUsesSavedMovie(t *testing.T) {
	app, client, srv := newApp(t)
	_, err := client.AddToWatchlist(context.Background(), movies.Movie{ID: "tt7", Title: "Saved Only"})
	require.NoError(t, err)

	out, err := execute(app, "add", "tt7", "-r", "3", "-t", "fine")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved Only")
	assert.Zero(t, srv.Details())
}

func TestReviewValidation(t *testing.T) {
	app, _, _ := newApp(t)

	_, err := execute(app, "add", "tt0111161", "--rating", "6", "--text", "too many stars")
	assert.True(t, errors.IsValidationError(err))

	_, err = execute(app, "add", "tt0111161", "--rating", "4")
	assert.Error(t, err, "text is required")
}
