package marquee

import (
	"context"
	"strings"

	"github.com/agentstation/marquee/pkg/collections"
	"github.com/agentstation/marquee/pkg/logging"
	"github.com/agentstation/marquee/pkg/movies"
)

// Compile-time interface check to ensure proper implementation.
var _ Library = (*client)(nil)

// Library manages the durable watchlist and review log. Watchlist and
// review changes are visible immediately and written in the background.
type Library interface {
	// AddToWatchlist saves m; it reports false if m was already saved
	AddToWatchlist(ctx context.Context, m movies.Movie) (bool, error)

	// RemoveFromWatchlist drops id; it reports false if id was not saved
	RemoveFromWatchlist(ctx context.Context, id string) (bool, error)

	// ClearWatchlist drops every saved movie
	ClearWatchlist(ctx context.Context) error

	// Watchlist lists saved movies in the order they were added
	Watchlist() []movies.WatchlistEntry

	// InWatchlist reports whether id is saved
	InWatchlist(id string) bool

	// SubmitReview appends a review for a movie
	SubmitReview(ctx context.Context, m movies.Movie, rating int, text string) (movies.Review, error)

	// Reviews lists every review, oldest first
	Reviews() []movies.Review

	// ReviewsFor lists the reviews for one movie
	ReviewsFor(movieID string) []movies.Review

	// Profile summarizes the watchlist by genre
	Profile() collections.GenreStats
}

// AddToWatchlist saves m.
func (c *client) AddToWatchlist(ctx context.Context, m movies.Movie) (bool, error) {
	ctx = logging.WithMovie(c.ctx(ctx), m.ID)
	added, err := c.watchlist.Add(ctx, movies.NewWatchlistEntry(m, c.options.now()))
	if err != nil {
		return false, err
	}
	if added {
		logging.FromContext(ctx).Debug().Str("title", m.Title).Msg("added to watchlist")
	}
	return added, nil
}

// RemoveFromWatchlist drops id.
func (c *client) RemoveFromWatchlist(ctx context.Context, id string) (bool, error) {
	return c.watchlist.Remove(logging.WithMovie(c.ctx(ctx), id), id)
}

// ClearWatchlist empties the watchlist.
func (c *client) ClearWatchlist(ctx context.Context) error {
	return c.watchlist.Clear(c.ctx(ctx))
}

// Watchlist returns a copy of the saved movies.
func (c *client) Watchlist() []movies.WatchlistEntry {
	return c.watchlist.Entries()
}

// InWatchlist reports membership.
func (c *client) InWatchlist(id string) bool {
	return c.watchlist.Contains(id)
}

// SubmitReview validates and appends a review.
func (c *client) SubmitReview(ctx context.Context, m movies.Movie, rating int, text string) (movies.Review, error) {
	r := movies.Review{
		MovieID:     m.ID,
		MovieTitle:  m.Title,
		Rating:      rating,
		Text:        strings.TrimSpace(text),
		SubmittedAt: c.options.now().UTC(),
	}
	if err := c.reviews.Append(logging.WithMovie(c.ctx(ctx), m.ID), r); err != nil {
		return movies.Review{}, err
	}
	return r, nil
}

// Reviews returns the review log.
func (c *client) Reviews() []movies.Review {
	return c.reviews.All()
}

// ReviewsFor returns the reviews for movieID.
func (c *client) ReviewsFor(movieID string) []movies.Review {
	return c.reviews.ForMovie(movieID)
}

// Profile computes genre stats over the watchlist.
func (c *client) Profile() collections.GenreStats {
	return c.watchlist.GenreStats()
}
