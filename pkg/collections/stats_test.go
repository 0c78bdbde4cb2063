package collections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/marquee/pkg/collections"
	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/movies"
)

func TestComputeGenreStats(t *testing.T) {
	t.Run("empty watchlist", func(t *testing.T) {
		stats := collections.ComputeGenreStats(nil)
		assert.Equal(t, constants.NoFavoriteGenre, stats.Favorite)
		assert.Empty(t, stats.Top)
		assert.Zero(t, stats.Movies)
	})

	t.Run("counts and orders genres", func(t *testing.T) {
		entries := []movies.WatchlistEntry{
			entry("1", "Drama", "Crime"),
			entry("2", "drama", "Action"),
			entry("3", "Drama", "Action", "N/A"),
			entry("4", "Comedy"),
		}
		stats := collections.ComputeGenreStats(entries)

		assert.Equal(t, 4, stats.Movies)
		assert.Equal(t, 4, stats.Distinct)
		assert.Equal(t, "Drama", stats.Favorite)
		assert.Equal(t, []collections.GenreCount{
			{Genre: "Drama", Count: 3},
			{Genre: "Action", Count: 2},
			{Genre: "Comedy", Count: 1},
			{Genre: "Crime", Count: 1},
		}, stats.Top)
	})

	t.Run("keeps the top six", func(t *testing.T) {
		entries := []movies.WatchlistEntry{
			entry("1", "A", "B", "C", "D", "E", "F", "G", "H"),
		}
		stats := collections.ComputeGenreStats(entries)
		assert.Len(t, stats.Top, constants.TopGenreCount)
		assert.Equal(t, 8, stats.Distinct)
	})

	t.Run("repeated genre on one movie counts once", func(t *testing.T) {
		stats := collections.ComputeGenreStats([]movies.WatchlistEntry{entry("1", "Sci-Fi", "sci-fi")})
		assert.Equal(t, []collections.GenreCount{{Genre: "Sci-Fi", Count: 1}}, stats.Top)
	})
}
