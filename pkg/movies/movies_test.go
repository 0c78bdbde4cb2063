package movies_test

import (
	"testing"
	"time"

	"github.com/agentstation/marquee/pkg/movies"
	"github.com/stretchr/testify/assert"
)

func TestMovieSame(t *testing.T) {
	a := movies.Movie{ID: "tt1", Title: "A"}
	b := movies.Movie{ID: "tt1", Title: "Different title"}
	c := movies.Movie{ID: "tt2", Title: "A"}

	assert.True(t, a.Same(b))
	assert.False(t, a.Same(c))
}

func TestNewWatchlistEntry(t *testing.T) {
	poster := "https://img/p.jpg"
	m := movies.Movie{ID: "tt1", Title: "Heat", Year: 1995, PosterURL: &poster, Rating: 8.3, Genres: []string{"Crime", "Drama"}}
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))

	entry := movies.NewWatchlistEntry(m, at)
	assert.Equal(t, "tt1", entry.ID)
	assert.Equal(t, 1995, entry.Year)
	assert.Equal(t, poster, *entry.PosterURL)
	assert.Equal(t, time.UTC, entry.AddedAt.Location())

	m.Genres[0] = "Changed"
	assert.Equal(t, "Crime", entry.Genres[0], "entry must not alias the movie's genre slice")
}

func TestAccountNewSession(t *testing.T) {
	acct := movies.Account{ID: "u1", Name: "Ann", Email: "a@b.c", PasswordHash: "$2a$hash"}
	s := acct.NewSession(time.Now())

	assert.Equal(t, "u1", s.AccountID)
	assert.Equal(t, "a@b.c", s.Email)
	assert.False(t, s.LoggedInAt.IsZero())
}

func TestPosterAndGenreList(t *testing.T) {
	assert.Equal(t, "", movies.Movie{}.Poster())
	assert.Equal(t, "Crime, Drama", movies.Movie{Genres: []string{"Crime", "Drama"}}.GenreList())
}
