package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/marquee/pkg/collections"
	"github.com/agentstation/marquee/pkg/movies"
)

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", "yaml", ""} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	list := Movies{
		{ID: "tt1", Title: "Heat", Year: 1995, Rating: 8.3, Genres: []string{"Crime", "Drama"}, Runtime: "170 min"},
		{ID: "tt2", Title: "Unknown"},
	}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, list))

	out := buf.String()
	assert.Contains(t, out, "Heat")
	assert.Contains(t, out, "8.3")
	assert.Contains(t, out, "Crime, Drama")
	assert.Contains(t, out, "-")
}

func TestTableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"count": 2}))
	assert.JSONEq(t, `{"count":2}`, buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	entries := Watchlist{{ID: "tt1", Title: "Heat", AddedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}}
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, entries))

	var decoded []movies.WatchlistEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Heat", decoded[0].Title)
}

func TestSessionOutput(t *testing.T) {
	t.Run("logged out json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatJSON).Format(&buf, Session{}))
		assert.Equal(t, "null\n", buf.String())
	})

	t.Run("logged in table", func(t *testing.T) {
		var buf bytes.Buffer
		s := &movies.Session{Name: "Ann", Email: "ann@example.com", LoggedInAt: time.Now()}
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, Session{s}))
		assert.Contains(t, buf.String(), "ann@example.com")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		s := &movies.Session{Name: "Ann", Email: "ann@example.com"}
		require.NoError(t, NewFormatter(FormatYAML).Format(&buf, Session{s}))
		assert.Contains(t, buf.String(), "email: ann@example.com")
	})
}

func TestProfileTable(t *testing.T) {
	data := Profile(collections.GenreStats{
		Movies: 3, Distinct: 2, Favorite: "Drama",
		Top: []collections.GenreCount{{Genre: "Drama", Count: 2}, {Genre: "Crime", Count: 1}},
	}).Table()

	assert.Equal(t, []string{"Favorite", "Drama"}, data.Rows[2])
	assert.Len(t, data.Rows, 5)
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★☆☆", stars(3))
	assert.Equal(t, "☆☆☆☆☆", stars(-1))
	assert.Equal(t, "★★★★★", stars(9))
}
