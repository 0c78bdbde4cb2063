package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/agentstation/marquee/internal/omdb"
	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/movies"
)

// fromDetail normalizes a full detail record.
func fromDetail(d *omdb.Detail, raw json.RawMessage) movies.Movie {
	return movies.Movie{
		ID:        d.ImdbID,
		Title:     d.Title,
		Year:      parseYear(d.Year),
		PosterURL: posterURL(d.Poster),
		Rating:    parseRating(d.ImdbRating),
		Genres:    splitGenres(d.Genre),
		Overview:  orDefault(d.Plot, constants.NoDescription),
		Votes:     orDefault(d.ImdbVotes, constants.UnknownVotes),
		Runtime:   orDefault(d.Runtime, constants.UnknownRuntime),
		Raw:       raw,
	}
}

// fromHit is the degraded record used when a detail fetch fails. It keeps
// the hit's title, year and poster.
func fromHit(h *omdb.SearchHit) movies.Movie {
	raw, _ := json.Marshal(h)
	return movies.Movie{
		ID:        h.ImdbID,
		Title:     h.Title,
		Year:      parseYear(h.Year),
		PosterURL: posterURL(h.Poster),
		Rating:    0,
		Genres:    []string{},
		Overview:  constants.NoDescription,
		Votes:     constants.UnknownVotes,
		Runtime:   constants.UnknownRuntime,
		Raw:       raw,
	}
}

func present(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != constants.NotAvailable
}

func orDefault(s, fallback string) string {
	if !present(s) {
		return fallback
	}
	return s
}

// parseYear reads the leading digits, so "2019–2021" is 2019.
func parseYear(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return year
}

func parseRating(s string) float64 {
	if !present(s) {
		return 0
	}
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || r < 0 || r > 10 {
		return 0
	}
	return r
}

func posterURL(s string) *string {
	if !present(s) {
		return nil
	}
	return &s
}

func splitGenres(s string) []string {
	genres := []string{}
	if !present(s) {
		return genres
	}
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

func parseTotal(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
