package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/marquee/pkg/collections"
	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/movies"
)

// Movies renders catalog results.
type Movies []movies.Movie

// Table implements Tabular.
func (m Movies) Table() Data {
	rows := make([][]string, 0, len(m))
	for _, mv := range m {
		rows = append(rows, []string{mv.ID, mv.Title, year(mv.Year), rating(mv.Rating), mv.GenreList(), mv.Runtime})
	}
	return Data{
		Headers:         []string{"ID", "Title", "Year", "Rating", "Genres", "Runtime"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignLeft, AlignRight},
	}
}

// MovieDetail renders one title as a property list.
type MovieDetail movies.Movie

// Table implements Tabular.
func (m MovieDetail) Table() Data {
	mv := movies.Movie(m)
	return properties(
		"ID", mv.ID,
		"Title", mv.Title,
		"Year", year(mv.Year),
		"Rating", rating(mv.Rating),
		"Votes", mv.Votes,
		"Runtime", mv.Runtime,
		"Genres", mv.GenreList(),
		"Poster", mv.Poster(),
		"Overview", mv.Overview,
	)
}

// Watchlist renders saved movies.
type Watchlist []movies.WatchlistEntry

// Table implements Tabular.
func (w Watchlist) Table() Data {
	rows := make([][]string, 0, len(w))
	for _, e := range w {
		rows = append(rows, []string{
			e.ID, e.Title, year(e.Year), rating(e.Rating),
			strings.Join(e.Genres, ", "), e.AddedAt.Local().Format(constants.TimeFormatHuman),
		})
	}
	return Data{
		Headers:         []string{"ID", "Title", "Year", "Rating", "Genres", "Added"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignLeft, AlignLeft},
	}
}

// Reviews renders the review log.
type Reviews []movies.Review

// Table implements Tabular.
func (r Reviews) Table() Data {
	rows := make([][]string, 0, len(r))
	for _, rv := range r {
		rows = append(rows, []string{
			rv.MovieTitle, stars(rv.Rating), rv.Text, rv.SubmittedAt.Local().Format(constants.TimeFormatHuman),
		})
	}
	return Data{
		Headers: []string{"Movie", "Rating", "Review", "Date"},
		Rows:    rows,
	}
}

// Profile renders genre statistics.
type Profile collections.GenreStats

// Table implements Tabular.
func (p Profile) Table() Data {
	rows := [][]string{
		{"Movies", strconv.Itoa(p.Movies)},
		{"Genres", strconv.Itoa(p.Distinct)},
		{"Favorite", p.Favorite},
	}
	for _, g := range p.Top {
		rows = append(rows, []string{"  " + g.Genre, strconv.Itoa(g.Count)})
	}
	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// Session renders the logged-in identity.
type Session struct {
	*movies.Session
}

// Table implements Tabular.
func (s Session) Table() Data {
	if s.Session == nil {
		return properties("Status", "logged out")
	}
	return properties(
		"Status", "logged in",
		"Name", s.Name,
		"Email", s.Email,
		"Since", s.LoggedInAt.Local().Format(constants.TimeFormatHuman),
	)
}

// unwrap returns the value JSON and YAML should encode.
func unwrap(data any) any {
	if s, ok := data.(Session); ok {
		return s.Session
	}
	return data
}

func properties(kv ...string) Data {
	rows := make([][]string, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		rows = append(rows, []string{kv[i], kv[i+1]})
	}
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

func year(y int) string {
	if y == 0 {
		return "-"
	}
	return strconv.Itoa(y)
}

func rating(r float64) string {
	if r == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", r)
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > constants.MaxReviewRating {
		n = constants.MaxReviewRating
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", constants.MaxReviewRating-n)
}
