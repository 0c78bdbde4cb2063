package collections

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/movies"
)

// GenreCount is how many saved movies carry a genre.
type GenreCount struct {
	Genre string `json:"genre" yaml:"genre"`
	Count int    `json:"count" yaml:"count"`
}

// GenreStats summarizes the genres on a watchlist.
type GenreStats struct {
	Movies   int          `json:"movies" yaml:"movies"`
	Distinct int          `json:"distinct_genres" yaml:"distinct_genres"`
	Favorite string       `json:"favorite" yaml:"favorite"`
	Top      []GenreCount `json:"top" yaml:"top"`
}

// ComputeGenreStats counts genres case-insensitively and reports the most
// common ones, ties broken by name.
func ComputeGenreStats(entries []movies.WatchlistEntry) GenreStats {
	fold := cases.Fold()
	title := cases.Title(language.English)

	counts := map[string]*GenreCount{}
	for _, e := range entries {
		seen := map[string]bool{}
		for _, g := range e.Genres {
			g = strings.TrimSpace(g)
			if g == "" || g == constants.NotAvailable {
				continue
			}
			key := fold.String(g)
			if seen[key] {
				continue
			}
			seen[key] = true
			if gc, ok := counts[key]; ok {
				gc.Count++
				continue
			}
			counts[key] = &GenreCount{Genre: title.String(g), Count: 1}
		}
	}

	all := make([]GenreCount, 0, len(counts))
	for _, gc := range counts {
		all = append(all, *gc)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Genre < all[j].Genre
	})

	stats := GenreStats{
		Movies:   len(entries),
		Distinct: len(all),
		Favorite: constants.NoFavoriteGenre,
		Top:      all[:min(len(all), constants.TopGenreCount)],
	}
	if len(all) > 0 {
		stats.Favorite = all[0].Genre
	}
	return stats
}

// GenreStats summarizes the current watchlist.
func (w *Watchlist) GenreStats() GenreStats {
	return ComputeGenreStats(w.Entries())
}
