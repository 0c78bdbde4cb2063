package catalog

import (
	"context"
	"encoding/json"

	"github.com/sourcegraph/conc/iter"

	"github.com/agentstation/marquee/internal/omdb"
	"github.com/agentstation/marquee/pkg/logging"
	"github.com/agentstation/marquee/pkg/movies"
)

// DetailFetcher looks up the full record for one title.
type DetailFetcher interface {
	Detail(ctx context.Context, id string) (*omdb.Detail, json.RawMessage, error)
}

// Enricher turns search hits into full records by fetching every detail
// concurrently.
type Enricher struct {
	fetcher DetailFetcher
}

// NewEnricher creates an Enricher backed by fetcher.
func NewEnricher(fetcher DetailFetcher) *Enricher {
	return &Enricher{fetcher: fetcher}
}

// Enrich returns one movie per hit, in hit order. Every lookup is in flight
// before any is awaited. A failed lookup degrades that item to the hit's
// own fields and never fails the batch.
func (e *Enricher) Enrich(ctx context.Context, hits []omdb.SearchHit) []movies.Movie {
	if len(hits) == 0 {
		return []movies.Movie{}
	}

	mapper := iter.Mapper[omdb.SearchHit, movies.Movie]{MaxGoroutines: len(hits)}
	return mapper.Map(hits, func(hit *omdb.SearchHit) movies.Movie {
		detail, raw, err := e.fetcher.Detail(ctx, hit.ImdbID)
		if err != nil {
			logging.FromContext(ctx).Warn().
				Err(err).
				Str("movie_id", hit.ImdbID).
				Msg("detail lookup failed, using search hit")
			return fromHit(hit)
		}
		m := fromDetail(detail, raw)
		if m.ID == "" {
			m.ID = hit.ImdbID
		}
		return m
	})
}
