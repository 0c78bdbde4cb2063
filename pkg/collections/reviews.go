package collections

import (
	"context"
	"strings"

	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/movies"
	"github.com/agentstation/marquee/pkg/store"
)

// ReviewLog is the append-only list of submitted reviews.
type ReviewLog struct {
	*Collection[[]movies.Review]
}

// NewReviewLog creates the review log collection over s.
func NewReviewLog(s store.Store) *ReviewLog {
	return &ReviewLog{New(s, Config[[]movies.Review]{
		Key:    constants.KeyReviews,
		Policy: Optimistic,
		Empty:  func() []movies.Review { return []movies.Review{} },
		Clone: func(in []movies.Review) []movies.Review {
			return append(make([]movies.Review, 0, len(in)), in...)
		},
	})}
}

// ValidateReview checks the fields a review must carry.
func ValidateReview(r movies.Review) error {
	if strings.TrimSpace(r.MovieID) == "" {
		return errors.NewValidationError("movie_id", r.MovieID, "cannot be empty")
	}
	if strings.TrimSpace(r.Text) == "" {
		return errors.NewValidationError("text", r.Text, "please write a review")
	}
	if r.Rating < constants.MinReviewRating || r.Rating > constants.MaxReviewRating {
		return errors.NewValidationError("rating", r.Rating, "must be between 1 and 5 stars")
	}
	return nil
}

// AppendReview appends r after validating it. Text is trimmed.
func AppendReview(r movies.Review) Mutation[[]movies.Review] {
	return func(current []movies.Review) ([]movies.Review, bool, error) {
		if err := ValidateReview(r); err != nil {
			return current, false, err
		}
		r.Text = strings.TrimSpace(r.Text)
		r.SubmittedAt = r.SubmittedAt.UTC()
		return append(current, r), true, nil
	}
}

// Append records r.
func (l *ReviewLog) Append(ctx context.Context, r movies.Review) error {
	_, _, err := l.Apply(ctx, AppendReview(r))
	return err
}

// All returns every review in submission order.
func (l *ReviewLog) All() []movies.Review {
	return l.Get()
}

// ForMovie returns the reviews for one movie in submission order.
func (l *ReviewLog) ForMovie(movieID string) []movies.Review {
	out := []movies.Review{}
	for _, r := range l.Get() {
		if r.MovieID == movieID {
			out = append(out, r)
		}
	}
	return out
}
