// Package movies defines the records that flow between the catalog client,
// the durable collections and the presentation layer.
package movies

import (
	"encoding/json"
	"strings"
	"time"
)

// Movie is a normalized catalog record. Two movies are the same title
// when their IDs match.
type Movie struct {
	ID        string          `json:"id" yaml:"id"`
	Title     string          `json:"title" yaml:"title"`
	Year      int             `json:"year" yaml:"year"` // 0 when unknown
	PosterURL *string         `json:"poster,omitempty" yaml:"poster,omitempty"`
	Rating    float64         `json:"rating" yaml:"rating"` // 0-10, 0 when unknown
	Genres    []string        `json:"genres" yaml:"genres"`
	Overview  string          `json:"overview" yaml:"overview"`
	Votes     string          `json:"votes,omitempty" yaml:"votes,omitempty"`
	Runtime   string          `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	Raw       json.RawMessage `json:"raw,omitempty" yaml:"-"`
}

// Same reports whether m and other identify the same title.
func (m Movie) Same(other Movie) bool {
	return m.ID == other.ID
}

// Poster returns the poster URL or "".
func (m Movie) Poster() string {
	if m.PosterURL == nil {
		return ""
	}
	return *m.PosterURL
}

// GenreList joins genres for display.
func (m Movie) GenreList() string {
	return strings.Join(m.Genres, ", ")
}

// Page is one page of enriched catalog results.
type Page struct {
	Number       int     `json:"page" yaml:"page"`
	Items        []Movie `json:"items" yaml:"items"`
	TotalResults int     `json:"total_results" yaml:"total_results"`
	HasMore      bool    `json:"has_more" yaml:"has_more"`
}

// WatchlistEntry is a saved movie. The watchlist holds at most one entry per ID.
type WatchlistEntry struct {
	ID        string          `json:"id" yaml:"id"`
	Title     string          `json:"title" yaml:"title"`
	Year      int             `json:"year" yaml:"year"`
	PosterURL *string         `json:"poster,omitempty" yaml:"poster,omitempty"`
	Rating    float64         `json:"rating" yaml:"rating"`
	Genres    []string        `json:"genres" yaml:"genres"`
	Runtime   string          `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	Overview  string          `json:"overview,omitempty" yaml:"overview,omitempty"`
	Raw       json.RawMessage `json:"raw,omitempty" yaml:"-"`
	AddedAt   time.Time       `json:"added_at" yaml:"added_at"`
}

// NewWatchlistEntry snapshots m for the watchlist.
func NewWatchlistEntry(m Movie, addedAt time.Time) WatchlistEntry {
	genres := make([]string, len(m.Genres))
	copy(genres, m.Genres)
	return WatchlistEntry{
		ID:        m.ID,
		Title:     m.Title,
		Year:      m.Year,
		PosterURL: m.PosterURL,
		Rating:    m.Rating,
		Genres:    genres,
		Runtime:   m.Runtime,
		Overview:  m.Overview,
		Raw:       m.Raw,
		AddedAt:   addedAt.UTC(),
	}
}

// Review is one entry in the append-only review log.
type Review struct {
	MovieID     string    `json:"movie_id" yaml:"movie_id"`
	MovieTitle  string    `json:"movie_title" yaml:"movie_title"`
	Rating      int       `json:"rating" yaml:"rating"` // 1-5 stars
	Text        string    `json:"text" yaml:"text"`
	SubmittedAt time.Time `json:"submitted_at" yaml:"submitted_at"`
}

// Account is a locally registered user. PasswordHash is a bcrypt hash.
type Account struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Email        string    `json:"email" yaml:"email"`
	PasswordHash string    `json:"password_hash" yaml:"-"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// Session is the logged-in identity. It never carries a credential.
type Session struct {
	AccountID  string    `json:"account_id" yaml:"account_id"`
	Name       string    `json:"name" yaml:"name"`
	Email      string    `json:"email" yaml:"email"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	LoggedInAt time.Time `json:"logged_in_at" yaml:"logged_in_at"`
}

// NewSession builds the session record for a successful login.
func (a Account) NewSession(now time.Time) Session {
	return Session{
		AccountID:  a.ID,
		Name:       a.Name,
		Email:      a.Email,
		CreatedAt:  a.CreatedAt,
		LoggedInAt: now.UTC(),
	}
}
