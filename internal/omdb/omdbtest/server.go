// Package omdbtest provides an in-process fake of the metadata API for tests.
package omdbtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agentstation/marquee/internal/omdb"
	"github.com/agentstation/marquee/pkg/constants"
)

// Server serves search pages over Titles and detail lookups by id.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	apiKey       string
	titles       []omdb.Detail
	failDetail   map[string]bool
	brokenDetail map[string]bool
	searchError  string
	pageOverride map[int][]omdb.SearchHit
	gate         int
	gateOpen     bool

	searches    atomic.Int64
	details     atomic.Int64
	inFlight    atomic.Int64
	maxInFlight atomic.Int64
	arrived     chan struct{}
}

// New starts a fake server over titles and closes it when the test ends.
func New(t testing.TB, titles ...omdb.Detail) *Server {
	t.Helper()
	s := &Server{
		titles:       titles,
		failDetail:   map[string]bool{},
		brokenDetail: map[string]bool{},
		pageOverride: map[int][]omdb.SearchHit{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Title builds a complete detail record.
func Title(id, title string, year int, rating string, genres ...string) omdb.Detail {
	return omdb.Detail{
		ImdbID:     id,
		Title:      title,
		Year:       strconv.Itoa(year),
		Runtime:    "120 min",
		Genre:      strings.Join(genres, ", "),
		Plot:       "Plot of " + title,
		Poster:     "https://img.example/" + id + ".jpg",
		ImdbRating: rating,
		ImdbVotes:  "1,234",
		Type:       "movie",
		Response:   "True",
	}
}

// Titles builds n numbered titles with ids tt0000001..
func Titles(n int) []omdb.Detail {
	out := make([]omdb.Detail, n)
	for i := range out {
		id := fmt.Sprintf("tt%07d", i+1)
		out[i] = Title(id, "Movie "+strconv.Itoa(i+1), 2025, "7.0", "Drama")
	}
	return out
}

// RequireAPIKey rejects requests whose apikey parameter differs from key.
func (s *Server) RequireAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
}

// FailDetail makes detail lookups for ids answer with the failure sentinel.
func (s *Server) FailDetail(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.failDetail[id] = true
	}
}

// BreakDetail makes detail lookups for ids answer with HTTP 500.
func (s *Server) BreakDetail(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.brokenDetail[id] = true
	}
}

// FailSearch makes every search answer with the failure sentinel and msg.
func (s *Server) FailSearch(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchError = msg
}

// OverridePage replaces the hits served for page.
func (s *Server) OverridePage(page int, hits []omdb.SearchHit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageOverride[page] = hits
}

// GateDetails holds every detail response until n detail requests are in
// flight at once, or a timeout passes.
func (s *Server) GateDetails(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = n
	s.gateOpen = false
	s.arrived = make(chan struct{})
}

// Searches returns the number of search requests served.
func (s *Server) Searches() int { return int(s.searches.Load()) }

// Details returns the number of detail requests served.
func (s *Server) Details() int { return int(s.details.Load()) }

// MaxInFlight returns the highest number of concurrent detail requests seen.
func (s *Server) MaxInFlight() int { return int(s.maxInFlight.Load()) }

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.mu.Lock()
	key := s.apiKey
	s.mu.Unlock()
	if key != "" && q.Get(constants.APIKeyParam) != key {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, map[string]string{"Response": "False", "Error": "Invalid API key!"})
		return
	}

	switch {
	case q.Get("s") != "":
		s.searches.Add(1)
		s.search(w, q.Get("page"))
	case q.Get("i") != "":
		s.details.Add(1)
		s.detail(w, q.Get("i"))
	default:
		writeJSON(w, map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."})
	}
}

func (s *Server) search(w http.ResponseWriter, pageParam string) {
	page, err := strconv.Atoi(pageParam)
	if err != nil || page < 1 {
		page = 1
	}

	s.mu.Lock()
	searchError := s.searchError
	override, overridden := s.pageOverride[page]
	titles := s.titles
	s.mu.Unlock()

	if searchError != "" {
		writeJSON(w, omdb.SearchResponse{Response: "False", Error: searchError})
		return
	}

	var hits []omdb.SearchHit
	if overridden {
		hits = override
	} else {
		start := (page - 1) * constants.PageSize
		end := min(start+constants.PageSize, len(titles))
		for i := start; i < end; i++ {
			d := titles[i]
			hits = append(hits, omdb.SearchHit{ImdbID: d.ImdbID, Title: d.Title, Year: d.Year, Poster: d.Poster, Type: d.Type})
		}
	}

	if len(hits) == 0 {
		writeJSON(w, omdb.SearchResponse{Response: "False", Error: "Movie not found!"})
		return
	}
	writeJSON(w, omdb.SearchResponse{
		Response:     "True",
		Search:       hits,
		TotalResults: strconv.Itoa(len(titles)),
	})
}

func (s *Server) detail(w http.ResponseWriter, id string) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		current := s.maxInFlight.Load()
		if n <= current || s.maxInFlight.CompareAndSwap(current, n) {
			break
		}
	}

	s.mu.Lock()
	gate, arrived := s.gate, s.arrived
	if gate > 0 && int(n) >= gate && !s.gateOpen {
		s.gateOpen = true
		close(arrived)
	}
	failing, broken := s.failDetail[id], s.brokenDetail[id]
	var found *omdb.Detail
	for i := range s.titles {
		if s.titles[i].ImdbID == id {
			d := s.titles[i]
			found = &d
			break
		}
	}
	s.mu.Unlock()

	if gate > 0 {
		select {
		case <-arrived:
		case <-time.After(3 * time.Second):
		}
	}

	switch {
	case broken:
		w.WriteHeader(http.StatusInternalServerError)
	case failing || found == nil:
		writeJSON(w, map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."})
	default:
		writeJSON(w, found)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
