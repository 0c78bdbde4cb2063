package omdb

import "strings"

// failure is the value of Response when the API could not satisfy a request.
const failure = "False"

// SearchHit is one entry of a search page.
type SearchHit struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type,omitempty"`
}

// SearchResponse is the search endpoint payload. TotalResults is a decimal string.
type SearchResponse struct {
	Response     string      `json:"Response"`
	Error        string      `json:"Error,omitempty"`
	Search       []SearchHit `json:"Search"`
	TotalResults string      `json:"totalResults"`
}

// Detail is the title endpoint payload for plot=short lookups.
type Detail struct {
	ImdbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated,omitempty"`
	Released   string `json:"Released,omitempty"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director,omitempty"`
	Actors     string `json:"Actors,omitempty"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	ImdbVotes  string `json:"imdbVotes"`
	Type       string `json:"Type,omitempty"`
	Response   string `json:"Response"`
	Error      string `json:"Error,omitempty"`
}

func failed(response string) bool {
	return strings.EqualFold(response, failure)
}
