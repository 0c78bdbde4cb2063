package transport

import (
	"net/http"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// QueryAuth sends the key as a query parameter, the way the metadata API expects.
type QueryAuth struct {
	Param string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request, apiKey string) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, apiKey)
	req.URL.RawQuery = query.Encode()
}
