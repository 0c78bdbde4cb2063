package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.URL.Query().Get("apikey"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"Response":"True","Title":"Heat"}`))
	}))
	defer srv.Close()

	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)

	c := New(&QueryAuth{Param: "apikey"}, WithAPIKey("k"), WithHTTPClient(srv.Client()))
	resp, err := c.Get(ctx, srv.URL, "detail")
	require.NoError(t, err)
	assert.True(t, testLogger.Contains(`"operation":"detail"`))
	assert.True(t, testLogger.Contains(`"status":200`))
	assert.False(t, testLogger.Contains("apikey"))

	var out struct{ Title string }
	require.NoError(t, DecodeResponse(resp, &out, "detail"))
	assert.Equal(t, "Heat", out.Title)
}

func TestDecodeResponseErrors(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		resp, err := New(nil).Get(context.Background(), srv.URL, "search")
		require.NoError(t, err)

		err = DecodeResponse(resp, &struct{}{}, "search")
		require.Error(t, err)
		assert.True(t, errors.IsNetwork(err))

		var netErr *errors.NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))
		defer srv.Close()

		resp, err := New(nil).Get(context.Background(), srv.URL, "search")
		require.NoError(t, err)
		assert.True(t, errors.IsNetwork(DecodeResponse(resp, &struct{}{}, "search")))
	})

	t.Run("unreachable host", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := New(nil).Get(context.Background(), url, "search")
		assert.True(t, errors.IsNetwork(err))
	})
}
