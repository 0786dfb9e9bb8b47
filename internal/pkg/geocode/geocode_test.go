package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourplaces/backend/internal/pkg/httperror"
)

func stubServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.URL.Query().Get("address"))
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveReturnsCoordinates(t *testing.T) {
	srv := stubServer(t, 200, `{
		"status": "OK",
		"results": [{"geometry": {"location": {"lat": 40.7484405, "lng": -73.9878584}}}]
	}`)

	c := NewClientWithBaseURL("test-key", srv.URL)
	loc, err := c.Resolve(context.Background(), "20 W 34th St, New York, NY 10001")
	require.NoError(t, err)
	require.InDelta(t, 40.7484405, loc.Lat, 1e-9)
	require.InDelta(t, -73.9878584, loc.Lng, 1e-9)
}

func TestResolveZeroResultsIsUnprocessable(t *testing.T) {
	srv := stubServer(t, 200, `{"status": "ZERO_RESULTS", "results": []}`)

	c := NewClientWithBaseURL("test-key", srv.URL)
	_, err := c.Resolve(context.Background(), "nowhere at all")
	require.Error(t, err)

	httpErr := httperror.From(err)
	require.Equal(t, 422, httpErr.Code)
	require.Equal(t, "Could not find location for the specified address.", httpErr.Message)
}

func TestResolveProviderFailure(t *testing.T) {
	srv := stubServer(t, 500, `{}`)

	c := NewClientWithBaseURL("test-key", srv.URL)
	_, err := c.Resolve(context.Background(), "somewhere")
	require.Error(t, err)

	// Transport failures must not leak detail to clients.
	require.Equal(t, 500, httperror.From(err).Code)
	require.Equal(t, "An unknown error occurred!", httperror.From(err).Message)
}
