package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeocoderSelectsProvider(t *testing.T) {
	assert.IsType(t, &GoogleClient{}, NewGeocoder("some-key"))
	assert.IsType(t, &NominatimClient{}, NewGeocoder(""))
}

func googleTestClient(serverURL string) *GoogleClient {
	c := NewGoogleClient("test-key")
	c.baseURL = serverURL
	return c
}

func TestGoogleGeocodeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1600 Amphitheatre Pkwy", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":37.422,"lng":-122.084}}}]}`))
	}))
	defer srv.Close()

	coords, err := googleTestClient(srv.URL).Geocode(context.Background(), "1600 Amphitheatre Pkwy")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.Equal(t, 37.422, coords.Latitude)
	assert.Equal(t, -122.084, coords.Longitude)
}

func TestGoogleGeocodeEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer srv.Close()

	coords, err := googleTestClient(srv.URL).Geocode(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestGoogleGeocodeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key","results":[]}`))
	}))
	defer srv.Close()

	coords, err := googleTestClient(srv.URL).Geocode(context.Background(), "anywhere")
	assert.Error(t, err)
	assert.Nil(t, coords)
}

func TestGoogleGeocodeNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force connection refused

	coords, err := googleTestClient(srv.URL).Geocode(context.Background(), "anywhere")
	assert.Error(t, err)
	assert.Nil(t, coords)
}

func TestNominatimGeocodeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[{"lat":"40.7128","lon":"-74.0060"}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient()
	c.baseURL = srv.URL

	coords, err := c.Geocode(context.Background(), "New York")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.Equal(t, 40.7128, coords.Latitude)
	assert.Equal(t, -74.0060, coords.Longitude)
}

func TestNominatimGeocodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewNominatimClient()
	c.baseURL = srv.URL

	coords, err := c.Geocode(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestNominatimGeocodeBadCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"not-a-number","lon":"-74.0060"}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient()
	c.baseURL = srv.URL

	coords, err := c.Geocode(context.Background(), "New York")
	assert.Error(t, err)
	assert.Nil(t, coords)
}

func TestZippopotamLookupSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/90210", r.URL.Path)
		_, _ = w.Write([]byte(`{"places":[{"latitude":"34.0901","longitude":"-118.4065"}]}`))
	}))
	defer srv.Close()

	c := NewZippopotamClient()
	c.baseURL = srv.URL

	coords, err := c.LookupZip(context.Background(), "90210")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.Equal(t, 34.0901, coords.Latitude)
	assert.Equal(t, -118.4065, coords.Longitude)
}

func TestZippopotamLookupUnknownZip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewZippopotamClient()
	c.baseURL = srv.URL

	coords, err := c.LookupZip(context.Background(), "00000")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestZippopotamLookupNoPlaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"places":[]}`))
	}))
	defer srv.Close()

	c := NewZippopotamClient()
	c.baseURL = srv.URL

	coords, err := c.LookupZip(context.Background(), "90210")
	require.NoError(t, err)
	assert.Nil(t, coords)
}
