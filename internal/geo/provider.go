package geo

import (
	"context"
	"net/http"
	"time"

	"github.com/rentbounce/bouncer/internal/domain"
)

// Provider constants
const (
	ProviderGoogle    = "google"
	ProviderNominatim = "nominatim"
)

// defaultTimeout bounds every external geocoding call. The upstream
// contract has no timeout; this is a hardening measure, not a behavior
// change (a timed-out call degrades to a nil result like any other error).
const defaultTimeout = 10 * time.Second

// Geocoder resolves a free-text address to coordinates.
//
// Implementations return (nil, nil) when the provider has no match for
// the query; a non-nil error means the call itself failed (transport,
// non-2xx status, unparseable body). Callers are expected to degrade
// both cases to "no coordinates".
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*domain.Coordinates, error)
	Name() string
}

// ZipLookup resolves a 5-digit postal code to coordinates, with the same
// nil-on-no-match contract as Geocoder.
type ZipLookup interface {
	LookupZip(ctx context.Context, zip string) (*domain.Coordinates, error)
}

// NewGeocoder returns the geocoder for the configured provider setup:
// the key-gated Google client when an API key is present, otherwise the
// free Nominatim client. A configured-but-failing Google call does not
// fall through to Nominatim.
func NewGeocoder(googleAPIKey string) Geocoder {
	if googleAPIKey != "" {
		return NewGoogleClient(googleAPIKey)
	}
	return NewNominatimClient()
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}
