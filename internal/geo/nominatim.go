package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rentbounce/bouncer/internal/domain"
)

const nominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// NominatimClient geocodes through the free OSM Nominatim API. No key
// required; Nominatim asks for an identifying User-Agent.
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewNominatimClient() *NominatimClient {
	return &NominatimClient{
		baseURL:    nominatimBaseURL,
		httpClient: newHTTPClient(),
	}
}

func (c *NominatimClient) Name() string { return ProviderNominatim }

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *NominatimClient) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	u := fmt.Sprintf("%s?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create nominatim request: %w", err)
	}
	req.Header.Set("User-Agent", "bouncer/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read nominatim response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("unmarshal nominatim response: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse nominatim latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse nominatim longitude %q: %w", results[0].Lon, err)
	}

	return &domain.Coordinates{Latitude: lat, Longitude: lon}, nil
}
