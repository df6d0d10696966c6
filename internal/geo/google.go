package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rentbounce/bouncer/internal/domain"
)

const googleBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleClient geocodes through the Google Maps Geocoding API.
type GoogleClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGoogleClient(apiKey string) *GoogleClient {
	return &GoogleClient{
		apiKey:     apiKey,
		baseURL:    googleBaseURL,
		httpClient: newHTTPClient(),
	}
}

func (c *GoogleClient) Name() string { return ProviderGoogle }

type googleResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func (c *GoogleClient) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	u := fmt.Sprintf("%s?address=%s&key=%s", c.baseURL, url.QueryEscape(address), c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create google request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read google response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result googleResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal google response: %w", err)
	}

	if result.Status == "REQUEST_DENIED" || result.Status == "OVER_QUERY_LIMIT" {
		return nil, fmt.Errorf("google API error: %s: %s", result.Status, result.ErrorMessage)
	}

	if len(result.Results) == 0 {
		return nil, nil
	}

	loc := result.Results[0].Geometry.Location
	return &domain.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
