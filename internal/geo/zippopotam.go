package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rentbounce/bouncer/internal/domain"
)

const zippopotamBaseURL = "https://api.zippopotam.us/us"

// ZippopotamClient resolves US zip codes through the free Zippopotam.us
// API. The API returns 404 for unknown zips, which maps to a nil result.
type ZippopotamClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewZippopotamClient() *ZippopotamClient {
	return &ZippopotamClient{
		baseURL:    zippopotamBaseURL,
		httpClient: newHTTPClient(),
	}
}

type zippopotamResponse struct {
	Places []struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

func (c *ZippopotamClient) LookupZip(ctx context.Context, zip string) (*domain.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+zip, nil)
	if err != nil {
		return nil, fmt.Errorf("create zippopotam request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zippopotam request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read zippopotam response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zippopotam API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result zippopotamResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal zippopotam response: %w", err)
	}

	if len(result.Places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(result.Places[0].Latitude, 64)
	if err != nil {
		return nil, fmt.Errorf("parse zippopotam latitude %q: %w", result.Places[0].Latitude, err)
	}
	lon, err := strconv.ParseFloat(result.Places[0].Longitude, 64)
	if err != nil {
		return nil, fmt.Errorf("parse zippopotam longitude %q: %w", result.Places[0].Longitude, err)
	}

	return &domain.Coordinates{Latitude: lat, Longitude: lon}, nil
}
