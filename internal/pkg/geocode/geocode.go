// Package geocode resolves postal addresses to coordinates through the
// Google Geocoding API. It is the only outbound HTTP collaborator.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/yourplaces/backend/internal/pkg/httperror"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Location is a resolved coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location Location `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Resolve turns an address into coordinates. An address the provider cannot
// resolve comes back as a 422 application error; transport and provider
// failures are wrapped and surface as a generic 500 at the boundary.
func (c *Client) Resolve(ctx context.Context, address string) (Location, error) {
	query := url.Values{}
	query.Set("address", address)
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return Location{}, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geocode request failed with status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if body.Status == "ZERO_RESULTS" || len(body.Results) == 0 {
		return Location{}, httperror.UnprocessableEntity("Could not find location for the specified address.")
	}
	if body.Status != "OK" {
		return Location{}, fmt.Errorf("geocode provider returned status %q", body.Status)
	}

	return body.Results[0].Geometry.Location, nil
}
