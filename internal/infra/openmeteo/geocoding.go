package openmeteo

import (
	"context"
	"net/url"
	"strconv"

	"github.com/yanqian/skycast/internal/domain/location"
)

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Search implements location.Geocoder. An absent results field means no match.
func (c *Client) Search(ctx context.Context, name string, count int) ([]location.Location, error) {
	if count <= 0 {
		count = 1
	}
	query := url.Values{}
	query.Set("name", name)
	query.Set("count", strconv.Itoa(count))
	query.Set("language", c.language)
	query.Set("format", "json")

	var raw geocodingResponse
	if err := c.getJSON(ctx, "geocoding", c.geocodingURL, query, &raw); err != nil {
		return nil, err
	}

	out := make([]location.Location, 0, len(raw.Results))
	for _, r := range raw.Results {
		out = append(out, location.Location{
			Name:      r.Name,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}
	return out, nil
}

var _ location.Geocoder = (*Client)(nil)
