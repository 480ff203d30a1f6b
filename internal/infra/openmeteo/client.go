package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultForecastBaseURL = "https://api.open-meteo.com/v1"
	defaultGeocodingURL    = "https://geocoding-api.open-meteo.com/v1/search"
	defaultLanguage        = "en"
)

// Options configures the Open-Meteo client.
type Options struct {
	ForecastBaseURL string
	GeocodingURL    string
	Language        string
	Timeout         time.Duration
}

// Client talks to the Open-Meteo geocoding and forecast APIs. No API key is needed.
type Client struct {
	forecastURL  string
	geocodingURL string
	language     string
	httpClient   *http.Client
}

// NewClient builds an API client. A zero Timeout leaves requests bounded only
// by their context.
func NewClient(opts Options) *Client {
	forecastBase := strings.TrimSpace(opts.ForecastBaseURL)
	if forecastBase == "" {
		forecastBase = defaultForecastBaseURL
	}
	geocoding := strings.TrimSpace(opts.GeocodingURL)
	if geocoding == "" {
		geocoding = defaultGeocodingURL
	}
	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = defaultLanguage
	}
	return &Client{
		forecastURL:  strings.TrimRight(forecastBase, "/") + "/forecast",
		geocodingURL: strings.TrimRight(geocoding, "/"),
		language:     language,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// getJSON issues a single GET and decodes the body into out. Non 2xx answers
// are errors carrying a short excerpt of the body.
func (c *Client) getJSON(ctx context.Context, kind, endpoint string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", kind, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("%s request error: status=%d body=%s", kind, resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", kind, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", kind, err)
	}
	return nil
}
