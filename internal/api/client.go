// Package api talks to the Google Maps Platform web services used by the
// planner: Geocoding and Static Maps.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/roofsolar/planner/pkg/core"
)

// Default endpoints.
const (
	DefaultGeocodeURL   = "https://maps.googleapis.com/maps/api/geocode/json"
	DefaultStaticMapURL = "https://maps.googleapis.com/maps/api/staticmap"
	DefaultTimeout      = 30 * time.Second
)

const statusOK = "OK"

// maxImageBytes bounds a Static Maps response body.
const maxImageBytes = 16 << 20

var (
	// ErrNoResults is returned when the geocoder answers without a match.
	ErrNoResults = errors.New("no geocoding results")
	// ErrMissingKey is returned when no API key is configured.
	ErrMissingKey = errors.New("google maps api key is not configured")
)

// StatusError carries a non-200 answer from an upstream service.
type StatusError struct {
	Service string
	Code    int
	Status  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d %s", e.Service, e.Code, e.Status)
}

// Options configures a Client. Empty fields use the defaults.
type Options struct {
	APIKey       string
	GeocodeURL   string
	StaticMapURL string
	Region       string
	Language     string
	Timeout      time.Duration
}

// Client handles communication with the Google Maps web services.
type Client struct {
	geocodeURL   string
	staticMapURL string
	apiKey       string
	region       string
	language     string
	httpClient   *http.Client
}

// New creates a new API client.
func New(opts Options) *Client {
	if opts.GeocodeURL == "" {
		opts.GeocodeURL = DefaultGeocodeURL
	}
	if opts.StaticMapURL == "" {
		opts.StaticMapURL = DefaultStaticMapURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		geocodeURL:   strings.TrimRight(opts.GeocodeURL, "/"),
		staticMapURL: strings.TrimRight(opts.StaticMapURL, "/"),
		apiKey:       opts.APIKey,
		region:       opts.Region,
		language:     opts.Language,
		httpClient:   &http.Client{Timeout: opts.Timeout},
	}
}

// GeocodeResult is the first match of a geocoding request.
type GeocodeResult struct {
	FormattedAddress string  `json:"address"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	PlaceID          string  `json:"place_id"`
}

// Location converts the result to the planner's location type.
func (r GeocodeResult) Location() core.Location {
	return core.Location{Address: r.FormattedAddress, Lat: r.Lat, Lng: r.Lng}
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		PlaceID          string `json:"place_id"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-form address. Any answer other than status OK with
// at least one result wraps ErrNoResults.
func (c *Client) Geocode(ctx context.Context, address string) (GeocodeResult, error) {
	if c.apiKey == "" {
		return GeocodeResult{}, ErrMissingKey
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)
	if c.region != "" {
		q.Set("region", c.region)
	}
	if c.language != "" {
		q.Set("language", c.language)
	}

	body, _, err := c.get(ctx, "geocoding", c.geocodeURL+"?"+q.Encode(), 1<<20)
	if err != nil {
		return GeocodeResult{}, err
	}

	var data geocodeResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return GeocodeResult{}, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if data.Status != statusOK || len(data.Results) == 0 {
		return GeocodeResult{}, fmt.Errorf("%w: status %s", ErrNoResults, data.Status)
	}

	first := data.Results[0]
	return GeocodeResult{
		FormattedAddress: first.FormattedAddress,
		Lat:              first.Geometry.Location.Lat,
		Lng:              first.Geometry.Location.Lng,
		PlaceID:          first.PlaceID,
	}, nil
}

// StaticMap fetches a satellite picture centred on the request and returns
// its bytes and the upstream content type.
func (c *Client) StaticMap(ctx context.Context, req core.ImageryRequest) ([]byte, string, error) {
	if c.apiKey == "" {
		return nil, "", ErrMissingKey
	}

	q := url.Values{}
	q.Set("center", strconv.FormatFloat(req.Lat, 'f', -1, 64)+","+strconv.FormatFloat(req.Lng, 'f', -1, 64))
	q.Set("zoom", strconv.Itoa(req.Zoom))
	q.Set("size", fmt.Sprintf("%dx%d", req.Width, req.Height))
	q.Set("maptype", "satellite")
	q.Set("key", c.apiKey)

	return c.get(ctx, "static maps", c.staticMapURL+"?"+q.Encode(), maxImageBytes)
}

func (c *Client) get(ctx context.Context, service, target string, limit int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%s request failed: %w", service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &StatusError{
			Service: service,
			Code:    resp.StatusCode,
			Status:  http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s response: %w", service, err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
