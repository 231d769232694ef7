package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/roofsolar/planner/internal/api"
	"github.com/roofsolar/planner/pkg/core"
)

// GoogleGeocoder resolves addresses with the Google Geocoding API.
type GoogleGeocoder struct {
	client *api.Client
}

// NewGoogleGeocoder wraps an API client.
func NewGoogleGeocoder(client *api.Client) *GoogleGeocoder {
	return &GoogleGeocoder{client: client}
}

// Geocode implements Geocoder. A ZERO_RESULTS style answer wraps ErrNotFound.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (Result, error) {
	res, err := g.client.Geocode(ctx, address)
	if errors.Is(err, api.ErrNoResults) {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, err.Error())
	}
	if err != nil {
		return Result{}, err
	}
	return Result{
		Location: res.Location(),
		PlaceID:  res.PlaceID,
		Source:   SourceGeocode,
	}, nil
}

// GoogleImagery fetches satellite pictures from the Static Maps API.
type GoogleImagery struct {
	client *api.Client
}

// NewGoogleImagery wraps an API client.
func NewGoogleImagery(client *api.Client) *GoogleImagery {
	return &GoogleImagery{client: client}
}

// Fetch implements Imagery.
func (g *GoogleImagery) Fetch(ctx context.Context, req core.ImageryRequest) (core.Image, error) {
	data, _, err := g.client.StaticMap(ctx, req)
	if err != nil {
		return core.Image{}, err
	}
	return Decode(data)
}
