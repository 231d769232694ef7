// Package provider resolves addresses to coordinates and fetches satellite
// imagery for the planner.
package provider

import (
	"context"

	"github.com/roofsolar/planner/internal/catalog"
	"github.com/roofsolar/planner/pkg/core"
)

// Where a resolved location came from.
const (
	SourceCatalog = "catalog"
	SourceGeocode = "geocode"
)

// ErrNotFound is returned when an address cannot be resolved.
var ErrNotFound = catalog.ErrNotFound

// Result is a resolved address.
type Result struct {
	core.Location
	PlaceID string `json:"place_id,omitempty"`
	Source  string `json:"source"`
}

// Geocoder turns a free-form address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Result, error)
}

// Imagery fetches the satellite picture for a map view.
type Imagery interface {
	Fetch(ctx context.Context, req core.ImageryRequest) (core.Image, error)
}

// Catalog is the local address store consulted before geocoding.
type Catalog interface {
	Lookup(ctx context.Context, address string) (core.Location, error)
	Remember(ctx context.Context, loc core.Location, source string, details map[string]any) error
}
