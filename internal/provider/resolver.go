package provider

import (
	"context"
	"errors"
	"log/slog"

	"github.com/roofsolar/planner/internal/util"
)

// Resolver answers from the catalog first and falls back to a geocoder.
// Geocoded addresses are remembered in the catalog.
type Resolver struct {
	catalog  Catalog
	geocoder Geocoder
	log      *slog.Logger
}

// NewResolver builds a resolver. Either collaborator may be nil.
func NewResolver(c Catalog, g Geocoder, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{catalog: c, geocoder: g, log: log}
}

// Resolve looks address up.
func (r *Resolver) Resolve(ctx context.Context, address string) (Result, error) {
	address = util.CleanAddress(address)
	if address == "" {
		return Result{}, ErrNotFound
	}

	if r.catalog != nil {
		loc, err := r.catalog.Lookup(ctx, address)
		switch {
		case err == nil:
			return Result{Location: loc, Source: SourceCatalog}, nil
		case !errors.Is(err, ErrNotFound):
			r.log.Warn("catalog lookup failed", "address", address, "error", err)
		}
	}

	if r.geocoder == nil {
		return Result{}, ErrNotFound
	}

	res, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		return Result{}, err
	}
	r.log.Debug("address geocoded", "address", address, "formatted", res.Address)

	if r.catalog != nil {
		details := map[string]any{"query": address}
		if res.PlaceID != "" {
			details["placeId"] = res.PlaceID
		}
		// stored under the query so the same input is answered locally next time
		stored := res.Location
		stored.Address = address
		if err := r.catalog.Remember(ctx, stored, SourceGeocode, details); err != nil {
			r.log.Warn("failed to remember address", "address", address, "error", err)
		}
	}
	return res, nil
}
