package provider

import (
	"context"

	"github.com/roofsolar/planner/internal/cache"
	"github.com/roofsolar/planner/pkg/core"
)

// CachedImagery answers repeated picture requests from memory.
type CachedImagery struct {
	inner Imagery
	cache *cache.ImageCache
}

// NewCachedImagery wraps inner with c.
func NewCachedImagery(inner Imagery, c *cache.ImageCache) *CachedImagery {
	return &CachedImagery{inner: inner, cache: c}
}

// Fetch implements Imagery. Failed fetches are not cached.
func (c *CachedImagery) Fetch(ctx context.Context, req core.ImageryRequest) (core.Image, error) {
	if img, ok := c.cache.Get(req); ok {
		return img, nil
	}
	img, err := c.inner.Fetch(ctx, req)
	if err != nil {
		return core.Image{}, err
	}
	c.cache.Set(req, img)
	return img, nil
}
