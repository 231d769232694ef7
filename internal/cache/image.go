package cache

import (
	"sync"

	"github.com/roofsolar/planner/pkg/core"
)

// DefaultImageCapacity is the number of pictures kept when no capacity is
// given.
const DefaultImageCapacity = 64

// ImageCache keeps recently fetched satellite pictures by request. When
// full, the oldest entry is evicted.
type ImageCache struct {
	mu       sync.RWMutex
	capacity int
	images   map[core.ImageryRequest]core.Image
	order    []core.ImageryRequest
}

// NewImageCache creates a new ImageCache
func NewImageCache(capacity int) *ImageCache {
	if capacity <= 0 {
		capacity = DefaultImageCapacity
	}
	return &ImageCache{
		capacity: capacity,
		images:   make(map[core.ImageryRequest]core.Image, capacity),
	}
}

// Get retrieves a picture by request
func (c *ImageCache) Get(req core.ImageryRequest) (core.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[req]
	return img, ok
}

// Set stores a picture by request
func (c *ImageCache) Set(req core.ImageryRequest, img core.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.images[req]; !ok {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.images, oldest)
		}
		c.order = append(c.order, req)
	}
	c.images[req] = img
}

// Len is the number of cached pictures
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Reset clears all pictures from the cache
func (c *ImageCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images = make(map[core.ImageryRequest]core.Image, c.capacity)
	c.order = nil
}
