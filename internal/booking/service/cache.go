package service

import (
	"sync"
	"time"

	"slotdesk/pkg/model"
)

// ListingCache holds the last fetched availability listing for a short
// TTL. It is invalidated after every successful write so a stale view of
// a changed slot never outlives one TTL window.
type ListingCache struct {
	mu       sync.RWMutex
	listing  *model.Listing
	storedAt time.Time
	ttl      time.Duration
	now      func() time.Time
}

func NewListingCache(ttl time.Duration) *ListingCache {
	return &ListingCache{
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns the cached listing while it is fresh, else nil.
func (c *ListingCache) Get() *model.Listing {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.listing == nil || c.now().Sub(c.storedAt) >= c.ttl {
		return nil
	}
	return c.listing
}

func (c *ListingCache) Set(listing *model.Listing) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listing = listing
	c.storedAt = c.now()
}

func (c *ListingCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listing = nil
}
