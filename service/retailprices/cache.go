package retailprices

import (
	"context"
	"time"

	"github.com/elC0mpa/azure-storage-doctor/model"
)

func NewPriceCache(ttl time.Duration) *PriceCache {
	return &PriceCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Get returns the cached records for key. Expired entries are misses.
func (c *PriceCache) Get(key string) ([]model.PriceRecord, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	if !exists || c.now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.records, true
}

func (c *PriceCache) Set(key string, records []model.PriceRecord) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = &cacheEntry{
		records:   records,
		expiresAt: c.now().Add(c.ttl),
	}
}

func (c *PriceCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]*cacheEntry)
}

// NewCachingService answers repeated filters from cache. Empty answers and
// errors are never cached.
func NewCachingService(next CatalogService, cache *PriceCache) *cachingService {
	return &cachingService{
		next:  next,
		cache: cache,
	}
}

func (s *cachingService) Query(ctx context.Context, filter model.PriceFilter) ([]model.PriceRecord, error) {
	key := filter.String()
	if records, ok := s.cache.Get(key); ok {
		return records, nil
	}

	records, err := s.next.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		s.cache.Set(key, records)
	}
	return records, nil
}
