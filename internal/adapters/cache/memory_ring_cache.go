package cache

import (
	"context"
	"fmt"
	"range-ring-service/internal/domain"
	"sync"
)

// MemoryRingCache keeps computed rings in process memory, bounded to a fixed
// number of entries with oldest-first eviction. It suits single-instance
// deployments where running Redis is not worth the operational cost.
type MemoryRingCache struct {
	mu      sync.Mutex
	entries map[string][]domain.GeneratedPoint
	order   []string // insertion order, evicted from the front
	max     int
}

func NewMemoryRingCache(maxEntries int) (*MemoryRingCache, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("memory ring cache: maxEntries must be positive, got %d", maxEntries)
	}
	return &MemoryRingCache{
		entries: make(map[string][]domain.GeneratedPoint),
		max:     maxEntries,
	}, nil
}

// GetRing returns a copy of the cached ring; callers may mutate the result.
func (c *MemoryRingCache) GetRing(
	_ context.Context,
	center domain.Coordinate,
	distanceMiles float64,
	stepDegrees float64,
) ([]domain.GeneratedPoint, bool, error) {
	key := ringKey(center, distanceMiles, stepDegrees)

	c.mu.Lock()
	defer c.mu.Unlock()

	points, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]domain.GeneratedPoint(nil), points...), true, nil
}

func (c *MemoryRingCache) PutRing(
	_ context.Context,
	center domain.Coordinate,
	distanceMiles float64,
	stepDegrees float64,
	points []domain.GeneratedPoint,
) error {
	key := ringKey(center, distanceMiles, stepDegrees)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.max {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = append([]domain.GeneratedPoint(nil), points...)

	return nil
}
