package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"range-ring-service/internal/domain"
	"range-ring-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRingCache is a Redis-backed cache for computed rings.
//
// Entries never go stale (generation is deterministic), so the TTL exists
// only to bound memory on hot instances. The adapter is safe for concurrent
// use.
type RedisRingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRingCache(client *redis.Client, ttl time.Duration) (*RedisRingCache, error) {
	if client == nil {
		return nil, errors.New("redis ring cache: client is nil")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("redis ring cache: ttl must be positive, got %v", ttl)
	}
	return &RedisRingCache{client: client, ttl: ttl}, nil
}

// Fetch a cached ring. A missing key is a miss, not an error.
func (c *RedisRingCache) GetRing(
	ctx context.Context,
	center domain.Coordinate,
	distanceMiles float64,
	stepDegrees float64,
) (_ []domain.GeneratedPoint, _ bool, err error) {
	defer obs.Time(ctx, "ring.cache.Get")(&err)

	payload, err := c.client.Get(ctx, ringKey(center, distanceMiles, stepDegrees)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get ring cache: %w", err)
	}

	var points []domain.GeneratedPoint
	if err := json.Unmarshal([]byte(payload), &points); err != nil {
		return nil, false, fmt.Errorf("get ring cache: decode payload: %w", err)
	}

	return points, true, nil
}

// Store a computed ring under its request key.
func (c *RedisRingCache) PutRing(
	ctx context.Context,
	center domain.Coordinate,
	distanceMiles float64,
	stepDegrees float64,
	points []domain.GeneratedPoint,
) error {
	payload, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("put ring cache: encode payload: %w", err)
	}

	key := ringKey(center, distanceMiles, stepDegrees)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("put ring cache: %w", err)
	}

	return nil
}

// ringKey builds a deterministic key from the full-precision inputs.
// Shortest round-trip float formatting keeps distinct requests distinct.
func ringKey(center domain.Coordinate, distanceMiles, stepDegrees float64) string {
	parts := []string{
		"ring", "v1",
		formatFloat(center.Lat),
		formatFloat(center.Lon),
		formatFloat(distanceMiles),
		formatFloat(stepDegrees),
	}
	return strings.Join(parts, ":")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
