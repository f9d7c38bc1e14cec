package ports

import (
	"context"
	"range-ring-service/internal/domain"
)

// Contract for caching computed rings keyed by center, radius, and step.
//
// Generation is deterministic, so cached entries never go stale; eviction is
// purely a capacity concern left to the implementation.
type RingCache interface {
	// Return the cached ring and whether it was present. A miss is
	// (nil, false, nil); the error reports infrastructure failures only.
	GetRing(ctx context.Context, center domain.Coordinate, distanceMiles, stepDegrees float64) ([]domain.GeneratedPoint, bool, error)
	// Store a computed ring.
	PutRing(ctx context.Context, center domain.Coordinate, distanceMiles, stepDegrees float64, points []domain.GeneratedPoint) error
}
