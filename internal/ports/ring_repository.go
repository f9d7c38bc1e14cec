package ports

import (
	"context"
	"errors"
	"range-ring-service/internal/domain"
	"time"
)

// ErrRingSetNotFound reports a lookup for a ring set ID that does not exist.
var ErrRingSetNotFound = errors.New("ring set not found")

// RingSetSummary is the listing view of a persisted ring set: everything but
// the points themselves.
type RingSetSummary struct {
	ID          int64
	Name        string
	Center      domain.Coordinate
	StepDegrees float64
	PointCount  int
	CreatedAt   time.Time
}

// Port: a boundary for persisting and retrieving generated ring sets.
type RingSetRepository interface {
	// Persist the set, its distance list, and its points; returns the
	// assigned ID.
	SaveRingSet(ctx context.Context, set *domain.RingSet) (int64, error)
	// Retrieve one set with its points in stored order and its distance
	// list exactly as saved, duplicates included.
	// Returns ErrRingSetNotFound when the ID is unknown.
	GetRingSet(ctx context.Context, id int64) (*domain.RingSet, error)
	// List saved sets, newest first, up to limit.
	ListRingSets(ctx context.Context, limit int) ([]RingSetSummary, error)
}
