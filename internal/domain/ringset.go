package domain

import "time"

// RingSet is one generation batch: every ring produced around a single center
// at a single angular step, concatenated in request order.
// A RingSet is immutable output data and contains no side effects; ID is zero
// until the set is persisted.
type RingSet struct {
	ID          int64
	Name        string
	Center      Coordinate
	StepDegrees float64
	Distances   []float64
	CreatedAt   time.Time
	Points      []GeneratedPoint
}
