package domain

import "errors"

// Ring generation failure kinds. Both are raised synchronously, wrapped with
// the offending value, and matched at call sites with errors.Is; a failed
// ring produces no points at all.
var (
	ErrInvalidDistance = errors.New("distance must be a positive, finite number of miles")
	ErrInvalidStep     = errors.New("angular step must be a positive, finite number of degrees")
)

// A single point on a range ring.
// GeneratedPoint is a plain output record: it carries the radius and bearing
// that produced it, has no lifecycle of its own, and is owned by whichever
// collection the caller assembles.
type GeneratedPoint struct {
	Distance  float64 // ring radius in statute miles, > 0
	Angle     float64 // bearing from the center, degrees clockwise from north, [0, 360)
	Latitude  float64 // degrees, [-90, 90]
	Longitude float64 // degrees, normalized to [-180, 180)
}
