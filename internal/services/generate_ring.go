package services

import (
	"fmt"
	"math"
	"range-ring-service/internal/domain"
	"range-ring-service/internal/geo"
)

// DefaultStepDegrees is the angular resolution used when a request leaves the
// step unset: 10 degrees yields a closed 36-point ring.
const DefaultStepDegrees = 10.0

// maxRingPoints caps the size of one ring; the finest accepted step is
// 360/maxRingPoints, one ten-thousandth of a degree.
const maxRingPoints = 3_600_000

// GenerateRing computes the ring of points at distanceMiles around center,
// one point per bearing in {0, step, 2*step, ...} below 360.
//
// The output is ordered by strictly increasing bearing starting at 0; that
// ordering is part of the contract. Output longitudes are normalized to
// [-180, 180). A step that does not evenly divide 360 is accepted but the
// ring will not revisit bearing 0 exactly; callers wanting a closed,
// non-overlapping ring must pass a divisor of 360. A ring is capped at
// maxRingPoints points, so a positive step finer than 360/maxRingPoints
// degrees is rejected like a non-positive one.
//
// The center is assumed valid (callers validate bounds); the distance and
// step are checked defensively. Either the complete ring is returned or an
// error wrapping domain.ErrInvalidDistance / domain.ErrInvalidStep; there is
// no partial output.
func GenerateRing(center domain.Coordinate, distanceMiles, stepDegrees float64) ([]domain.GeneratedPoint, error) {
	if stepDegrees == 0 {
		stepDegrees = DefaultStepDegrees
	}
	if err := validateDistance(distanceMiles); err != nil {
		return nil, fmt.Errorf("generate ring: %w", err)
	}
	if err := validateStep(stepDegrees); err != nil {
		return nil, fmt.Errorf("generate ring: %w", err)
	}

	// Bearings are computed as i*step rather than accumulated so that
	// fractional steps stay drift-free and the point count is deterministic.
	n := int(math.Ceil(360 / stepDegrees))

	points := make([]domain.GeneratedPoint, 0, n)
	for i := 0; i < n; i++ {
		bearing := float64(i) * stepDegrees
		if bearing >= 360 {
			break
		}

		lat, lon := geo.Destination(center.Lat, center.Lon, distanceMiles, bearing)
		points = append(points, domain.GeneratedPoint{
			Distance:  distanceMiles,
			Angle:     bearing,
			Latitude:  lat,
			Longitude: lon,
		})
	}

	return points, nil
}

func validateDistance(distanceMiles float64) error {
	if math.IsNaN(distanceMiles) || math.IsInf(distanceMiles, 0) || distanceMiles <= 0 {
		return fmt.Errorf("distance %v mi: %w", distanceMiles, domain.ErrInvalidDistance)
	}
	return nil
}

func validateStep(stepDegrees float64) error {
	if math.IsNaN(stepDegrees) || math.IsInf(stepDegrees, 0) || stepDegrees <= 0 {
		return fmt.Errorf("step %v deg: %w", stepDegrees, domain.ErrInvalidStep)
	}
	// The point count sizes an allocation; bound it here, before the
	// conversion to int can overflow.
	if pts := 360 / stepDegrees; pts > maxRingPoints {
		return fmt.Errorf("step %v deg: ring would exceed %d points: %w", stepDegrees, maxRingPoints, domain.ErrInvalidStep)
	}
	return nil
}
