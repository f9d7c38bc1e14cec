package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinate (latitude, longitude) in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Validate checks the coordinate against the standard degree bounds.
// Generation assumes a valid center, so every entry point (HTTP, CLI, seeds)
// runs this before handing a coordinate to the ring generator.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return fmt.Errorf("validate coordinate: latitude %v is not a finite number", c.Lat)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return fmt.Errorf("validate coordinate: longitude %v is not a finite number", c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("validate coordinate: latitude %v outside [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("validate coordinate: longitude %v outside [-180, 180]", c.Lon)
	}
	return nil
}
