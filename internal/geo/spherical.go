// Package geo holds the spherical trigonometry used by the ring generator.
//
// The Earth is modeled as a sphere: great-circle math only, no ellipsoidal
// corrections and no reprojection. That keeps every function here a pure,
// closed-form computation.
package geo

import "math"

// EarthRadiusMiles is the mean Earth radius in statute miles used for every
// conversion between surface distance and angular distance.
const EarthRadiusMiles = 3958.8

const (
	radiansPerDegree = math.Pi / 180
	degreesPerRadian = 180 / math.Pi
)

// Destination returns the coordinate reached by traveling distanceMiles from
// (lat, lon) along the given compass bearing, using the direct spherical
// formula:
//
//	sin(lat2) = sin(lat1)*cos(d) + cos(lat1)*sin(d)*cos(brg)
//	tan(dLon) = sin(brg)*sin(d)*cos(lat1) / (cos(d) - sin(lat1)*sin(lat2))
//
// where d is the angular distance distanceMiles/EarthRadiusMiles. The
// returned longitude is normalized to [-180, 180).
//
// A center exactly at a pole needs no special case: the formula evaluates
// cleanly, though the destination longitude degenerates there because every
// direction from a pole starts along the same set of meridians. That is
// spherical geometry, not an error.
func Destination(lat, lon, distanceMiles, bearingDegrees float64) (destLat, destLon float64) {
	d := distanceMiles / EarthRadiusMiles
	brg := bearingDegrees * radiansPerDegree
	lat1 := lat * radiansPerDegree
	lon1 := lon * radiansPerDegree

	sinLat2 := math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brg)
	lat2 := math.Asin(sinLat2)
	lon2 := lon1 + math.Atan2(
		math.Sin(brg)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*sinLat2,
	)

	return lat2 * degreesPerRadian, WrapLongitude(lon2 * degreesPerRadian)
}

// Haversine returns the great-circle distance in statute miles between two
// coordinates given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rLat1 := lat1 * radiansPerDegree
	rLat2 := lat2 * radiansPerDegree
	dLat := (lat2 - lat1) * radiansPerDegree
	dLon := (lon2 - lon1) * radiansPerDegree

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)
	h := sinDLat*sinDLat + math.Cos(rLat1)*math.Cos(rLat2)*sinDLon*sinDLon

	return EarthRadiusMiles * 2 * math.Asin(math.Sqrt(h))
}

// WrapLongitude normalizes a longitude in degrees into [-180, 180).
// math.Mod keeps the sign of the dividend, so negative inputs need the extra
// +360 before the final shift; exactly +180 maps to -180.
func WrapLongitude(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
