package services

import (
	"errors"
	"math"
	"range-ring-service/internal/domain"
	"range-ring-service/internal/geo"
	"reflect"
	"strings"
	"testing"
)

func TestGenerateRingCardinality(t *testing.T) {
	center := domain.Coordinate{Lat: 40.7128, Lon: -74.006}

	cases := []struct {
		step float64
		want int
	}{
		{10, 36},
		{90, 4},
		{120, 3},
		{360, 1},
		{0, 36}, // zero selects the 10-degree default
	}

	for _, c := range cases {
		points, err := GenerateRing(center, 25, c.step)
		if err != nil {
			t.Fatalf("step %v: unexpected error: %v", c.step, err)
		}
		if len(points) != c.want {
			t.Errorf("step %v: got %d points, want %d", c.step, len(points), c.want)
		}
	}
}

func TestGenerateRingNonDividingStep(t *testing.T) {
	// 7 does not divide 360: bearings run 0, 7, ..., 357 and never revisit 0.
	points, err := GenerateRing(domain.Coordinate{}, 10, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(points) != 52 {
		t.Fatalf("got %d points, want 52", len(points))
	}
	last := points[len(points)-1].Angle
	if last != 357 {
		t.Errorf("last bearing = %v, want 357", last)
	}
}

func TestGenerateRingBearingOrder(t *testing.T) {
	points, err := GenerateRing(domain.Coordinate{Lat: 12.5, Lon: 33.3}, 100, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, p := range points {
		want := float64(i) * 10
		if p.Angle != want {
			t.Fatalf("point %d bearing = %v, want %v", i, p.Angle, want)
		}
		if p.Angle < 0 || p.Angle >= 360 {
			t.Fatalf("point %d bearing = %v, outside [0, 360)", i, p.Angle)
		}
		if p.Distance != 100 {
			t.Fatalf("point %d distance = %v, want 100", i, p.Distance)
		}
	}
}

func TestGenerateRingDeterminism(t *testing.T) {
	center := domain.Coordinate{Lat: -33.8688, Lon: 151.2093}

	first, err := GenerateRing(center, 42.5, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := GenerateRing(center, 42.5, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated calls with identical inputs produced different output")
	}
}

func TestGenerateRingBearingZeroDueNorth(t *testing.T) {
	const miles = 100.0

	points, err := GenerateRing(domain.Coordinate{Lat: 0, Lon: 0}, miles, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	north := points[0]
	if north.Angle != 0 {
		t.Fatalf("first point bearing = %v, want 0", north.Angle)
	}

	wantLat := miles / geo.EarthRadiusMiles * 180 / math.Pi
	if math.Abs(north.Latitude-wantLat) > 1e-9 {
		t.Errorf("bearing-0 latitude = %v, want %v", north.Latitude, wantLat)
	}
	if math.Abs(north.Longitude) > 1e-9 {
		t.Errorf("bearing-0 longitude = %v, want 0", north.Longitude)
	}
}

func TestGenerateRingRoundTripDistance(t *testing.T) {
	centers := []domain.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 40.7128, Lon: -74.006},
		{Lat: 89.5, Lon: 10},    // near the pole
		{Lat: 0.5, Lon: 179.95}, // straddles the antimeridian
		{Lat: -45, Lon: -179.99},
	}

	for _, center := range centers {
		for _, miles := range []float64{1, 69, 1000} {
			points, err := GenerateRing(center, miles, 10)
			if err != nil {
				t.Fatalf("center %+v miles %v: unexpected error: %v", center, miles, err)
			}

			for _, p := range points {
				got := geo.Haversine(center.Lat, center.Lon, p.Latitude, p.Longitude)
				if math.Abs(got-miles) > 1e-6 {
					t.Errorf(
						"center %+v miles %v bearing %v: haversine distance = %v",
						center, miles, p.Angle, got,
					)
				}
			}
		}
	}
}

func TestGenerateRingOutputRanges(t *testing.T) {
	centers := []domain.Coordinate{
		{Lat: 89.9, Lon: 0},
		{Lat: -89.9, Lon: 135},
		{Lat: 0, Lon: 179.95},
		{Lat: 0, Lon: -179.95},
		{Lat: 90, Lon: 0}, // exactly at the pole: degenerate but in-range
	}

	for _, center := range centers {
		points, err := GenerateRing(center, 30, 10)
		if err != nil {
			t.Fatalf("center %+v: unexpected error: %v", center, err)
		}

		for _, p := range points {
			if p.Latitude < -90 || p.Latitude > 90 {
				t.Errorf("center %+v bearing %v: latitude %v outside [-90, 90]", center, p.Angle, p.Latitude)
			}
			if p.Longitude < -180 || p.Longitude >= 180 {
				t.Errorf("center %+v bearing %v: longitude %v outside [-180, 180)", center, p.Angle, p.Longitude)
			}
		}
	}
}

func TestGenerateRingRejectsInvalidDistance(t *testing.T) {
	center := domain.Coordinate{}

	for _, miles := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		points, err := GenerateRing(center, miles, 10)
		if !errors.Is(err, domain.ErrInvalidDistance) {
			t.Errorf("distance %v: err = %v, want ErrInvalidDistance", miles, err)
		}
		if points != nil {
			t.Errorf("distance %v: got %d points, want none", miles, len(points))
		}
	}

	// The offending value is part of the error so callers can surface it.
	_, err := GenerateRing(center, -5, 10)
	if err == nil || !strings.Contains(err.Error(), "-5") {
		t.Errorf("err = %v, want message containing the offending distance", err)
	}
}

func TestGenerateRingRejectsInvalidStep(t *testing.T) {
	center := domain.Coordinate{}

	for _, step := range []float64{-10, math.NaN(), math.Inf(1)} {
		_, err := GenerateRing(center, 10, step)
		if !errors.Is(err, domain.ErrInvalidStep) {
			t.Errorf("step %v: err = %v, want ErrInvalidStep", step, err)
		}
	}
}

func TestGenerateRingRejectsTooFineStep(t *testing.T) {
	center := domain.Coordinate{}

	// Positive and finite, but fine enough that the point count cannot be
	// allocated. These must fail cleanly, never panic.
	for _, step := range []float64{1e-18, 1e-300, 360.0 / (maxRingPoints + 1)} {
		points, err := GenerateRing(center, 10, step)
		if !errors.Is(err, domain.ErrInvalidStep) {
			t.Errorf("step %v: err = %v, want ErrInvalidStep", step, err)
		}
		if points != nil {
			t.Errorf("step %v: got %d points, want none", step, len(points))
		}
	}

	// The offending value stays visible to callers.
	_, err := GenerateRing(center, 10, 1e-18)
	if err == nil || !strings.Contains(err.Error(), "1e-18") {
		t.Errorf("err = %v, want message containing the offending step", err)
	}

	// A fine but bounded step is still accepted.
	points, err := GenerateRing(center, 10, 0.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 36000 {
		t.Fatalf("got %d points, want 36000", len(points))
	}
}

func TestGenerateRingNewYorkScenario(t *testing.T) {
	// 69 miles is roughly one degree of latitude, so the bearing-0 point
	// lands close to one degree due north of the center.
	center := domain.Coordinate{Lat: 40.7128, Lon: -74.006}

	points, err := GenerateRing(center, 69, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(points) != 4 {
		t.Fatalf("got %d points, want 4", len(points))
	}
	for i, want := range []float64{0, 90, 180, 270} {
		if points[i].Angle != want {
			t.Fatalf("point %d bearing = %v, want %v", i, points[i].Angle, want)
		}
	}

	north := points[0]
	if math.Abs(north.Latitude-41.7128) > 0.05 {
		t.Errorf("bearing-0 latitude = %v, want 41.7128 within 0.05", north.Latitude)
	}
	if math.Abs(north.Longitude-(-74.006)) > 1e-9 {
		t.Errorf("bearing-0 longitude = %v, want -74.006", north.Longitude)
	}
}
