package dto

import "time"

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type GenerateRingsRequest struct {
	Center      *Coordinate `json:"center"`
	Distances   []float64   `json:"distances"`
	StepDegrees float64     `json:"step_degrees"`
	Save        bool        `json:"save"`
	Name        string      `json:"name"`
}

type PointResponse struct {
	Distance  float64 `json:"distance"`
	Angle     float64 `json:"angle"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type GenerateRingsResponse struct {
	RingSetID   int64           `json:"ring_set_id,omitempty"`
	Center      Coordinate      `json:"center"`
	StepDegrees float64         `json:"step_degrees"`
	Distances   []float64       `json:"distances"`
	PointCount  int             `json:"point_count"`
	Points      []PointResponse `json:"points"`
}

type RingSetSummaryResponse struct {
	RingSetID   int64      `json:"ring_set_id"`
	Name        string     `json:"name"`
	Center      Coordinate `json:"center"`
	StepDegrees float64    `json:"step_degrees"`
	PointCount  int        `json:"point_count"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ListRingSetsResponse struct {
	RingSets []RingSetSummaryResponse `json:"ring_sets"`
}

type RingSetResponse struct {
	RingSetID   int64           `json:"ring_set_id"`
	Name        string          `json:"name"`
	Center      Coordinate      `json:"center"`
	StepDegrees float64         `json:"step_degrees"`
	Distances   []float64       `json:"distances"`
	CreatedAt   time.Time       `json:"created_at"`
	Points      []PointResponse `json:"points"`
}
