// Package export serializes generated points for download and CLI output.
// Formats are lossless over {distance, angle, latitude, longitude}: floats
// are written with shortest round-trip precision.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"range-ring-service/internal/domain"
	"strconv"
)

// CSVHeader is the first row of every CSV export.
var CSVHeader = []string{"distance", "angle", "latitude", "longitude"}

// WriteCSV writes points as one header row plus one row per point.
func WriteCSV(w io.Writer, points []domain.GeneratedPoint) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv: header: %w", err)
	}

	for i, p := range points {
		row := []string{
			formatFloat(p.Distance),
			formatFloat(p.Angle),
			formatFloat(p.Latitude),
			formatFloat(p.Longitude),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv: row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: flush: %w", err)
	}

	return nil
}

type jsonPoint struct {
	Distance  float64 `json:"distance"`
	Angle     float64 `json:"angle"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WriteJSON writes points as an indented JSON array.
func WriteJSON(w io.Writer, points []domain.GeneratedPoint) error {
	out := make([]jsonPoint, 0, len(points))
	for _, p := range points {
		out = append(out, jsonPoint{
			Distance:  p.Distance,
			Angle:     p.Angle,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
