package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"range-ring-service/internal/api/dto"
	"range-ring-service/internal/domain"
	"range-ring-service/internal/export"
	"strings"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeCSV streams points as a CSV download.
func writeCSV(w http.ResponseWriter, r *http.Request, filename string, points []domain.GeneratedPoint) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteCSV(w, points); err != nil {
		log.Printf("csv write failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

// csvFilename constrains a client-supplied download name to a bare file name
// ending in .csv. Path separators and quotes are stripped so the name is safe
// inside a Content-Disposition header.
func csvFilename(name, fallback string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ReplaceAll(name, `"`, "")
	if name == "" {
		return fallback
	}
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		name += ".csv"
	}
	return name
}

func toPointResponses(points []domain.GeneratedPoint) []dto.PointResponse {
	out := make([]dto.PointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.PointResponse{
			Distance:  p.Distance,
			Angle:     p.Angle,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
		})
	}
	return out
}
