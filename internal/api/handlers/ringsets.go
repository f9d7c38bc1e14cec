package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"range-ring-service/internal/api/dto"
	"range-ring-service/internal/ports"
	"strconv"
	"strings"
)

// RingSetHandler exposes read access to persisted ring sets.
type RingSetHandler struct {
	Repo ports.RingSetRepository
}

// List returns saved ring set summaries, newest first.
// The limit parameter defaults to 50 and is capped at 500.
func (h *RingSetHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 50
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > 500 {
		limit = 500
	}

	sums, err := h.Repo.ListRingSets(r.Context(), limit)
	if err != nil {
		log.Printf("list ring sets failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRingSetsResponse{
		RingSets: make([]dto.RingSetSummaryResponse, 0, len(sums)),
	}
	for _, s := range sums {
		res.RingSets = append(res.RingSets, dto.RingSetSummaryResponse{
			RingSetID:   s.ID,
			Name:        s.Name,
			Center:      dto.Coordinate{Latitude: s.Center.Lat, Longitude: s.Center.Lon},
			StepDegrees: s.StepDegrees,
			PointCount:  s.PointCount,
			CreatedAt:   s.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one saved ring set with its points. format=csv streams the
// points as a download instead of the JSON document.
func (h *RingSetHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/ringsets/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		writeError(w, r, http.StatusBadRequest, "invalid ring set id")
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeError(w, r, http.StatusBadRequest, "format must be json or csv")
		return
	}

	set, err := h.Repo.GetRingSet(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrRingSetNotFound) {
			writeError(w, r, http.StatusNotFound, "ring set not found")
			return
		}
		log.Printf("get ring set failed: id=%d err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if format == "csv" {
		name := set.Name
		if name == "" {
			name = fmt.Sprintf("ringset-%d", set.ID)
		}
		writeCSV(w, r, csvFilename(name, "ringset.csv"), set.Points)
		return
	}

	res := dto.RingSetResponse{
		RingSetID:   set.ID,
		Name:        set.Name,
		Center:      dto.Coordinate{Latitude: set.Center.Lat, Longitude: set.Center.Lon},
		StepDegrees: set.StepDegrees,
		Distances:   set.Distances,
		CreatedAt:   set.CreatedAt,
		Points:      toPointResponses(set.Points),
	}

	writeJSON(w, r, http.StatusOK, res)
}
