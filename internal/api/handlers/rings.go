package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"range-ring-service/internal/api/dto"
	"range-ring-service/internal/domain"
	"range-ring-service/internal/platform/metrics"
	"range-ring-service/internal/ports"
	"range-ring-service/internal/services"
	"strconv"
	"strings"
)

// RingHandler exposes stateless ring generation: JSON generation on /rings
// and CSV download on /rings/export. Persistence only happens when a request
// opts in with save=true.
type RingHandler struct {
	Repo  ports.RingSetRepository
	Cache ports.RingCache
}

// Generate computes rings for every requested distance around one center.
func (h *RingHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.GenerateRingsRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.Center == nil {
		writeError(w, r, http.StatusBadRequest, "center is required")
		return
	}
	center := domain.Coordinate{Lat: req.Center.Latitude, Lon: req.Center.Longitude}
	if err := center.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Distances) == 0 {
		writeError(w, r, http.StatusBadRequest, "distances must contain at least one value")
		return
	}
	if len(req.Distances) > 25 {
		writeError(w, r, http.StatusBadRequest, "distances must contain at most 25 values")
		return
	}

	name := strings.TrimSpace(req.Name)
	if len(name) > 120 {
		writeError(w, r, http.StatusBadRequest, "name must be at most 120 characters")
		return
	}

	svcReq := services.RingSetRequest{
		Center:      center,
		Distances:   req.Distances,
		StepDegrees: req.StepDegrees,
		Name:        name,
	}

	set, err := services.GenerateRingSet(r.Context(), svcReq, h.Cache)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDistance) || errors.Is(err, domain.ErrInvalidStep) {
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Printf("generate rings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.GenerateRingsResponse{
		Center:      dto.Coordinate{Latitude: set.Center.Lat, Longitude: set.Center.Lon},
		StepDegrees: set.StepDegrees,
		Distances:   set.Distances,
		PointCount:  len(set.Points),
		Points:      toPointResponses(set.Points),
	}

	if req.Save {
		id, err := h.Repo.SaveRingSet(r.Context(), set)
		if err != nil {
			log.Printf("save ring set failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		metrics.RingSetsSavedTotal.Inc()
		res.RingSetID = id
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Export computes rings from query parameters and streams them as CSV, so a
// browser can download a ring file without composing a JSON body.
// Parameters: lat, lon, distances (comma-separated miles), step (optional),
// filename (optional).
func (h *RingHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()

	lat, err := queryFloat(q, "lat")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	lon, err := queryFloat(q, "lon")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	center := domain.Coordinate{Lat: lat, Lon: lon}
	if err := center.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	distances, err := parseDistances(q.Get("distances"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(distances) == 0 {
		writeError(w, r, http.StatusBadRequest, "distances is required")
		return
	}
	if len(distances) > 25 {
		writeError(w, r, http.StatusBadRequest, "distances must contain at most 25 values")
		return
	}

	var step float64
	if v := strings.TrimSpace(q.Get("step")); v != "" {
		step, err = strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "step must be a number")
			return
		}
	}

	svcReq := services.RingSetRequest{
		Center:      center,
		Distances:   distances,
		StepDegrees: step,
	}

	set, err := services.GenerateRingSet(r.Context(), svcReq, h.Cache)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDistance) || errors.Is(err, domain.ErrInvalidStep) {
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Printf("export rings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeCSV(w, r, csvFilename(q.Get("filename"), "rings.csv"), set.Points)
}

func queryFloat(q url.Values, key string) (float64, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return 0, errors.New(key + " is required")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(key + " must be a number")
	}
	return f, nil
}

func parseDistances(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.New("distances must be comma-separated numbers")
		}
		out = append(out, f)
	}
	return out, nil
}
