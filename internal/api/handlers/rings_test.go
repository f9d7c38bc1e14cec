package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"range-ring-service/internal/adapters/repositories"
	"range-ring-service/internal/api/dto"
	"strings"
	"testing"
)

func newRingHandler() (*RingHandler, *repositories.MemoryRingSetRepository) {
	repo := repositories.NewMemoryRingSetRepository()
	return &RingHandler{Repo: repo}, repo
}

func postRings(h *RingHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/rings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Generate(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body["error"]
}

func TestGenerateRings(t *testing.T) {
	h, _ := newRingHandler()

	rec := postRings(h, `{"center":{"latitude":40.7128,"longitude":-74.006},"distances":[69],"step_degrees":90}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var res dto.GenerateRingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.PointCount != 4 || len(res.Points) != 4 {
		t.Fatalf("point_count = %d with %d points, want 4", res.PointCount, len(res.Points))
	}
	if res.StepDegrees != 90 {
		t.Fatalf("step_degrees = %v, want 90", res.StepDegrees)
	}
	if res.RingSetID != 0 {
		t.Fatalf("ring_set_id = %d, want 0 when save is not requested", res.RingSetID)
	}

	north := res.Points[0]
	if north.Angle != 0 || north.Distance != 69 {
		t.Fatalf("first point = %+v, want bearing 0 at 69 mi", north)
	}
	if math.Abs(north.Latitude-41.7128) > 0.05 {
		t.Fatalf("due-north latitude = %v, want about 41.7128", north.Latitude)
	}
	if math.Abs(north.Longitude-(-74.006)) > 1e-9 {
		t.Fatalf("due-north longitude = %v, want about -74.006", north.Longitude)
	}
}

func TestGenerateRingsDefaultStep(t *testing.T) {
	h, _ := newRingHandler()

	rec := postRings(h, `{"center":{"latitude":40.7128,"longitude":-74.006},"distances":[10]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var res dto.GenerateRingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.StepDegrees != 10 {
		t.Fatalf("step_degrees = %v, want default 10", res.StepDegrees)
	}
	if res.PointCount != 36 {
		t.Fatalf("point_count = %d, want 36", res.PointCount)
	}
}

func TestGenerateRingsSave(t *testing.T) {
	h, repo := newRingHandler()

	rec := postRings(h, `{"center":{"latitude":40.7128,"longitude":-74.006},"distances":[5,10],"step_degrees":120,"save":true,"name":"nyc"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var res dto.GenerateRingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.RingSetID != 1 {
		t.Fatalf("ring_set_id = %d, want 1", res.RingSetID)
	}

	set, err := repo.GetRingSet(context.Background(), res.RingSetID)
	if err != nil {
		t.Fatalf("load saved set: %v", err)
	}
	if set.Name != "nyc" {
		t.Fatalf("saved name = %q, want %q", set.Name, "nyc")
	}
	if len(set.Points) != 6 {
		t.Fatalf("saved %d points, want 6", len(set.Points))
	}
}

func TestGenerateRingsValidation(t *testing.T) {
	many := make([]string, 26)
	for i := range many {
		many[i] = "1"
	}
	tooMany := `{"center":{"latitude":1,"longitude":2},"distances":[` + strings.Join(many, ",") + `]}`

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantSubstr string
	}{
		{"malformed json", `{`, http.StatusBadRequest, "invalid json body"},
		{"unknown field", `{"middle":{"latitude":1}}`, http.StatusBadRequest, "invalid json body"},
		{"second object", `{"center":{"latitude":1,"longitude":2},"distances":[5]}{}`, http.StatusBadRequest, "only one JSON object"},
		{"missing center", `{"distances":[5]}`, http.StatusBadRequest, "center is required"},
		{"center out of range", `{"center":{"latitude":91,"longitude":0},"distances":[5]}`, http.StatusBadRequest, "latitude"},
		{"no distances", `{"center":{"latitude":1,"longitude":2}}`, http.StatusBadRequest, "at least one"},
		{"too many distances", tooMany, http.StatusBadRequest, "at most 25"},
		{"zero distance", `{"center":{"latitude":1,"longitude":2},"distances":[0]}`, http.StatusUnprocessableEntity, "positive, finite"},
		{"negative distance", `{"center":{"latitude":1,"longitude":2},"distances":[5,-5]}`, http.StatusUnprocessableEntity, "-5"},
		{"negative step", `{"center":{"latitude":1,"longitude":2},"distances":[5],"step_degrees":-10}`, http.StatusUnprocessableEntity, "step"},
		{"step too fine", `{"center":{"latitude":1,"longitude":2},"distances":[5],"step_degrees":1e-18}`, http.StatusUnprocessableEntity, "1e-18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newRingHandler()
			rec := postRings(h, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if msg := decodeError(t, rec); !strings.Contains(msg, tt.wantSubstr) {
				t.Fatalf("error = %q, want substring %q", msg, tt.wantSubstr)
			}
		})
	}
}

func TestGenerateRingsMethodNotAllowed(t *testing.T) {
	h, _ := newRingHandler()

	req := httptest.NewRequest(http.MethodGet, "/rings", nil)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("Allow = %q, want %q", allow, http.MethodPost)
	}
}

func TestExportCSV(t *testing.T) {
	h, _ := newRingHandler()

	req := httptest.NewRequest(http.MethodGet, "/rings/export?lat=40.7128&lon=-74.006&distances=5,10&step=90", nil)
	rec := httptest.NewRecorder()
	h.Export(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="rings.csv"` {
		t.Fatalf("Content-Disposition = %q", cd)
	}

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want header plus 8 points", len(lines))
	}
	if lines[0] != "distance,angle,latitude,longitude" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "5,0,") {
		t.Fatalf("first point row = %q, want 5 mi bearing 0", lines[1])
	}
	if !strings.HasPrefix(lines[5], "10,0,") {
		t.Fatalf("fifth point row = %q, want 10 mi bearing 0", lines[5])
	}
}

func TestExportFilename(t *testing.T) {
	h, _ := newRingHandler()

	q := url.Values{}
	q.Set("lat", "40")
	q.Set("lon", "-74")
	q.Set("distances", "5")
	q.Set("step", "120")
	q.Set("filename", "../tmp/nyc rings")

	req := httptest.NewRequest(http.MethodGet, "/rings/export?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	h.Export(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="nyc rings.csv"` {
		t.Fatalf("Content-Disposition = %q, want sanitized name", cd)
	}
}

func TestExportValidation(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantSubstr string
	}{
		{"missing lat", "lon=-74&distances=5", http.StatusBadRequest, "lat is required"},
		{"bad lon", "lat=40&lon=east&distances=5", http.StatusBadRequest, "lon must be a number"},
		{"missing distances", "lat=40&lon=-74", http.StatusBadRequest, "distances is required"},
		{"bad distances", "lat=40&lon=-74&distances=5,x", http.StatusBadRequest, "comma-separated numbers"},
		{"bad step", "lat=40&lon=-74&distances=5&step=wide", http.StatusBadRequest, "step must be a number"},
		{"invalid distance", "lat=40&lon=-74&distances=-5", http.StatusUnprocessableEntity, "positive, finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newRingHandler()
			req := httptest.NewRequest(http.MethodGet, "/rings/export?"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.Export(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if msg := decodeError(t, rec); !strings.Contains(msg, tt.wantSubstr) {
				t.Fatalf("error = %q, want substring %q", msg, tt.wantSubstr)
			}
		})
	}
}
