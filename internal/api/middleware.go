package api

import (
	"log"
	"net/http"
	"range-ring-service/internal/platform/metrics"
	"range-ring-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/google/uuid"
)

// statusWriter captures the final HTTP status code and number of bytes written.
// This helps distinguish "handler returned 200" from "client received a response".
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestIDMiddleware tags each request with an ID for log correlation.
// An inbound X-Request-ID is kept so IDs stay stable across proxies;
// otherwise a fresh UUID is minted. The ID is echoed on the response.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(obs.WithRequestID(r.Context(), id)))
	})
}

// loggingMiddleware logs end-to-end request duration and response size and
// feeds the request counters.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{
			ResponseWriter: w,
			status:         0,
		}

		next.ServeHTTP(sw, r)

		duration := time.Since(start).Milliseconds()

		metrics.RequestsTotal.WithLabelValues(routeLabel(r.URL.Path)).Inc()
		metrics.RequestDurationMs.Observe(float64(duration))

		log.Printf(
			"req_id=%s method=%s path=%s status=%d bytes=%d dur=%dms",
			obs.RequestID(r.Context()), r.Method, r.URL.RequestURI(), sw.status, sw.bytes, duration,
		)
	})
}

// routeLabel maps a request path onto the route table so metric label
// cardinality is bounded by the routes, not by client-chosen URLs.
// Keep the cases in sync with NewRouter.
func routeLabel(path string) string {
	switch path {
	case "/health", "/metrics", "/rings", "/rings/export", "/ringsets", "/ringsets/":
		return path
	}
	if strings.HasPrefix(path, "/ringsets/") {
		return "/ringsets/{id}"
	}
	return "other"
}
