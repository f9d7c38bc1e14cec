package handlers

import (
	"net/http"
)

// Health is a liveness check. It reports the process is serving requests and
// nothing more; ring generation has no external dependency to probe.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]string{"status": "ok", "service": "range-ring-service"}
	writeJSON(w, r, http.StatusOK, res)
}
