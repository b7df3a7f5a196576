package handler

import (
	"net/http"

	"maichat/internal/httputil"
)

// HealthCheck reports process liveness.
// GET /healthz
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
