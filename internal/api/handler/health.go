package handler

import "net/http"

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports that the service is up
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
