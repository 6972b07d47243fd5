package handler

import (
	"net/http"

	"github.com/go-totp-verify/internal/pkg/clock"
)

// isoMillis matches JavaScript's Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z"

// HealthHandler handles the liveness endpoint.
type HealthHandler struct {
	clock clock.Clocker
}

func NewHealthHandler(c clock.Clocker) *HealthHandler {
	if c == nil {
		c = clock.New()
	}
	return &HealthHandler{clock: c}
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthEnvelope{
		Status:    "ok",
		Timestamp: h.clock.Now().UTC().Format(isoMillis),
	})
}

func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
